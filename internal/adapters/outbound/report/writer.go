package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/debloat-dev/debloat/internal/application"
	"github.com/debloat-dev/debloat/internal/domain"
)

// Writer renders the durable markdown report: scan metadata, the findings
// table, and (for remediation runs) the execution ledger.
type Writer struct{}

func New() *Writer {
	return &Writer{}
}

func (w *Writer) WriteScan(path string, result *application.ScanResult) error {
	var b strings.Builder

	b.WriteString("# debloat scan report\n\n")
	fmt.Fprintf(&b, "- root: `%s`\n", result.Root)
	fmt.Fprintf(&b, "- level: %d, focus: %s\n", result.Level, result.Focus)
	fmt.Fprintf(&b, "- scanned: %d files at %s\n", result.FilesScanned, result.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "- findings: %d\n\n", len(result.Findings))

	writeFindingsTable(&b, result.Findings)

	if len(result.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, warn := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

func (w *Writer) WriteSession(path string, session *domain.RemediationSession) error {
	var b strings.Builder

	b.WriteString("# debloat remediation report\n\n")
	fmt.Fprintf(&b, "- session: `%s`\n", session.ID)
	fmt.Fprintf(&b, "- state: %s\n", session.State)
	if session.BackupRef != "" {
		fmt.Fprintf(&b, "- backup: `%s`\n", session.BackupRef)
	} else {
		b.WriteString("- backup: none\n")
	}
	if session.VerifyVacuous {
		b.WriteString("- verification: no test command detected, passed vacuously\n")
	}
	fmt.Fprintf(&b, "- saved: ~%d tokens, %d lines\n\n", session.TokensSaved(), session.LinesSaved())

	b.WriteString("## Queue\n\n")
	writeFindingsTable(&b, session.Queue)

	writeLedger(&b, "Applied", session.Applied)
	writeLedger(&b, "Skipped", session.Skipped)
	writeLedger(&b, "Failed", session.Failed)

	return os.WriteFile(path, []byte(b.String()), 0644)
}

func writeFindingsTable(b *strings.Builder, findings []domain.Finding) {
	if len(findings) == 0 {
		b.WriteString("No findings.\n")
		return
	}
	b.WriteString("| target | action | risk | confidence | refs | tokens | lines |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, f := range findings {
		fmt.Fprintf(b, "| `%s` | %s | %s | %d | %d | %d | %d |\n",
			f.Target, f.Action, f.Risk, f.Confidence, f.ReferenceCount, f.TokenEstimate, f.LineEstimate)
	}
}

func writeLedger(b *strings.Builder, title string, results []domain.ItemResult) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, r := range results {
		line := fmt.Sprintf("- %s `%s`", r.Finding.Action, r.Finding.Target)
		if r.CommitHash != "" {
			line += fmt.Sprintf(" (commit `%s`)", short(r.CommitHash))
		}
		if r.Reason != "" {
			line += " — " + r.Reason
		}
		b.WriteString(line + "\n")
	}
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
