package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debloat-dev/debloat/internal/application"
	"github.com/debloat-dev/debloat/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
	passStyle   = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)

	riskStyles = map[domain.Risk]lipgloss.Style{
		domain.RiskLow:    lipgloss.NewStyle().Foreground(success),
		domain.RiskMedium: lipgloss.NewStyle().Foreground(warning),
		domain.RiskHigh:   lipgloss.NewStyle().Foreground(danger).Bold(true),
	}

	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderScan formats a scan result for the terminal.
func RenderScan(result *application.ScanResult) string {
	var b strings.Builder

	b.WriteString("\n  " + headerStyle.Render("debloat") + "  " + dimStyle.Render(fmt.Sprintf("scan · level %d · focus %s", result.Level, result.Focus)) + "\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d files scanned, %d findings", result.FilesScanned, len(result.Findings))) + "\n\n")

	if len(result.Findings) == 0 {
		b.WriteString("  " + passStyle.Render("No bloat found.") + "\n")
		return b.String()
	}

	for _, f := range result.Findings {
		renderFinding(&b, f)
	}

	b.WriteString("\n  " + separatorLine + "\n")
	tokens, lines := 0, 0
	for _, f := range result.Findings {
		tokens += f.TokenEstimate
		lines += f.LineEstimate
	}
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("potential savings: ~%d tokens, %d lines", tokens, lines)) + "\n")

	for _, w := range result.Warnings {
		b.WriteString("  " + warnStyle.Render("warn ") + " " + dimStyle.Render(w) + "\n")
	}
	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	risk := riskStyles[f.Risk].Render(padRight(f.Risk.String(), 6))
	action := titleStyle.Render(padRight(string(f.Action), 11))
	fmt.Fprintf(b, "  %s %s %s\n", risk, action, f.Target)
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(fmt.Sprintf("confidence %d · %d refs · ~%d tokens · %s", f.Confidence, f.ReferenceCount, f.TokenEstimate, f.Rationale)))
}

// RenderSession formats the remediation summary.
func RenderSession(session *domain.RemediationSession) string {
	var b strings.Builder

	b.WriteString("\n  " + separatorLine + "\n")
	state := passStyle.Render("completed")
	if session.Aborted {
		state = warnStyle.Render("aborted")
	}
	b.WriteString("  " + headerStyle.Render("debloat") + "  " + dimStyle.Render("session ") + state + "\n\n")

	fmt.Fprintf(&b, "  %s %d applied   %s %d skipped   %s %d failed\n",
		passStyle.Render("●"), len(session.Applied),
		dimStyle.Render("●"), len(session.Skipped),
		failStyle.Render("●"), len(session.Failed),
	)
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("saved ~%d tokens, %d lines", session.TokensSaved(), session.LinesSaved())))

	if session.BackupRef != "" {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render("backup: "+session.BackupRef))
	} else if session.Config.NoBackup {
		b.WriteString("  " + warnStyle.Render("no backup was taken (--no-backup)") + "\n")
	}
	if session.VerifyVacuous {
		b.WriteString("  " + warnStyle.Render("no test command detected: changes were not verified by tests") + "\n")
	}

	for _, r := range session.Failed {
		fmt.Fprintf(&b, "  %s %s %s\n         %s\n",
			failStyle.Render("fail "), r.Finding.Action, r.Finding.Target, dimStyle.Render(r.Reason))
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
