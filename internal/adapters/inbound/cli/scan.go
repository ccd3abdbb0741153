package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debloat-dev/debloat/internal/adapters/outbound/config"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/report"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanner"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanstore"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/tui"
	"github.com/debloat-dev/debloat/internal/application"
	"github.com/debloat-dev/debloat/internal/domain"
)

func newScanCmd() *cobra.Command {
	var (
		level      int
		focus      string
		reportFile string
		outFile    string
		jsonOutput bool
		excludes   []string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a source tree for bloat",
		Long:  "Run the signal collectors at the requested tier and report classified, prioritized findings. Read-only: a scan never mutates the tree.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			parsedFocus, err := parseFocus(focus)
			if err != nil {
				return err
			}

			svc := application.NewScanService(scanner.New(), config.New())
			result, err := svc.Scan(absPath, application.ScanOptions{
				Level:    level,
				Focus:    parsedFocus,
				Excludes: excludes,
			})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if outFile != "" {
				if err := scanstore.New().Save(outFile, result.Findings); err != nil {
					return fmt.Errorf("saving scan file: %w", err)
				}
			}
			if reportFile != "" {
				if err := report.New().WriteScan(reportFile, result); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderScan(result))
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 1, "Scan depth: 1 quick, 2 targeted, 3 comprehensive")
	cmd.Flags().StringVar(&focus, "focus", "all", "Finding focus: code, docs, deps, or all")
	cmd.Flags().StringVar(&reportFile, "report", "", "Write a markdown report to FILE")
	cmd.Flags().StringVar(&outFile, "out", "", "Save findings as JSON for remediate --from-scan")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output findings as JSON")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Path pattern to exclude (repeatable)")

	return cmd
}

func parseFocus(s string) (domain.Focus, error) {
	switch domain.Focus(s) {
	case domain.FocusCode, domain.FocusDocs, domain.FocusAll:
		return domain.Focus(s), nil
	case domain.FocusDeps, "dependencies":
		return domain.FocusDeps, nil
	}
	return "", fmt.Errorf("%w: unknown focus %q (want code, docs, deps, or all)", domain.ErrUsage, s)
}
