package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/debloat-dev/debloat/internal/adapters/outbound/config"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/prompt"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/report"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanner"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/scanstore"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/testrunner"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/tui"
	"github.com/debloat-dev/debloat/internal/adapters/outbound/vcs"
	"github.com/debloat-dev/debloat/internal/application"
	"github.com/debloat-dev/debloat/internal/domain"
)

func newRemediateCmd() *cobra.Command {
	var (
		fromScan     string
		autoApprove  string
		dryRun       bool
		focus        string
		level        int
		backupBranch string
		noBackup     bool
		reportFile   string
	)

	cmd := &cobra.Command{
		Use:   "remediate [path]",
		Short: "Execute approved remediations with backup, verify, and rollback",
		Long:  "Process a prioritized finding queue: back up once, then per finding approve, execute, verify with the project's tests, and commit, rolling that finding back on failure.",
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

			policy, err := domain.ParsePolicy(autoApprove)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrUsage, err)
			}
			parsedFocus, err := parseFocus(focus)
			if err != nil {
				return err
			}

			projectCfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			var queue []domain.Finding
			if fromScan != "" {
				queue, err = scanstore.New().Load(fromScan)
				if err != nil {
					return fmt.Errorf("%w: %v", domain.ErrPrecondition, err)
				}
				// Scan files may predate policy or code changes; risk is
				// recomputed, never trusted from disk.
				domain.Reclassify(queue)
				queue = domain.Prioritize(queue)
			} else {
				svc := application.NewScanService(scanner.New(), config.New())
				result, scanErr := svc.Scan(absPath, application.ScanOptions{Level: level, Focus: parsedFocus})
				if scanErr != nil {
					return fmt.Errorf("scan failed: %w", scanErr)
				}
				for _, w := range result.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "  warn: %s\n", w)
				}
				queue = result.Findings
			}

			if len(queue) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remediate.")
				return nil
			}

			git := vcs.New()
			prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			svc := application.NewRemediateService(git, testrunner.New(), application.NewExecutor(git), prompter.Decide)
			svc.Progress = func(format string, args ...any) {
				fmt.Fprintf(cmd.OutOrStdout(), "  "+format+"\n", args...)
			}

			session, err := svc.Run(absPath, queue, domain.SessionConfig{
				Level:         level,
				Focus:         parsedFocus,
				DryRun:        dryRun,
				AutoApprove:   policy,
				NoBackup:      noBackup,
				BackupBranch:  backupBranch,
				TestCommand:   projectCfg.TestCommand,
				VerifyTimeout: time.Duration(projectCfg.VerifyTimeoutSeconds) * time.Second,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSession(session))

			if reportFile != "" {
				if err := report.New().WriteSession(reportFile, session); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromScan, "from-scan", "", "Load findings from a scan file instead of rescanning")
	cmd.Flags().StringVar(&autoApprove, "auto-approve", "none", "Auto-approval policy: none, low, or medium")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan without mutating anything")
	cmd.Flags().StringVar(&focus, "focus", "all", "Finding focus: code, docs, deps, or all")
	cmd.Flags().IntVar(&level, "level", 2, "Scan depth when rescanning: 1, 2, or 3")
	cmd.Flags().StringVar(&backupBranch, "backup-branch", "", "Name for the backup branch")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the backup snapshot (changes are hard to reverse)")
	cmd.Flags().StringVar(&reportFile, "report", "", "Write a markdown report to FILE")

	return cmd
}
