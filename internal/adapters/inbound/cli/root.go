package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debloat-dev/debloat/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "debloat",
		Short:         "Find and safely remove codebase bloat",
		Long:          "debloat scans a source tree for dead code, duplication, and documentation bloat, then executes approved remediations under a backup/verify/rollback discipline.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Bad flags are invalid arguments, same as a bad focus or level.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrUsage, err)
	})
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newRemediateCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
