package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/common"
)

func NewVersionCmd(app *BenchCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: version %s (%s)\n", cmd.Root().Name(), common.Version, common.GitCommit)
			return nil
		},
	}

	return cmd
}
