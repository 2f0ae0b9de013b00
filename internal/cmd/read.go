package cmd

import (
	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/suite"
)

func NewReadCmd(app *BenchCtlApp) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a file once and report time and throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = args[0]
			}

			return app.runSingle(cmd, suite.NewFileTarget(name, args[0]))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Benchmark name (defaults to the path)")

	return cmd
}
