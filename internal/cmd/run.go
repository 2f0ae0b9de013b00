package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/suite"
)

func NewRunCmd(app *BenchCtlApp) *cobra.Command {
	var name string
	var sizeFile string
	var countStdout bool
	var passthrough bool

	cmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command once and report how long it took",
		Example: "  bench-ctl run --size-file data.bin.gz -- gzip -kf data.bin\n" +
			"  bench-ctl run --count-stdout -- cat data.bin",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = filepath.Base(args[0])
			}

			target := suite.NewCommandTarget(name, args, sizeFile, countStdout)
			if passthrough {
				target.Stdout = os.Stderr
			}

			return app.runSingle(cmd, target)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&name, "name", "", "Benchmark name (defaults to the command name)")
	cmd.Flags().StringVar(&sizeFile, "size-file", "", "Report throughput using the size of this file after the run")
	cmd.Flags().BoolVar(&countStdout, "count-stdout", false, "Report throughput using the number of bytes written to stdout")
	cmd.Flags().BoolVar(&passthrough, "passthrough", false, "Copy the command's stdout to stderr instead of discarding it")

	return cmd
}
