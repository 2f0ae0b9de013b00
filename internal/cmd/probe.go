package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/suite"
)

func NewProbeCmd(app *BenchCtlApp) *cobra.Command {
	var name string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "probe <url>",
		Short: "Download a URL once and report time and throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = args[0]
			}

			client := &http.Client{Timeout: timeout}
			return app.runSingle(cmd, suite.NewHTTPTarget(name, args[0], client))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Benchmark name (defaults to the URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "HTTP client timeout (0 disables)")

	return cmd
}
