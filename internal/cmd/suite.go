package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/suite"
)

func NewSuiteCmd(app *BenchCtlApp) *cobra.Command {
	var failFast bool
	var summary bool

	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Run every benchmark in the --toml file once, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := suite.LoadConfigFromToml(app.ConfigPath)
			if err != nil {
				return fmt.Errorf("LoadConfigFromToml: %w", err)
			}

			runnerCfg := suite.RunnerConfig{
				FailFast: cfg.FailFast || failFast,
				Timeout:  cfg.Timeout.Duration,
			}

			app.Log.WithField("benchmarks", len(cfg.Benchmarks)).Debug("loaded suite")

			targets := cfg.BuildTargets(&http.Client{})
			results, runErr := app.newRunner(cmd, runnerCfg).Run(cmd.Context(), targets)

			if err := app.Telemetry.Write(); err != nil {
				app.Log.WithError(err).Error("failed to write metrics")
			}

			if summary {
				if err := suite.RenderSummary(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			}

			if runErr != nil {
				return runErr
			}
			if failed := suite.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d benchmarks failed", failed, len(targets))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing benchmark")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a summary table after the run")

	return cmd
}
