package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/common"
	"tarediiran-industries.com/bench-tools/internal/suite"
)

type BenchCtlApp struct {
	ConfigPath string
	Verbose    bool
	MetricsOut string

	Log       *logrus.Logger
	Telemetry *common.TelemetryExporter
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &BenchCtlApp{}
	rootCmd := NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func NewRootCmd(app *BenchCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bench-ctl",
		Short:         "Time commands, downloads and file reads, one run at a time",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.Log = newLogger(app.Verbose, cmd.ErrOrStderr())
			app.Telemetry = common.NewTelemetryExporter(app.MetricsOut)
		},
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		"config/bench.toml",
		"Path to suite configuration file",
	)
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(
		&app.MetricsOut,
		"metrics-out",
		"",
		"Write Prometheus metrics to this file (textfile collector format)",
	)

	cmd.AddCommand(NewFmtCmd(app))
	cmd.AddCommand(NewRunCmd(app))
	cmd.AddCommand(NewProbeCmd(app))
	cmd.AddCommand(NewReadCmd(app))
	cmd.AddCommand(NewSuiteCmd(app))
	cmd.AddCommand(NewVersionCmd(app))

	return cmd
}

func (app *BenchCtlApp) newRunner(cmd *cobra.Command, cfg suite.RunnerConfig) *suite.Runner {
	return suite.NewRunner(cmd.OutOrStdout(), app.Log, app.Telemetry.GetMetrics(), cfg)
}

// runSingle benchmarks one target and exports metrics even when it failed.
func (app *BenchCtlApp) runSingle(cmd *cobra.Command, target suite.Target) error {
	result := app.newRunner(cmd, suite.RunnerConfig{}).RunTarget(cmd.Context(), target)

	if err := app.Telemetry.Write(); err != nil {
		app.Log.WithError(err).Error("failed to write metrics")
	}

	return result.Err
}
