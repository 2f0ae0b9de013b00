package suite

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"tarediiran-industries.com/bench-tools/internal/common"
)

type Result struct {
	Name    string
	Kind    string
	Elapsed time.Duration
	Sized   bool
	Bytes   uint64
	Err     error
}

type RunnerConfig struct {
	FailFast bool
	// Timeout bounds each target; zero means no limit.
	Timeout time.Duration
}

// Runner runs targets one at a time and writes one report line per target.
type Runner struct {
	out     io.Writer
	log     logrus.FieldLogger
	metrics *common.Metrics
	cfg     RunnerConfig
}

// NewRunner accepts a nil metrics to skip recording.
func NewRunner(out io.Writer, log logrus.FieldLogger, metrics *common.Metrics, cfg RunnerConfig) *Runner {
	return &Runner{
		out:     out,
		log:     log.WithField("component", "suite_runner"),
		metrics: metrics,
		cfg:     cfg,
	}
}

func (runner *Runner) RunTarget(ctx context.Context, target Target) Result {
	result := Result{Name: target.Name(), Kind: target.Kind(), Sized: target.Sized()}
	log := runner.log.WithFields(logrus.Fields{"benchmark": result.Name, "kind": result.Kind})

	if runner.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runner.cfg.Timeout)
		defer cancel()
	}

	log.Debug("running benchmark")

	run := func() error { return target.Run(ctx) }
	if result.Sized {
		result.Elapsed, result.Err = common.ReportWithSizeErr(runner.out, result.Name, run, func() (uint64, error) {
			size, err := target.Size()
			result.Bytes = size
			return size, err
		})
	} else {
		result.Elapsed, result.Err = common.ReportErr(runner.out, result.Name, run)
	}

	if result.Err != nil {
		log.WithError(result.Err).Warn("benchmark failed")
		if runner.metrics != nil {
			runner.metrics.Fail(result.Name)
		}
		return result
	}

	if runner.metrics != nil {
		runner.metrics.Observe(result.Name, result.Elapsed)
		if result.Sized {
			runner.metrics.AddBytes(result.Name, result.Bytes)
		}
	}

	log.WithField("elapsed", result.Elapsed).Debug("benchmark finished")
	return result
}

// Run executes every target once, in order. With FailFast the first failure
// stops the suite and is returned; otherwise failures are only recorded in
// the results. The whole suite is reported under the label "suite".
func (runner *Runner) Run(ctx context.Context, targets []Target) ([]Result, error) {
	benchmarker := common.NewBenchmarker(runner.out, "suite")
	defer benchmarker.Close()

	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := runner.RunTarget(ctx, target)
		results = append(results, result)

		if result.Err != nil && runner.cfg.FailFast {
			return results, fmt.Errorf("benchmark %q: %w", result.Name, result.Err)
		}
	}

	return results, nil
}

func Failed(results []Result) int {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}

func RenderSummary(out io.Writer, results []Result) error {
	table := tablewriter.NewWriter(out)
	table.Header("Benchmark", "Kind", "Time", "Throughput", "Status")

	for _, result := range results {
		elapsed, throughput, status := "-", "-", "ok"
		if result.Err != nil {
			status = "FAIL: " + result.Err.Error()
		} else {
			elapsed = common.FormatDuration(result.Elapsed)
			if result.Sized {
				throughput = common.FormatThroughput(result.Elapsed, result.Bytes)
			}
		}

		if err := table.Append([]string{result.Name, result.Kind, elapsed, throughput, status}); err != nil {
			return err
		}
	}

	return table.Render()
}
