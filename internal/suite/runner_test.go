package suite

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarediiran-industries.com/bench-tools/internal/common"
)

type fakeTarget struct {
	name    string
	size    uint64
	sized   bool
	runErr  error
	sizeErr error

	calls []string
}

func (target *fakeTarget) Name() string { return target.name }
func (target *fakeTarget) Kind() string { return "fake" }
func (target *fakeTarget) Sized() bool  { return target.sized }

func (target *fakeTarget) Run(_ context.Context) error {
	target.calls = append(target.calls, "run")
	return target.runErr
}

func (target *fakeTarget) Size() (uint64, error) {
	target.calls = append(target.calls, "size")
	return target.size, target.sizeErr
}

func newTestRunner(out *bytes.Buffer, cfg RunnerConfig) (*Runner, *common.Metrics, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	metrics := common.NewMetrics(prometheus.NewRegistry())
	return NewRunner(out, logger, metrics, cfg), metrics, hook
}

func TestRunner_RunTarget(t *testing.T) {
	t.Run("sized", func(t *testing.T) {
		var out bytes.Buffer
		runner, metrics, _ := newTestRunner(&out, RunnerConfig{})
		target := &fakeTarget{name: "copy", sized: true, size: 4096}

		result := runner.RunTarget(context.Background(), target)

		require.NoError(t, result.Err)
		assert.Equal(t, []string{"run", "size"}, target.calls)
		assert.Equal(t, uint64(4096), result.Bytes)
		expected := "Benchmark 'copy' took " + common.FormatDuration(result.Elapsed) +
			" (" + common.FormatThroughput(result.Elapsed, 4096) + ")\n"
		assert.Equal(t, expected, out.String())
		assert.Equal(t, 4096.0, testutil.ToFloat64(metrics.BenchBytesTotal.WithLabelValues("copy")))
	})

	t.Run("unsized", func(t *testing.T) {
		var out bytes.Buffer
		runner, metrics, _ := newTestRunner(&out, RunnerConfig{})
		target := &fakeTarget{name: "noop"}

		result := runner.RunTarget(context.Background(), target)

		require.NoError(t, result.Err)
		assert.Equal(t, []string{"run"}, target.calls)
		assert.Equal(t, "Benchmark 'noop' took "+common.FormatDuration(result.Elapsed)+"\n", out.String())
		assert.Equal(t, 1, testutil.CollectAndCount(metrics.BenchDurationSeconds))
	})

	t.Run("failure", func(t *testing.T) {
		var out bytes.Buffer
		runner, metrics, hook := newTestRunner(&out, RunnerConfig{})
		errRun := errors.New("exit status 1")
		target := &fakeTarget{name: "broken", sized: true, runErr: errRun}

		result := runner.RunTarget(context.Background(), target)

		require.ErrorIs(t, result.Err, errRun)
		assert.Equal(t, []string{"run"}, target.calls)
		assert.Empty(t, out.String())
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BenchFailuresTotal.WithLabelValues("broken")))
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Equal(t, "broken", hook.LastEntry().Data["benchmark"])
	})
}

func TestRunner_Run(t *testing.T) {
	t.Run("continues past failures", func(t *testing.T) {
		var out bytes.Buffer
		runner, _, _ := newTestRunner(&out, RunnerConfig{})
		targets := []Target{
			&fakeTarget{name: "a"},
			&fakeTarget{name: "b", runErr: errors.New("nope")},
			&fakeTarget{name: "c", sized: true, size: 10},
		}

		results, err := runner.Run(context.Background(), targets)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, 1, Failed(results))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "Benchmark 'a' took "))
		assert.True(t, strings.HasPrefix(lines[1], "Benchmark 'c' took "))
		assert.True(t, strings.HasPrefix(lines[2], "Benchmark 'suite' took "))
	})

	t.Run("fail fast", func(t *testing.T) {
		var out bytes.Buffer
		runner, _, _ := newTestRunner(&out, RunnerConfig{FailFast: true})
		last := &fakeTarget{name: "c"}
		targets := []Target{
			&fakeTarget{name: "a"},
			&fakeTarget{name: "b", runErr: errors.New("nope")},
			last,
		}

		results, err := runner.Run(context.Background(), targets)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `benchmark "b"`)
		assert.Len(t, results, 2)
		assert.Empty(t, last.calls)
	})

	t.Run("cancelled", func(t *testing.T) {
		var out bytes.Buffer
		runner, _, _ := newTestRunner(&out, RunnerConfig{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := runner.Run(ctx, []Target{&fakeTarget{name: "a"}})
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, results)
	})
}

func TestRenderSummary(t *testing.T) {
	var out bytes.Buffer
	results := []Result{
		{Name: "read", Kind: KindFile, Elapsed: 1_500_000, Sized: true, Bytes: 1_048_576},
		{Name: "probe", Kind: KindHTTP, Err: errors.New("status code 500")},
	}

	require.NoError(t, RenderSummary(&out, results))

	rendered := out.String()
	assert.Contains(t, rendered, "read")
	assert.Contains(t, rendered, "1.5ms")
	assert.Contains(t, rendered, common.FormatThroughput(1_500_000, 1_048_576))
	assert.Contains(t, rendered, "FAIL:")
	assert.Contains(t, rendered, "500")
}
