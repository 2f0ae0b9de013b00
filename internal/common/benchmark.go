package common

import (
	"fmt"
	"io"
	"time"
)

// Measure invokes fn exactly once and returns the elapsed time. A panic in fn
// propagates to the caller.
func Measure(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// MeasureErr is Measure for functions that can fail. On failure the error is
// returned as-is and the duration is zero.
func MeasureErr(fn func() error) (time.Duration, error) {
	start := time.Now()
	if err := fn(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func writeReport(out io.Writer, name string, elapsed time.Duration) {
	fmt.Fprintf(out, "Benchmark '%s' took %s\n", name, FormatDuration(elapsed))
}

func writeReportWithSize(out io.Writer, name string, elapsed time.Duration, size uint64) {
	fmt.Fprintf(out, "Benchmark '%s' took %s (%s)\n", name, FormatDuration(elapsed), FormatThroughput(elapsed, size))
}

// Report times fn and writes a single "Benchmark '<name>' took <duration>" line to out.
func Report(out io.Writer, name string, fn func()) time.Duration {
	elapsed := Measure(fn)
	writeReport(out, name, elapsed)
	return elapsed
}

// ReportWithSize times fn, then asks size for the number of bytes fn
// processed and includes the implied throughput in the report line. size is
// called after the measurement ends.
func ReportWithSize(out io.Writer, name string, fn func(), size func() uint64) time.Duration {
	elapsed := Measure(fn)
	processed := size()
	writeReportWithSize(out, name, elapsed, processed)
	return elapsed
}

func ReportErr(out io.Writer, name string, fn func() error) (time.Duration, error) {
	elapsed, err := MeasureErr(fn)
	if err != nil {
		return 0, err
	}
	writeReport(out, name, elapsed)
	return elapsed, nil
}

// ReportWithSizeErr writes nothing when either fn or size fails. A size
// failure still returns the measured duration.
func ReportWithSizeErr(out io.Writer, name string, fn func() error, size func() (uint64, error)) (time.Duration, error) {
	elapsed, err := MeasureErr(fn)
	if err != nil {
		return 0, err
	}

	processed, err := size()
	if err != nil {
		return elapsed, err
	}

	writeReportWithSize(out, name, elapsed, processed)
	return elapsed, nil
}

func RuntimeBenchmark[T any](out io.Writer, label string, functionUnderTest func() (T, error)) (T, error) {
	var result T
	_, err := ReportErr(out, label, func() error {
		var err error
		result, err = functionUnderTest()
		return err
	})
	return result, err
}

// Benchmarker times the scope between NewBenchmarker and Close.
type Benchmarker struct {
	start time.Time
	label string
	out   io.Writer
}

func NewBenchmarker(out io.Writer, label string) *Benchmarker {
	return &Benchmarker{start: time.Now(), label: label, out: out}
}

func (benchmarker *Benchmarker) Close() time.Duration {
	elapsed := time.Since(benchmarker.start)
	writeReport(benchmarker.out, benchmarker.label, elapsed)
	return elapsed
}
