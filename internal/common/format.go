package common

import (
	"strconv"
	"time"
)

const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
	TiB uint64 = 1 << 40
	PiB uint64 = 1 << 50
)

// UnknownRate is returned by FormatThroughput for rates it has no unit for.
const UnknownRate = "??? B/s"

// formatFloat renders like a C-locale %g with six significant digits:
// shortest form, no trailing zeros, exponent for large magnitudes.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', 6, 64)
}

// FormatDuration picks ns, us, ms or s so the number stays readable.
// Below one microsecond the raw nanosecond count is printed.
func FormatDuration(d time.Duration) string {
	ns := int64(d)

	switch {
	case d < time.Microsecond:
		return strconv.FormatInt(ns, 10) + "ns"
	case d < time.Millisecond:
		return formatFloat(float64(ns)/1000) + "us"
	case d < time.Second:
		return formatFloat(float64(ns)/1000/1000) + "ms"
	}
	return formatFloat(float64(ns)/1000/1000/1000) + "s"
}

// BytesPerSecond computes the rate as (1s / d) * bytes in integer
// arithmetic. The ratio truncates, so anything slower than one second reads
// as zero. d must be positive.
func BytesPerSecond(d time.Duration, bytes uint64) uint64 {
	return uint64(time.Second/d) * bytes
}

// FormatThroughput renders bytes processed in d as a rate with binary
// prefixes up to TiB/s. Larger rates, and non-positive durations, yield
// UnknownRate.
func FormatThroughput(d time.Duration, bytes uint64) string {
	if d <= 0 {
		return UnknownRate
	}

	rate := BytesPerSecond(d, bytes)

	switch {
	case rate < KiB:
		return strconv.FormatUint(rate, 10) + " B/s"
	case rate < MiB:
		return formatFloat(float64(rate)/float64(KiB)) + " KiB/s"
	case rate < GiB:
		return formatFloat(float64(rate)/float64(MiB)) + " MiB/s"
	case rate < TiB:
		return formatFloat(float64(rate)/float64(GiB)) + " GiB/s"
	case rate < PiB:
		return formatFloat(float64(rate)/float64(TiB)) + " TiB/s"
	}
	return UnknownRate
}
