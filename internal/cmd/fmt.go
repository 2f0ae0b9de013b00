package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bench-tools/internal/common"
)

// parseDuration accepts Go duration syntax or a bare nanosecond count.
func parseDuration(value string) (time.Duration, error) {
	if ns, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(ns), nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: expected nanoseconds or Go syntax like 1.5ms", value)
	}
	return d, nil
}

func NewFmtCmd(app *BenchCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format durations and throughputs the way benchmark reports do",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "duration <duration>",
		Short: "Format a duration (nanoseconds or Go syntax)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDuration(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), common.FormatDuration(d))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "throughput <duration> <bytes>",
		Short: "Format the rate of processing <bytes> in <duration>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDuration(args[0])
			if err != nil {
				return err
			}

			bytes, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid byte count %q: %w", args[1], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), common.FormatThroughput(d, bytes))
			return nil
		},
	})

	return cmd
}
