package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger writes to out (stderr in practice) so report lines on stdout
// stay machine-readable.
func newLogger(verbose bool, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
