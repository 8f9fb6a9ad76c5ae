// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"

	"github.com/charmbracelet/log"
)

// newLogger returns the diagnostics logger. Entry tracing shows up only in verbose mode.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          config.AppName,
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
