// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/archiver"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/cobra"
)

// issueFor maps an error to the catalog entry holding its help text.
// An issue attached by an ActionableError takes precedence.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueID != 0 {
		return ae.IssueID
	}

	switch {
	case errors.Is(err, archiver.ErrNotFound):
		return issue.DirectoryNotFoundId
	case errors.Is(err, archiver.ErrInvalidCompression):
		return issue.InvalidCompressionId
	case errors.Is(err, zip.ErrFormat):
		return issue.ArchiveReadFailedId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError writes the error and, in verbose mode, the matching issue help.
func renderError(w io.Writer, logger *log.Logger, err error, verbose bool, scheme config.ColorScheme) {
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))

	if !verbose {
		return
	}
	id := issueFor(err)
	if id == 0 {
		return
	}
	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render(string(scheme))
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// fail renders err on the app's stderr and converts it to an exit status of 1.
func fail(cmd *cobra.Command, app *App, logger *log.Logger, err error, verbose bool, scheme config.ColorScheme) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	renderError(app.stderr, logger, err, verbose, scheme)
	return &ExitError{Code: 1, Err: err}
}
