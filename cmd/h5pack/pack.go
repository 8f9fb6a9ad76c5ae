// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/archiver"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/issue"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runPack packs folder, then lists the archive's top-level entries and checks
// that the folder name is among them. A missing root is only a warning.
func runPack(cmd *cobra.Command, app *App, flags *rootFlags, folder string) error {
	cfg, err := loadConfig(cmd, app, flags)
	if err != nil {
		return fail(cmd, app, newLogger(app.stderr, flags.verbose), err, flags.verbose, config.ColorSchemeAuto)
	}

	verbose := flags.verbose || cfg.UI.Verbose
	logger := newLogger(app.stderr, verbose)

	opts, err := packOptions(cmd.Flags(), flags, cfg, folder)
	if err != nil {
		return fail(cmd, app, logger, err, verbose, cfg.UI.ColorScheme)
	}
	opts.Logger = logger

	result, err := archiver.Pack(cmd.Context(), opts)
	if err != nil {
		return fail(cmd, app, logger, packError(err, folder), verbose, cfg.UI.ColorScheme)
	}
	logger.Debug("archive written", "files", result.Files, "dirs", result.Dirs, "bytes", result.Bytes)

	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created:"), result.Path)

	entries, err := archiver.ListTopLevelEntries(result.Path)
	if err != nil {
		return fail(cmd, app, logger, listError(err, result.Path), verbose, cfg.UI.ColorScheme)
	}
	printTopLevel(app.stdout, entries)

	if !archiver.HasRoot(entries, result.Base) {
		fmt.Fprintf(app.stdout, "%s archive top-level does not contain expected root folder: %s\n",
			WarningStyle.Render("Warning:"), result.Base)
		if verbose {
			if rendered, renderErr := issue.Get(issue.RootFolderMissingId).Render(string(cfg.UI.ColorScheme)); renderErr == nil {
				fmt.Fprint(app.stderr, rendered)
			}
		}
		return nil
	}
	fmt.Fprintf(app.stdout, "%s contains folder: %s\n", SuccessStyle.Render("Archive root OK ->"), result.Base)
	return nil
}

// packOptions merges configuration with explicitly set flags. Flags win.
func packOptions(fs *pflag.FlagSet, flags *rootFlags, cfg *config.Config, folder string) (archiver.Options, error) {
	opts := archiver.DefaultOptions(folder)
	opts.Output = flags.out
	opts.SkipHidden = cfg.SkipHidden && !flags.noSkipHidden
	opts.Compression = cfg.Compression
	opts.Level = cfg.Level
	opts.Extension = cfg.Extension
	opts.ExcludeSuffixes = cfg.ExcludeSuffixes

	if fs.Changed("compression") {
		compression, err := archiver.ParseCompression(flags.compression)
		if err != nil {
			return archiver.Options{}, issue.NewErrorContext().
				WithOperation("parse --compression").
				WithResource(flags.compression).
				WithSuggestion("Use --compression deflate or --compression store").
				WithIssue(issue.InvalidCompressionId).
				Wrap(err).
				BuildError()
		}
		opts.Compression = compression
	}
	if fs.Changed("level") {
		opts.Level = flags.level
	}

	return opts, nil
}

// packError adds operation context and suggestions to a Pack failure.
func packError(err error, folder string) error {
	ctx := issue.NewErrorContext().
		WithOperation("pack library").
		WithResource(folder)

	switch {
	case errors.Is(err, archiver.ErrNotFound):
		ctx.WithSuggestion("Check that the folder exists and is a directory").
			WithIssue(issue.DirectoryNotFoundId)
	case errors.Is(err, os.ErrPermission):
		ctx.WithSuggestion("Check read permissions on the folder and write permissions on the output directory").
			WithIssue(issue.PermissionDeniedId)
	default:
		ctx.WithSuggestion("Make sure the output directory exists and is writable").
			WithSuggestion("Run with --verbose to see which entry failed").
			WithIssue(issue.ArchiveWriteFailedId)
	}

	return ctx.Wrap(err).BuildError()
}

// listError adds operation context to a ListTopLevelEntries failure.
func listError(err error, archivePath string) error {
	return issue.NewErrorContext().
		WithOperation("read archive").
		WithResource(archivePath).
		WithSuggestion("Check that the file is a zip-based .h5p package").
		WithIssue(issue.ArchiveReadFailedId).
		Wrap(err).
		BuildError()
}

func printTopLevel(w io.Writer, entries []string) {
	quoted := make([]string, 0, len(entries))
	for _, entry := range entries {
		quoted = append(quoted, fmt.Sprintf("%q", entry))
	}
	fmt.Fprintf(w, "Top-level entries in archive: [%s]\n", strings.Join(quoted, ", "))
}
