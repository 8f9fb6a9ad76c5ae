// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/archiver"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"

	"github.com/spf13/cobra"
)

// newListCommand creates `h5pack list <archive>`, which prints the sorted
// top-level entries of an existing archive.
func newListCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "List the top-level entries of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, app, flags)
			if err != nil {
				return fail(cmd, app, newLogger(app.stderr, flags.verbose), err, flags.verbose, config.ColorSchemeAuto)
			}

			verbose := flags.verbose || cfg.UI.Verbose
			logger := newLogger(app.stderr, verbose)

			entries, err := archiver.ListTopLevelEntries(args[0])
			if err != nil {
				return fail(cmd, app, logger, listError(err, args[0]), verbose, cfg.UI.ColorScheme)
			}
			logger.Debug("archive read", "path", args[0], "topLevel", len(entries))

			for _, entry := range entries {
				fmt.Fprintln(app.stdout, entry)
			}
			return nil
		},
	}
}
