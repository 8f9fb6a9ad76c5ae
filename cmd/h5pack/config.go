// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `h5pack config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage h5pack configuration",
		Long: `Manage h5pack configuration.

Configuration is stored in:
  - Linux: ~/.config/h5pack/config.cue
  - macOS: ~/Library/Application Support/h5pack/config.cue
  - Windows: %APPDATA%\h5pack\config.cue

A config.cue in the current directory is used when the user file is absent.
Every key can be overridden with an H5PACK_* environment variable, for
example H5PACK_COMPRESSION=store or H5PACK_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := app.Config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})
			if err != nil {
				return fail(cmd, app, newLogger(app.stderr, flags.verbose), err, flags.verbose, config.ColorSchemeAuto)
			}

			source := SubtitleStyle.Render("(using defaults)")
			if path != "" {
				source = PathStyle.Render(path)
			}
			fmt.Fprintf(app.stderr, "%s: %s\n", TitleStyle.Render("Config file"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return fail(cmd, app, newLogger(app.stderr, flags.verbose), err, flags.verbose, config.ColorSchemeAuto)
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Config file:"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return fail(cmd, app, newLogger(app.stderr, flags.verbose), err, flags.verbose, config.ColorSchemeAuto)
			}
			fmt.Fprintln(app.stdout, filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	return cfgCmd
}
