// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for h5pack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the parsed flag values of one command tree.
type rootFlags struct {
	out          string
	noSkipHidden bool
	compression  string
	level        int
	verbose      bool
	configPath   string
}

// bindPack declares the packing flags of the root command.
func (f *rootFlags) bindPack(fs *pflag.FlagSet) {
	fs.StringVarP(&f.out, "out", "o", "", "output archive path (default <parent>/<folder>.h5p)")
	fs.BoolVar(&f.noSkipHidden, "no-skip-hidden", false, "include dot-files and dot-directories")
	fs.StringVar(&f.compression, "compression", string(config.DefaultConfig().Compression), "entry compression: deflate or store")
	fs.IntVar(&f.level, "level", 0, "deflate level from -2 to 9 (0 selects the library default)")
}

// bindGlobal declares the flags shared by every subcommand.
func (f *rootFlags) bindGlobal(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose output")
	fs.StringVar(&f.configPath, "config", "", "config file (default is $HOME/.config/h5pack/config.cue)")
}

// NewRootCommand builds the h5pack command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "h5pack <folder>",
		Short: "Package an H5P library folder into an .h5p archive",
		Long: TitleStyle.Render("h5pack") + SubtitleStyle.Render(" - Package an H5P library folder into an .h5p archive") + `

h5pack zips a library folder so that every entry lives under the folder's
own name, which is the layout H5P and Moodle importers expect. After
writing the archive it lists the top-level entries and checks that the
folder name is among them.

` + SubtitleStyle.Render("Examples:") + `
  h5pack ./H5P.InteractiveBook-1.11                  Write ./H5P.InteractiveBook-1.11.h5p
  h5pack ./H5P.InteractiveBook-1.11 -o /tmp/book.h5p Write to an explicit path
  h5pack ./H5P.InteractiveBook-1.11 --no-skip-hidden Keep dot-files
  h5pack list book.h5p                               Show top-level entries
  h5pack config show                                 Show current configuration`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, app, flags, args[0])
		},
	}

	flags.bindPack(rootCmd.Flags())
	flags.bindGlobal(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newListCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// errorHandler prints errors through fang, except an *ExitError, which the
// failing command has already rendered.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// loadConfig loads the configuration named by --config, or the default lookup.
func loadConfig(cmd *cobra.Command, app *App, flags *rootFlags) (*config.Config, error) {
	return app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})
}
