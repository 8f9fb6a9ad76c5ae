// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/archiver"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/config"
	"github.com/Dosochka/moodle-h5p-library-loader/internal/testutil"

	"github.com/klauspost/compress/zip"
)

const libraryName = "H5P.InteractiveBook-1.11"

// staticConfig is a ConfigProvider that ignores the file system.
type staticConfig struct {
	cfg  *config.Config
	path string
	err  error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return s.cfg, s.err
}

func (s staticConfig) LoadWithPath(context.Context, config.LoadOptions) (*config.Config, string, error) {
	return s.cfg, s.path, s.err
}

func defaultsProvider() ConfigProvider {
	return staticConfig{cfg: config.DefaultConfig()}
}

// runCLI executes the command tree with args and captures both output streams.
func runCLI(t *testing.T, provider ConfigProvider, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &outBuf, Stderr: &errBuf})
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)

	err = root.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

// newLibrary writes a small library folder and returns its path.
func newLibrary(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), libraryName)
	testutil.WriteTree(t, dir, map[string]string{
		"library.json":     `{"machineName":"H5P.InteractiveBook"}`,
		"dist/h5p-book.js": "console.log('book')",
		"language/.en.swp": "swap",
		"semantics.json~":  "backup",
		".git/HEAD":        "ref: refs/heads/main",
	})
	return dir
}

func TestRootCommand_Pack(t *testing.T) {
	t.Parallel()

	dir := newLibrary(t)
	stdout, stderr, err := runCLI(t, defaultsProvider(), dir)
	if err != nil {
		t.Fatalf("pack failed: %v\nstderr: %s", err, stderr)
	}

	archivePath := dir + archiver.DefaultExtension
	for _, want := range []string{
		"Created: " + archivePath,
		`Top-level entries in archive: ["` + libraryName + `"]`,
		"Archive root OK -> contains folder: " + libraryName,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q\ngot:\n%s", want, stdout)
		}
	}

	entries := testutil.ReadZip(t, archivePath)
	if _, ok := entries[libraryName+"/library.json"]; !ok {
		t.Errorf("library.json missing from archive: %v", entries)
	}
	for name := range entries {
		if strings.Contains(name, "/.") || strings.HasSuffix(name, "~") {
			t.Errorf("hidden or backup entry %q should be skipped", name)
		}
	}
}

func TestRootCommand_NoSkipHidden(t *testing.T) {
	t.Parallel()

	dir := newLibrary(t)
	if _, stderr, err := runCLI(t, defaultsProvider(), dir, "--no-skip-hidden"); err != nil {
		t.Fatalf("pack failed: %v\nstderr: %s", err, stderr)
	}

	entries := testutil.ReadZip(t, dir+archiver.DefaultExtension)
	for _, name := range []string{
		libraryName + "/.git/HEAD",
		libraryName + "/language/.en.swp",
	} {
		if _, ok := entries[name]; !ok {
			t.Errorf("expected %s with --no-skip-hidden", name)
		}
	}
	if _, ok := entries[libraryName+"/semantics.json~"]; ok {
		t.Error("backup files are skipped regardless of --no-skip-hidden")
	}
}

func TestRootCommand_Out(t *testing.T) {
	t.Parallel()

	dir := newLibrary(t)
	out := filepath.Join(t.TempDir(), "book.zip")
	stdout, stderr, err := runCLI(t, defaultsProvider(), dir, "-o", out)
	if err != nil {
		t.Fatalf("pack failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "Created: "+out) {
		t.Errorf("stdout should report %s, got:\n%s", out, stdout)
	}
	if _, err := os.Stat(dir + archiver.DefaultExtension); !os.IsNotExist(err) {
		t.Error("default archive path should not be written when --out is given")
	}
}

func TestRootCommand_Compression(t *testing.T) {
	t.Parallel()

	storeCfg := config.DefaultConfig()
	storeCfg.Compression = archiver.CompressionStore

	tests := []struct {
		name     string
		cfg      *config.Config
		args     []string
		wantMeth uint16
	}{
		{name: "default deflate", cfg: config.DefaultConfig(), wantMeth: zip.Deflate},
		{name: "flag store", cfg: config.DefaultConfig(), args: []string{"--compression", "store"}, wantMeth: zip.Store},
		{name: "config store", cfg: storeCfg, wantMeth: zip.Store},
		{name: "flag overrides config", cfg: storeCfg, args: []string{"--compression", "DEFLATE"}, wantMeth: zip.Deflate},
		{name: "level flag", cfg: config.DefaultConfig(), args: []string{"--level", "9"}, wantMeth: zip.Deflate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newLibrary(t)
			args := append([]string{dir}, tt.args...)
			if _, stderr, err := runCLI(t, staticConfig{cfg: tt.cfg}, args...); err != nil {
				t.Fatalf("pack failed: %v\nstderr: %s", err, stderr)
			}

			entry := testutil.ReadZip(t, dir+archiver.DefaultExtension)[libraryName+"/library.json"]
			if entry.Method != tt.wantMeth {
				t.Errorf("method = %d, want %d", entry.Method, tt.wantMeth)
			}
		})
	}
}

func TestRootCommand_InvalidCompression(t *testing.T) {
	t.Parallel()

	dir := newLibrary(t)
	_, stderr, err := runCLI(t, defaultsProvider(), dir, "--compression", "lz4")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected ExitError with code 1, got %v", err)
	}
	if !errors.Is(err, archiver.ErrInvalidCompression) {
		t.Errorf("error should wrap ErrInvalidCompression, got %v", err)
	}
	if !strings.Contains(stderr, "deflate or --compression store") {
		t.Errorf("stderr should carry the suggestion, got:\n%s", stderr)
	}
	if _, statErr := os.Stat(dir + archiver.DefaultExtension); !os.IsNotExist(statErr) {
		t.Error("no archive should be written for an invalid compression")
	}
}

func TestRootCommand_MissingFolder(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "H5P.Missing-1.0")
	stdout, stderr, err := runCLI(t, defaultsProvider(), missing)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected ExitError with code 1, got %v", err)
	}
	if !errors.Is(err, archiver.ErrNotFound) {
		t.Errorf("error should wrap archiver.ErrNotFound, got %v", err)
	}
	if !strings.Contains(stderr, "directory not found") {
		t.Errorf("stderr should explain the failure, got:\n%s", stderr)
	}
	if stdout != "" {
		t.Errorf("nothing should be printed to stdout, got:\n%s", stdout)
	}
	if _, statErr := os.Stat(missing + archiver.DefaultExtension); !os.IsNotExist(statErr) {
		t.Error("no archive should be created for a missing folder")
	}
}

func TestRootCommand_MissingFolderVerbose(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "H5P.Missing-1.0")
	_, stderr, err := runCLI(t, defaultsProvider(), missing, "--verbose")
	if err == nil {
		t.Fatal("expected an error for a missing folder")
	}
	if !strings.Contains(stderr, "Error chain:") {
		t.Errorf("verbose output should include the error chain, got:\n%s", stderr)
	}
	if !strings.Contains(stderr, "Library folder not found") {
		t.Errorf("verbose output should include the issue help, got:\n%s", stderr)
	}
}

func TestRootCommand_RootMissingWarning(t *testing.T) {
	t.Parallel()

	// A folder holding only skipped files produces no entries at all.
	dir := filepath.Join(t.TempDir(), libraryName)
	testutil.WriteTree(t, dir, map[string]string{".gitignore": "*.h5p"})

	stdout, stderr, err := runCLI(t, defaultsProvider(), dir)
	if err != nil {
		t.Fatalf("missing root must not fail the run: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "Top-level entries in archive: []") {
		t.Errorf("expected an empty entry list, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Warning: archive top-level does not contain expected root folder: "+libraryName) {
		t.Errorf("expected the root warning, got:\n%s", stdout)
	}
}

func TestRootCommand_VerboseTracesEntries(t *testing.T) {
	t.Parallel()

	dir := newLibrary(t)
	_, stderr, err := runCLI(t, defaultsProvider(), dir, "-v")
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if !strings.Contains(stderr, "added file") || !strings.Contains(stderr, libraryName+"/library.json") {
		t.Errorf("verbose mode should trace written entries, got:\n%s", stderr)
	}
}

func TestRootCommand_ConfigError(t *testing.T) {
	t.Parallel()

	loadErr := &config.InvalidConfigError{FieldErrors: []error{errors.New("level 42 out of range")}}
	_, stderr, err := runCLI(t, staticConfig{err: loadErr}, newLibrary(t))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(stderr, "level 42 out of range") {
		t.Errorf("stderr should show the config error, got:\n%s", stderr)
	}
}

func TestRootCommand_RequiresFolder(t *testing.T) {
	t.Parallel()

	if _, _, err := runCLI(t, defaultsProvider()); err == nil {
		t.Error("expected an error without a folder argument")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{Config: defaultsProvider()}))

	for _, name := range []string{"out", "no-skip-hidden", "compression", "level"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("root command should define --%s", name)
		}
	}
	for _, name := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("root command should define persistent --%s", name)
		}
	}
	if f := root.Flags().ShorthandLookup("o"); f == nil || f.Name != "out" {
		t.Error("-o should be the shorthand for --out")
	}
}
