// SPDX-License-Identifier: MPL-2.0

package archiver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

const (
	// DefaultExtension is appended to the folder's base name when no output path is given.
	DefaultExtension = ".h5p"
	// DefaultLevel is the deflate level used when Options.Level is zero.
	DefaultLevel = flate.DefaultCompression
)

// DefaultExcludeSuffixes are the editor and backup artifacts never packed.
var DefaultExcludeSuffixes = []string{"~", ".bak"}

type (
	// Options configures Pack.
	Options struct {
		// Directory is the folder to package. Required.
		Directory string
		// Output is the archive path. Empty means <parent>/<base><Extension>.
		Output string
		// SkipHidden prunes dot-directories and skips dot-files.
		SkipHidden bool
		// Compression selects the method for file entries.
		Compression Compression
		// Level is the deflate level (-2..9). Zero selects DefaultLevel;
		// use CompressionStore for uncompressed entries. Ignored for CompressionStore.
		Level int
		// Extension is used to derive the default output path.
		Extension string
		// ExcludeSuffixes lists file name suffixes that are always skipped.
		ExcludeSuffixes []string
		// Logger receives one debug line per written entry. Optional.
		Logger *log.Logger
	}

	// Result describes a finished archive.
	Result struct {
		// Path is the absolute path of the written archive.
		Path string
		// Base is the folder name every entry is rooted under.
		Base string
		// Files is the number of file entries written.
		Files int
		// Dirs is the number of empty-directory entries written.
		Dirs int
		// Bytes is the total uncompressed size of the file entries.
		Bytes int64
	}
)

// DefaultOptions returns options matching the command-line defaults for dir.
func DefaultOptions(dir string) Options {
	return Options{
		Directory:       dir,
		SkipHidden:      true,
		Compression:     CompressionDeflate,
		Extension:       DefaultExtension,
		ExcludeSuffixes: DefaultExcludeSuffixes,
	}
}

// Pack writes opts.Directory into a zip archive rooted at the directory's base name.
// A missing source yields a *NotFoundError and no archive file is created.
// On a later failure the partially written archive is left in place.
func Pack(ctx context.Context, opts Options) (result *Result, err error) {
	compression := opts.Compression
	if compression == "" {
		compression = CompressionDeflate
	}
	if err = compression.Validate(); err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil || !info.IsDir() {
		return nil, &NotFoundError{Path: absDir}
	}

	absDir = trimSeparators(absDir)
	base := filepath.Base(absDir)
	parent := filepath.Dir(absDir)

	outputPath, err := resolveOutput(opts.Output, parent, base, opts.Extension)
	if err != nil {
		return nil, err
	}

	archiveFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := archiveFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(archiveFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to finalize archive: %w", closeErr)
		}
	}()

	if compression == CompressionDeflate {
		level := opts.Level
		if level == 0 {
			level = DefaultLevel
		}
		if err = registerDeflate(zipWriter, level); err != nil {
			return nil, fmt.Errorf("invalid deflate level %d: %w", level, err)
		}
	}

	w := &entryWriter{
		zw:         zipWriter,
		method:     compression.Method(),
		logger:     opts.Logger,
		result:     &Result{Path: outputPath, Base: base},
		parent:     parent,
		base:       base,
		skipHidden: opts.SkipHidden,
		exclude:    opts.ExcludeSuffixes,
	}

	err = Walk(absDir, w.descend, w.include, func(v Visit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return w.writeVisit(ctx, v)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to archive %s: %w", absDir, err)
	}

	return w.result, nil
}

// resolveOutput picks the archive path: explicit output, or <parent>/<base><ext>.
func resolveOutput(output, parent, base, ext string) (string, error) {
	if output == "" {
		if ext == "" {
			ext = DefaultExtension
		}
		output = filepath.Join(parent, base+ext)
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	return abs, nil
}

// trimSeparators strips trailing separators while keeping a filesystem root intact.
func trimSeparators(p string) string {
	trimmed := strings.TrimRight(p, string(filepath.Separator))
	if trimmed == "" || strings.HasSuffix(trimmed, ":") {
		return p
	}
	return trimmed
}

// entryWriter turns walk visits into zip entries.
type entryWriter struct {
	zw         *zip.Writer
	method     uint16
	logger     *log.Logger
	result     *Result
	parent     string
	base       string
	skipHidden bool
	exclude    []string
}

func (w *entryWriter) descend(name string) bool {
	return !w.skipHidden || !isHidden(name)
}

func (w *entryWriter) include(name string) bool {
	if w.skipHidden && isHidden(name) {
		return false
	}
	for _, suffix := range w.exclude {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

func (w *entryWriter) writeVisit(ctx context.Context, v Visit) error {
	relDir, err := w.archiveDir(v.Dir)
	if err != nil {
		return err
	}

	if v.IsEmpty() {
		if err := w.writeDir(relDir, v.Dir); err != nil {
			return err
		}
	}

	for _, name := range v.Included {
		if err := ctx.Err(); err != nil {
			return err
		}
		diskPath := filepath.Join(v.Dir, name)
		// The archive may be written inside the tree being packed.
		if diskPath == w.result.Path {
			continue
		}
		if err := w.writeFile(path.Join(relDir, name), diskPath); err != nil {
			return err
		}
	}
	return nil
}

// archiveDir maps an on-disk directory to its slash-separated archive path.
func (w *entryWriter) archiveDir(dir string) (string, error) {
	rel, err := filepath.Rel(w.parent, dir)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	if rel == "." {
		rel = w.base
	}
	return filepath.ToSlash(rel), nil
}

func (w *entryWriter) writeDir(relDir, diskPath string) error {
	header := &zip.FileHeader{
		Name:   strings.TrimRight(relDir, "/") + "/",
		Method: zip.Store,
	}
	if info, err := os.Stat(diskPath); err == nil {
		header.Modified = info.ModTime()
		header.SetMode(info.Mode())
	}
	if _, err := w.zw.CreateHeader(header); err != nil {
		return fmt.Errorf("failed to create directory entry: %w", err)
	}
	w.result.Dirs++
	if w.logger != nil {
		w.logger.Debug("added directory", "entry", header.Name)
	}
	return nil
}

func (w *entryWriter) writeFile(name, diskPath string) (err error) {
	file, err := os.Open(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", diskPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	header, err := zip.FileInfoHeader(fileInfo)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = name
	header.Method = w.method

	writer, err := w.zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create ZIP entry: %w", err)
	}

	n, err := io.Copy(writer, file)
	if err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}

	w.result.Files++
	w.result.Bytes += n
	if w.logger != nil {
		w.logger.Debug("added file", "entry", name, "size", n)
	}
	return nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
