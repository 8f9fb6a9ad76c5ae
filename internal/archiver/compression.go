// SPDX-License-Identifier: MPL-2.0

package archiver

import (
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Compression selects how file entries are stored in the archive.
type Compression string

const (
	// CompressionDeflate stores entries with deflate. This is the default.
	CompressionDeflate Compression = "deflate"
	// CompressionStore stores entries uncompressed.
	CompressionStore Compression = "store"
)

// ParseCompression parses a compression name. The empty string selects deflate.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(name))); c {
	case "":
		return CompressionDeflate, nil
	case CompressionDeflate, CompressionStore:
		return c, nil
	default:
		return "", &InvalidCompressionError{Value: name}
	}
}

// String returns the compression name.
func (c Compression) String() string { return string(c) }

// Validate returns an error if the compression is not recognized.
func (c Compression) Validate() error {
	switch c {
	case CompressionDeflate, CompressionStore:
		return nil
	default:
		return &InvalidCompressionError{Value: string(c)}
	}
}

// Method returns the zip method used for file entries.
func (c Compression) Method() uint16 {
	if c == CompressionStore {
		return zip.Store
	}
	return zip.Deflate
}

// registerDeflate installs a klauspost flate writer as the zip Deflate
// compressor so the configured level is honored.
func registerDeflate(zw *zip.Writer, level int) error {
	// Fail early on a bad level instead of on the first entry.
	if _, err := flate.NewWriter(io.Discard, level); err != nil {
		return err
	}
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
	return nil
}
