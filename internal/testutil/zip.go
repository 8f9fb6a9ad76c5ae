// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ZipEntry is a decoded archive entry.
type ZipEntry struct {
	Method  uint16
	IsDir   bool
	Content []byte
}

// ReadZip opens the archive at path and returns its entries keyed by name.
// The test fails if the archive cannot be read or holds a duplicate name.
func ReadZip(t testing.TB, path string) map[string]ZipEntry {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive %s: %v", path, err)
	}
	defer MustClose(t, zr)

	entries := make(map[string]ZipEntry, len(zr.File))
	for _, file := range zr.File {
		if _, dup := entries[file.Name]; dup {
			t.Fatalf("duplicate archive entry %q", file.Name)
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		MustClose(t, rc)
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", file.Name, err)
		}
		entries[file.Name] = ZipEntry{
			Method:  file.Method,
			IsDir:   file.FileInfo().IsDir(),
			Content: data,
		}
	}
	return entries
}
