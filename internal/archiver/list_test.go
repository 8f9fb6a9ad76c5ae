// SPDX-License-Identifier: MPL-2.0

package archiver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/testutil"

	"github.com/klauspost/compress/zip"
	"golang.org/x/exp/slices"
)

func writeZip(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		// Directory entries carry no data.
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := w.Write([]byte(name)); err != nil {
			t.Fatal(err)
		}
	}
	testutil.MustClose(t, zw)
	testutil.MustClose(t, f)
	return path
}

func TestListTopLevelEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{
			name:  "single root",
			names: []string{"H5P.Foo-1.0/library.json", "H5P.Foo-1.0/js/foo.js", "H5P.Foo-1.0/empty/"},
			want:  []string{"H5P.Foo-1.0"},
		},
		{
			name:  "directory entries only",
			names: []string{"H5P.Empty-1.0/", "H5P.Empty-1.0/icons/"},
			want:  []string{"H5P.Empty-1.0"},
		},
		{
			name:  "flattened archive",
			names: []string{"library.json", "js/foo.js", "semantics.json"},
			want:  []string{"js", "library.json", "semantics.json"},
		},
		{
			name:  "multiple roots sorted",
			names: []string{"zeta/a", "alpha/b", "mid", "alpha/c"},
			want:  []string{"alpha", "mid", "zeta"},
		},
		{
			name:  "empty archive",
			names: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeZip(t, tt.names...)
			got, err := ListTopLevelEntries(path)
			if err != nil {
				t.Fatalf("ListTopLevelEntries() failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ListTopLevelEntries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListTopLevelEntries_PackedArchive(t *testing.T) {
	t.Parallel()

	dir := newLibrary(t, map[string]string{
		"library.json": "{}",
		"js/book.js":   "",
		"empty/":       "",
		".git/config":  "",
	})
	result, err := Pack(context.Background(), DefaultOptions(dir))
	if err != nil {
		t.Fatalf("Pack() failed: %v", err)
	}

	got, err := ListTopLevelEntries(result.Path)
	if err != nil {
		t.Fatalf("ListTopLevelEntries() failed: %v", err)
	}
	if !slices.Equal(got, []string{bookDir}) {
		t.Errorf("ListTopLevelEntries() = %v, want [%s]", got, bookDir)
	}
	if !HasRoot(got, bookDir) {
		t.Errorf("HasRoot(%v, %q) = false", got, bookDir)
	}
}

func TestListTopLevelEntries_InvalidArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.h5p")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ListTopLevelEntries(path)
	if !errors.Is(err, zip.ErrFormat) {
		t.Errorf("ListTopLevelEntries() error = %v, want zip.ErrFormat", err)
	}
}

func TestListTopLevelEntries_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ListTopLevelEntries(filepath.Join(t.TempDir(), "missing.h5p"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ListTopLevelEntries() error = %v, want os.ErrNotExist", err)
	}
}

func TestHasRoot(t *testing.T) {
	t.Parallel()

	entries := []string{"H5P.A-1.0", "H5P.B-2.0"}
	if !HasRoot(entries, "H5P.B-2.0") {
		t.Error("HasRoot should find H5P.B-2.0")
	}
	if HasRoot(entries, "H5P.C-3.0") {
		t.Error("HasRoot should not find H5P.C-3.0")
	}
	if HasRoot(nil, "H5P.A-1.0") {
		t.Error("HasRoot on nil entries should be false")
	}
}
