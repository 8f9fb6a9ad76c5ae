// SPDX-License-Identifier: MPL-2.0

package archiver

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/exp/slices"
)

// ListTopLevelEntries returns the distinct first path segments of every entry
// in the archive, sorted. A file that is not a zip archive yields an error
// wrapping zip.ErrFormat.
func ListTopLevelEntries(archivePath string) (entries []string, err error) {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := zipReader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return TopLevelEntries(zipReader.File), nil
}

// TopLevelEntries computes the sorted set of first path segments of files.
func TopLevelEntries(files []*zip.File) []string {
	tops := make([]string, 0, len(files))
	for _, file := range files {
		top, _, _ := strings.Cut(file.Name, "/")
		tops = append(tops, top)
	}
	slices.Sort(tops)
	return slices.Compact(tops)
}

// HasRoot reports whether base is among the archive's top-level entries.
func HasRoot(entries []string, base string) bool {
	_, found := slices.BinarySearch(entries, base)
	return found
}
