// SPDX-License-Identifier: MPL-2.0

package archiver

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
)

type (
	// NamePredicate decides on a single directory entry by its base name.
	NamePredicate func(name string) bool

	// Visit describes one directory reached by Walk.
	Visit struct {
		// Dir is the absolute path of the visited directory.
		Dir string
		// Subdirs lists subdirectory names accepted by the descend predicate,
		// in lexical order. Symlinks to directories are listed but not followed.
		Subdirs []string
		// Files lists every non-directory name, before the include predicate.
		Files []string
		// Included lists the names from Files accepted by the include predicate.
		Included []string
	}

	// VisitFunc is called once per directory, parents before children.
	// Returning an error stops the walk.
	VisitFunc func(v Visit) error
)

// IsEmpty reports whether the directory had no files and no (descended) subdirectories.
// Files rejected by the include predicate still count.
func (v Visit) IsEmpty() bool {
	return len(v.Files) == 0 && len(v.Subdirs) == 0
}

// Walk traverses root top-down. Subdirectories rejected by descend are pruned
// together with everything below them. Nil predicates accept everything.
func Walk(root string, descend, include NamePredicate, fn VisitFunc) error {
	if descend == nil {
		descend = acceptAll
	}
	if include == nil {
		include = acceptAll
	}
	return walkDir(root, descend, include, fn)
}

func walkDir(dir string, descend, include NamePredicate, fn VisitFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	v := Visit{Dir: dir}
	var follow []string
	for _, entry := range entries {
		name := entry.Name()
		isDir, isLink, statErr := classify(dir, entry)
		if statErr != nil {
			return statErr
		}
		if !isDir {
			v.Files = append(v.Files, name)
			if include(name) {
				v.Included = append(v.Included, name)
			}
			continue
		}
		if !descend(name) {
			continue
		}
		v.Subdirs = append(v.Subdirs, name)
		if !isLink {
			follow = append(follow, name)
		}
	}

	// os.ReadDir already sorts by name; keep the guarantee explicit for callers.
	slices.Sort(v.Subdirs)
	slices.Sort(v.Files)
	slices.Sort(v.Included)

	if err := fn(v); err != nil {
		return err
	}

	for _, name := range follow {
		if err := walkDir(filepath.Join(dir, name), descend, include, fn); err != nil {
			return err
		}
	}
	return nil
}

// classify reports whether entry is a directory, following symlinks for the
// answer without ever descending through them.
func classify(dir string, entry os.DirEntry) (isDir, isLink bool, err error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), false, nil
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		// Dangling links are listed as files.
		if os.IsNotExist(err) {
			return false, true, nil
		}
		return false, true, fmt.Errorf("failed to stat %s: %w", filepath.Join(dir, entry.Name()), err)
	}
	return info.IsDir(), true, nil
}

func acceptAll(string) bool { return true }
