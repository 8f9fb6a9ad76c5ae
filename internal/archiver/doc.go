// SPDX-License-Identifier: MPL-2.0

// Package archiver packages a directory tree into a zip-compatible archive
// whose entries are all rooted under the directory's base name.
//
// An H5P library folder such as "H5P.InteractiveBook-1.11" is packed into
// "H5P.InteractiveBook-1.11.h5p" where every entry path starts with
// "H5P.InteractiveBook-1.11/". Platforms importing H5P libraries (Moodle and
// friends) expect the version-qualified folder as the archive root, so the
// folder's contents are never flattened to the archive root.
//
// Filtering rules applied while walking:
//   - hidden directories (name starting with ".") are pruned when SkipHidden is set
//   - hidden files are skipped when SkipHidden is set
//   - editor/backup artifacts (by default names ending in "~" or ".bak") are always skipped
//   - a directory with no files and no subdirectories is recorded as a "name/" entry
package archiver
