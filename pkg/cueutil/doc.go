// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE helpers.
//
// FormatError turns CUE evaluation errors into messages prefixed with the file
// and a JSON-style field path, for example:
//
//	config.cue: ui.color_scheme: 3 errors in empty disjunction
//
// CheckFileSize guards against reading unreasonably large files before they
// are compiled.
package cueutil
