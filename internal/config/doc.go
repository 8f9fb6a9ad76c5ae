// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/h5pack/config.cue (~/.config on Linux,
// ~/Library/Application Support/h5pack/config.cue on macOS, %APPDATA%\h5pack\config.cue
// on Windows), falling back to ./config.cue. Environment variables prefixed with H5PACK_
// override file values (H5PACK_SKIP_HIDDEN, H5PACK_UI_VERBOSE, ...).
//
// Configuration files are validated against an embedded CUE schema (config_schema.cue)
// so that type errors are reported with the offending field path.
package config
