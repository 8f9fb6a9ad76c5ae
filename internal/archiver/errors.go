// SPDX-License-Identifier: MPL-2.0

package archiver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the source path does not exist or is not a directory.
	ErrNotFound = errors.New("directory not found")
	// ErrInvalidCompression is returned when a Compression value is not recognized.
	ErrInvalidCompression = errors.New("invalid compression")
)

type (
	// NotFoundError is returned by Pack when the source directory is missing.
	// It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Path string
	}

	// InvalidCompressionError is returned when a Compression value is not recognized.
	// It wraps ErrInvalidCompression for errors.Is() compatibility.
	InvalidCompressionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// Unwrap returns ErrNotFound so callers can use errors.Is for classification.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *InvalidCompressionError) Error() string {
	return fmt.Sprintf("invalid compression %q (valid: %s, %s)", e.Value, CompressionDeflate, CompressionStore)
}

// Unwrap returns ErrInvalidCompression so callers can use errors.Is for classification.
func (e *InvalidCompressionError) Unwrap() error { return ErrInvalidCompression }
