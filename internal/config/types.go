// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosochka/moodle-h5p-library-loader/internal/archiver"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// minLevel and maxLevel bound the deflate level.
	minLevel = -2
	maxLevel = 9
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects every field problem found by Config.Validate.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SkipHidden prunes dot-directories and skips dot-files.
		SkipHidden bool `json:"skip_hidden" mapstructure:"skip_hidden"`
		// Compression selects the method for file entries.
		Compression archiver.Compression `json:"compression" mapstructure:"compression"`
		// Level is the deflate level; 0 selects the library default.
		Level int `json:"level" mapstructure:"level"`
		// Extension is appended to the folder name for the default output path.
		Extension string `json:"extension" mapstructure:"extension"`
		// ExcludeSuffixes lists file name suffixes that are never packed.
		ExcludeSuffixes []string `json:"exclude_suffixes" mapstructure:"exclude_suffixes"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme used to render help and issues
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is for classification.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the config sentinel and the sentinel of each field problem.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Validate checks the values the CUE schema cannot see, such as those
// supplied through environment variables.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Compression.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Level < minLevel || c.Level > maxLevel {
		errs = append(errs, fmt.Errorf("level %d out of range [%d, %d]", c.Level, minLevel, maxLevel))
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		errs = append(errs, fmt.Errorf("extension %q must start with a dot", c.Extension))
	}
	for i, suffix := range c.ExcludeSuffixes {
		if suffix == "" {
			errs = append(errs, fmt.Errorf("exclude_suffixes[%d] must not be empty", i))
		}
	}
	if ok, schemeErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, schemeErrs...)
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SkipHidden:      true,
		Compression:     archiver.CompressionDeflate,
		Level:           0,
		Extension:       archiver.DefaultExtension,
		ExcludeSuffixes: append([]string(nil), archiver.DefaultExcludeSuffixes...),
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
