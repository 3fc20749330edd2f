// SPDX-License-Identifier: MPL-2.0

package randomizer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/invowk/texshuffle/internal/config"
	"github.com/invowk/texshuffle/pkg/types"

	"github.com/charmbracelet/log"
)

// PackNameLayout formats the timestamp in default pack names.
const PackNameLayout = "2006-01-02_15-04-05"

var (
	// ErrInvalidOptions is the sentinel error wrapped by InvalidOptionsError.
	ErrInvalidOptions = errors.New("invalid randomizer options")
	// ErrInvalidPackName is returned for pack names that are not a single
	// path element.
	ErrInvalidPackName = errors.New("invalid pack name")
)

type (
	// Clock supplies the time used for default pack names.
	Clock interface {
		Now() time.Time
	}

	// Options configures one run of the pipeline.
	Options struct {
		// SourceDir is the texture root of the unpacked source pack.
		SourceDir types.FilesystemPath
		// OutputDir receives <PackName>.zip; empty means the working directory.
		OutputDir types.FilesystemPath
		// PackName names the pack directory and archive; empty selects
		// DefaultPackName at the time the run starts.
		PackName string
		Seed     types.Seed
		Config   *config.Config
		// Overwrite replaces an existing pack directory, archive or manifest.
		Overwrite bool
		// WriteManifest stores a TOML record of the pairs next to the archive.
		WriteManifest bool
		// Logger receives debug output; nil discards it.
		Logger *log.Logger
		// Clock defaults to the system clock.
		Clock Clock
	}

	// InvalidOptionsError collects field-level validation errors of Options.
	InvalidOptionsError struct {
		FieldErrors []error
	}

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// Error implements the error interface for InvalidOptionsError.
func (e *InvalidOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid randomizer options: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid randomizer options: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidOptions and every field error.
func (e *InvalidOptionsError) Unwrap() []error {
	return append([]error{ErrInvalidOptions}, e.FieldErrors...)
}

// DefaultPackName returns the name used when none is given, e.g.
// "Randomized Textures (2024-05-01_13-37-00)".
func DefaultPackName(t time.Time) string {
	return fmt.Sprintf("Randomized Textures (%s)", t.Format(PackNameLayout))
}

// Validate checks the fields that must be set by the caller. Empty optional
// fields are allowed; withDefaults fills them.
func (o Options) Validate() error {
	var errs []error
	if err := o.SourceDir.Validate(); err != nil {
		errs = append(errs, err)
	}
	if o.OutputDir != "" {
		if err := o.OutputDir.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if o.PackName != "" {
		if err := validatePackName(o.PackName); err != nil {
			errs = append(errs, err)
		}
	}
	if o.Config == nil {
		errs = append(errs, errors.New("config is required"))
	} else if err := o.Config.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidOptionsError{FieldErrors: errs}
	}
	return nil
}

func validatePackName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: must be non-empty", ErrInvalidPackName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidPackName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidPackName, name)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.PackName == "" {
		o.PackName = DefaultPackName(o.Clock.Now())
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}
