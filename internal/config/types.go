// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/texshuffle/pkg/types"
)

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidPathEntry is the sentinel error wrapped by InvalidPathEntryError.
	ErrInvalidPathEntry = errors.New("invalid path entry")
	// ErrInvalidExtension is the sentinel error wrapped by InvalidExtensionError.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrInvalidPackFormat is the sentinel error wrapped by InvalidPackFormatError.
	ErrInvalidPackFormat = errors.New("invalid pack format")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")
)

type (
	// Config holds the shuffling rules for one run. It is immutable once loaded.
	Config struct {
		// ExcludedDirs are never descended into.
		ExcludedDirs []types.TexturePath
		// CompatibilityGroups are ordered; a directory belongs to the first
		// group that lists it.
		CompatibilityGroups [][]types.TexturePath
		// Extension selects eligible files, e.g. ".png".
		Extension string
		// PackFormat is written to pack.mcmeta.
		PackFormat int
		// Description is written to pack.mcmeta.
		Description string
	}

	// fileConfig mirrors the on-disk shape of the configuration file. Path
	// entries stay untyped here and are converted by toConfig.
	fileConfig struct {
		ExcludedDirs        []any  `json:"excludedDirs,omitempty" mapstructure:"excludedDirs"`
		CompatibilityGroups []any  `json:"compatibilityGroups,omitempty" mapstructure:"compatibilityGroups"`
		Extension           string `json:"extension,omitempty" mapstructure:"extension"`
		PackFormat          int    `json:"packFormat,omitempty" mapstructure:"packFormat"`
		Description         string `json:"description,omitempty" mapstructure:"description"`
	}

	// InvalidPathEntryError is returned when an entry of excludedDirs or
	// compatibilityGroups is neither a string nor a list of strings, or does
	// not describe a location inside the texture root.
	InvalidPathEntryError struct {
		// Location is the JSON path of the entry, e.g. "compatibilityGroups[1][0]".
		Location string
		Value    any
		Err      error
	}

	// InvalidExtensionError is returned when the extension does not start
	// with a dot or contains a separator.
	InvalidExtensionError struct {
		Value string
	}

	// InvalidPackFormatError is returned for a pack format below 1.
	InvalidPackFormatError struct {
		Value int
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface for InvalidPathEntryError.
func (e *InvalidPathEntryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid path entry at %s (%v): %v", e.Location, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid path entry at %s (%v)", e.Location, e.Value)
}

// Unwrap returns ErrInvalidPathEntry and the underlying cause.
func (e *InvalidPathEntryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidPathEntry}
	}
	return []error{ErrInvalidPathEntry, e.Err}
}

// Error implements the error interface for InvalidExtensionError.
func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension %q: must look like \".png\"", e.Value)
}

// Unwrap returns ErrInvalidExtension for errors.Is() compatibility.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// Error implements the error interface for InvalidPackFormatError.
func (e *InvalidPackFormatError) Error() string {
	return fmt.Sprintf("invalid pack format %d: must be at least 1", e.Value)
}

// Unwrap returns ErrInvalidPackFormat for errors.Is() compatibility.
func (e *InvalidPackFormatError) Unwrap() error { return ErrInvalidPackFormat }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks every field of the Config and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	for _, p := range c.ExcludedDirs {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, group := range c.CompatibilityGroups {
		for _, p := range group {
			if err := p.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if !validExtension(c.Extension) {
		errs = append(errs, &InvalidExtensionError{Value: c.Extension})
	}
	if c.PackFormat < 1 {
		errs = append(errs, &InvalidPackFormatError{Value: c.PackFormat})
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

func validExtension(ext string) bool {
	return len(ext) > 1 && strings.HasPrefix(ext, ".") && !strings.ContainsAny(ext[1:], `./\`)
}

// toConfig converts the raw file representation into a typed Config,
// applying defaults for fields the file left empty.
func (f *fileConfig) toConfig() (*Config, error) {
	cfg := DefaultConfig()

	excluded, err := parsePathList("excludedDirs", f.ExcludedDirs)
	if err != nil {
		return nil, err
	}
	cfg.ExcludedDirs = excluded

	groups := make([][]types.TexturePath, 0, len(f.CompatibilityGroups))
	for i, rawGroup := range f.CompatibilityGroups {
		loc := fmt.Sprintf("compatibilityGroups[%d]", i)
		entries, ok := rawGroup.([]any)
		if !ok {
			return nil, &InvalidPathEntryError{
				Location: loc,
				Value:    rawGroup,
				Err:      fmt.Errorf("got %T, want a list of paths", rawGroup),
			}
		}
		group, err := parsePathList(loc, entries)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	cfg.CompatibilityGroups = groups

	if f.Extension != "" {
		cfg.Extension = f.Extension
	}
	if f.PackFormat != 0 {
		cfg.PackFormat = f.PackFormat
	}
	cfg.Description = f.Description

	return cfg, nil
}

func parsePathList(loc string, raw []any) ([]types.TexturePath, error) {
	paths := make([]types.TexturePath, 0, len(raw))
	for i, entry := range raw {
		p, err := parsePathEntry(fmt.Sprintf("%s[%d]", loc, i), entry)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// parsePathEntry accepts "a/b" or ["a", "b"] and returns the canonical
// TexturePath for either form.
func parsePathEntry(loc string, raw any) (types.TexturePath, error) {
	var segments []string
	switch v := raw.(type) {
	case string:
		segments = []string{v}
	case []string:
		segments = v
	case []any:
		segments = make([]string, 0, len(v))
		for _, seg := range v {
			s, ok := seg.(string)
			if !ok {
				return "", &InvalidPathEntryError{
					Location: loc,
					Value:    raw,
					Err:      fmt.Errorf("segment %v is %T, want string", seg, seg),
				}
			}
			segments = append(segments, s)
		}
	default:
		return "", &InvalidPathEntryError{
			Location: loc,
			Value:    raw,
			Err:      fmt.Errorf("got %T, want string or list of strings", raw),
		}
	}

	p, err := types.NewTexturePath(segments...)
	if err != nil {
		return "", &InvalidPathEntryError{Location: loc, Value: raw, Err: err}
	}
	return p, nil
}

// toFileConfig converts a Config back to its on-disk representation.
// Paths are written as forward-slash strings.
func toFileConfig(cfg *Config) fileConfig {
	excluded := make([]any, len(cfg.ExcludedDirs))
	for i, p := range cfg.ExcludedDirs {
		excluded[i] = p.Slash()
	}
	groups := make([]any, len(cfg.CompatibilityGroups))
	for i, group := range cfg.CompatibilityGroups {
		entries := make([]any, len(group))
		for j, p := range group {
			entries[j] = p.Slash()
		}
		groups[i] = entries
	}
	return fileConfig{
		ExcludedDirs:        excluded,
		CompatibilityGroups: groups,
		Extension:           cfg.Extension,
		PackFormat:          cfg.PackFormat,
		Description:         cfg.Description,
	}
}
