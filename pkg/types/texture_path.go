// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// TextureRoot is the TexturePath of the texture root directory itself.
const TextureRoot TexturePath = "."

// ErrInvalidTexturePath is the sentinel error wrapped by InvalidTexturePathError.
var ErrInvalidTexturePath = errors.New("invalid texture path")

type (
	// TexturePath is a path relative to a texture root, in the canonical form
	// produced by NewTexturePath: cleaned, OS separators, never absolute and
	// never escaping the root. Two TexturePath values name the same location
	// exactly when they compare equal.
	TexturePath string

	// InvalidTexturePathError is returned when a raw path cannot be turned
	// into a TexturePath.
	InvalidTexturePathError struct {
		Value  string
		Reason string
	}
)

// NewTexturePath joins the given segments and normalizes the result.
// Segments may use either slash style. The result is rejected when it is
// empty, absolute, or refers to a location outside the texture root.
func NewTexturePath(segments ...string) (TexturePath, error) {
	raw := strings.Join(segments, "/")
	if len(segments) == 0 || strings.TrimSpace(raw) == "" {
		return "", &InvalidTexturePathError{Value: raw, Reason: "must be non-empty"}
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return "", &InvalidTexturePathError{Value: raw, Reason: "path segments must be non-empty"}
		}
	}

	slashed := strings.ReplaceAll(raw, `\`, "/")
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(raw) || filepath.VolumeName(raw) != "" {
		return "", &InvalidTexturePathError{Value: raw, Reason: "must be relative to the texture root"}
	}

	cleaned := filepath.Clean(filepath.FromSlash(slashed))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", &InvalidTexturePathError{Value: raw, Reason: "must not leave the texture root"}
	}

	return TexturePath(cleaned), nil
}

// String returns the string representation of the TexturePath.
func (p TexturePath) String() string { return string(p) }

// Slash returns the path with forward slashes, as used inside zip archives
// and manifests.
func (p TexturePath) Slash() string { return filepath.ToSlash(string(p)) }

// Dir returns the TexturePath of the directory containing p.
func (p TexturePath) Dir() TexturePath { return TexturePath(filepath.Dir(string(p))) }

// Join appends a single directory entry name to p.
func (p TexturePath) Join(name string) TexturePath {
	return TexturePath(filepath.Join(string(p), name))
}

// Validate returns an error if p is not in canonical form.
func (p TexturePath) Validate() error {
	canonical, err := NewTexturePath(string(p))
	if err != nil {
		return err
	}
	if canonical != p {
		return &InvalidTexturePathError{Value: string(p), Reason: fmt.Sprintf("not normalized (want %q)", canonical)}
	}
	return nil
}

// Error implements the error interface for InvalidTexturePathError.
func (e *InvalidTexturePathError) Error() string {
	return fmt.Sprintf("invalid texture path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidTexturePath for errors.Is() compatibility.
func (e *InvalidTexturePathError) Unwrap() error { return ErrInvalidTexturePath }
