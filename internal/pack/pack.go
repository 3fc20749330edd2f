// SPDX-License-Identifier: MPL-2.0

package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/texshuffle/internal/shuffle"
	"github.com/invowk/texshuffle/pkg/fspath"
	"github.com/invowk/texshuffle/pkg/types"
)

const (
	// MetadataFileName is the resource pack descriptor at the pack root.
	MetadataFileName = "pack.mcmeta"
	// DefaultFormat is the pack_format understood by Minecraft 1.20.
	DefaultFormat = 15
)

// TexturesSubdir is where texture files live inside a pack.
var TexturesSubdir = []string{"assets", "minecraft", "textures"}

var (
	// ErrPackExists is returned by Create when the target directory exists
	// and overwriting was not requested.
	ErrPackExists = errors.New("resource pack directory already exists")
	// ErrDestinationIsDir is returned by Copy when a directory occupies the
	// destination of a texture.
	ErrDestinationIsDir = errors.New("destination is a directory")
)

type (
	// Metadata is the content of pack.mcmeta.
	Metadata struct {
		Format      int    `json:"pack_format"`
		Description string `json:"description"`
	}

	// Pack is an unpacked resource pack under construction.
	Pack struct {
		dir types.FilesystemPath
	}

	// CopyError records the pair whose copy failed.
	CopyError struct {
		Pair shuffle.Pair
		Err  error
	}

	mcmeta struct {
		Pack Metadata `json:"pack"`
	}
)

// Error implements the error interface for CopyError.
func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s -> %s: %v", e.Pair.Original, e.Pair.Destination, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CopyError) Unwrap() error { return e.Err }

// Create lays out a new pack in dir: pack.mcmeta and an empty texture tree.
// An existing dir is an error wrapping ErrPackExists, unless overwrite is
// set, in which case it is removed first.
func Create(dir types.FilesystemPath, meta Metadata, overwrite bool) (*Pack, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}

	if _, statErr := os.Lstat(dir.String()); statErr == nil {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s", ErrPackExists, dir)
		}
		if err := os.RemoveAll(dir.String()); err != nil {
			return nil, fmt.Errorf("failed to remove existing pack: %w", err)
		}
	}

	p := &Pack{dir: dir}
	if err := os.MkdirAll(p.TexturesDir().String(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create texture directory: %w", err)
	}

	data, err := json.MarshalIndent(mcmeta{Pack: meta}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", MetadataFileName, err)
	}
	if err := os.WriteFile(fspath.JoinStr(dir, MetadataFileName).String(), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", MetadataFileName, err)
	}

	return p, nil
}

// ParseMetadata decodes the content of a pack.mcmeta file.
func ParseMetadata(data []byte) (Metadata, error) {
	var m mcmeta
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode %s: %w", MetadataFileName, err)
	}
	return m.Pack, nil
}

// Dir returns the pack root.
func (p *Pack) Dir() types.FilesystemPath { return p.dir }

// TexturesDir returns the directory that mirrors the source texture root.
func (p *Pack) TexturesDir() types.FilesystemPath {
	return fspath.JoinStr(p.dir, TexturesSubdir...)
}

// Copy writes the content of srcRoot/pair.Original to the pack at
// pair.Destination. Missing parent directories are created, an existing
// destination file is replaced, and the source's mode and modification time
// are kept.
func (p *Pack) Copy(srcRoot types.FilesystemPath, pair shuffle.Pair) error {
	src := fspath.Resolve(srcRoot, pair.Original)
	dst := fspath.Resolve(p.TexturesDir(), pair.Destination)

	if err := copyFile(src, dst); err != nil {
		return &CopyError{Pair: pair, Err: err}
	}
	return nil
}

// Remove deletes the pack directory and everything in it.
func (p *Pack) Remove() error {
	if err := os.RemoveAll(p.dir.String()); err != nil {
		return fmt.Errorf("failed to remove %s: %w", p.dir, err)
	}
	return nil
}

func copyFile(src, dst types.FilesystemPath) error {
	in, err := os.Open(src.String())
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }() // Read-only file; close error non-critical

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if dstInfo, statErr := os.Stat(dst.String()); statErr == nil && dstInfo.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestinationIsDir, dst)
	}

	if err := os.MkdirAll(fspath.Dir(dst).String(), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	out, err := os.OpenFile(dst.String(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	// O_CREATE only applies the mode to new files.
	if err := out.Chmod(info.Mode().Perm()); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst.String(), info.ModTime(), info.ModTime())
}
