// SPDX-License-Identifier: MPL-2.0

package classify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/invowk/texshuffle/pkg/fspath"
	"github.com/invowk/texshuffle/pkg/types"
)

// ErrSourceNotFound is returned when the texture root does not exist or is
// not a directory.
var ErrSourceNotFound = errors.New("source texture directory not found")

type (
	// Options controls which directories are walked and how they are grouped.
	Options struct {
		// Excluded directories are skipped together with everything beneath
		// them. Matching is exact on normalized paths.
		Excluded []types.TexturePath
		// Groups lists compatibility groups in priority order.
		Groups [][]types.TexturePath
		// Extension selects eligible files by exact, case-sensitive match.
		Extension string
	}

	// Group is a pool of files that are shuffled among themselves.
	Group struct {
		// Index is the position of the group in the Classify result.
		Index int
		// Dirs holds the configured directories of the group; it is nil for
		// singleton groups.
		Dirs []types.TexturePath
		// Files are in traversal order.
		Files []types.TexturePath
		// Configured is true for groups that come from the configuration.
		Configured bool
	}

	// SourceNotFoundError wraps ErrSourceNotFound with the offending path.
	SourceNotFoundError struct {
		Path types.FilesystemPath
		Err  error
	}

	walker struct {
		root     types.FilesystemPath
		opts     Options
		excluded map[types.TexturePath]struct{}
		// groupOf maps a configured directory to its first group.
		groupOf map[types.TexturePath]int
		groups  []Group
	}
)

// Error implements the error interface for SourceNotFoundError.
func (e *SourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrSourceNotFound, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrSourceNotFound, e.Path)
}

// Unwrap returns ErrSourceNotFound for errors.Is() compatibility.
func (e *SourceNotFoundError) Unwrap() error { return ErrSourceNotFound }

// Len returns the number of files in the group.
func (g Group) Len() int { return len(g.Files) }

// Classify walks root depth-first and partitions its eligible files into
// groups. The result starts with one group per configured compatibility group
// (possibly empty), followed by one singleton group per directory that no
// configured group claims, in traversal order.
//
// Within a directory, files come before subdirectories and both are visited
// in lexical order, so the result is fully determined by the tree contents.
func Classify(root types.FilesystemPath, opts Options) ([]Group, error) {
	info, err := os.Stat(root.String())
	if err != nil {
		return nil, &SourceNotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &SourceNotFoundError{Path: root, Err: errors.New("not a directory")}
	}

	w := &walker{
		root:     root,
		opts:     opts,
		excluded: make(map[types.TexturePath]struct{}, len(opts.Excluded)),
		groupOf:  make(map[types.TexturePath]int),
		groups:   make([]Group, 0, len(opts.Groups)),
	}
	for _, dir := range opts.Excluded {
		w.excluded[dir] = struct{}{}
	}
	for i, dirs := range opts.Groups {
		for _, dir := range dirs {
			if _, taken := w.groupOf[dir]; !taken {
				w.groupOf[dir] = i
			}
		}
		w.groups = append(w.groups, Group{
			Index:      i,
			Dirs:       slices.Clone(dirs),
			Files:      []types.TexturePath{},
			Configured: true,
		})
	}

	if err := w.visit(types.TextureRoot); err != nil {
		return nil, err
	}
	return w.groups, nil
}

// visit handles one directory: its own files first, then its subdirectories.
func (w *walker) visit(dir types.TexturePath) error {
	abs := fspath.Resolve(w.root, dir)
	entries, err := os.ReadDir(abs.String())
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", abs, err)
	}

	var files []types.TexturePath
	var subdirs []types.TexturePath
	for _, entry := range entries {
		child := dir.Join(entry.Name())
		switch {
		case entry.IsDir():
			if _, skip := w.excluded[child]; !skip {
				subdirs = append(subdirs, child)
			}
		case entry.Type().IsRegular() || entry.Type()&os.ModeSymlink != 0:
			if w.eligible(abs, entry) {
				files = append(files, child)
			}
		}
	}

	if idx, ok := w.groupOf[dir]; ok {
		w.groups[idx].Files = append(w.groups[idx].Files, files...)
	} else {
		if files == nil {
			files = []types.TexturePath{}
		}
		w.groups = append(w.groups, Group{Index: len(w.groups), Files: files})
	}

	for _, sub := range subdirs {
		if err := w.visit(sub); err != nil {
			return err
		}
	}
	return nil
}

// eligible reports whether entry carries the configured extension and, for
// symlinks, points at a regular file.
func (w *walker) eligible(dirAbs types.FilesystemPath, entry os.DirEntry) bool {
	if filepath.Ext(entry.Name()) != w.opts.Extension {
		return false
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return true
	}
	info, err := os.Stat(fspath.JoinStr(dirAbs, entry.Name()).String())
	return err == nil && info.Mode().IsRegular()
}
