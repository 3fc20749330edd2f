// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/invowk/texshuffle/pkg/types"
)

// ErrEntryNotFound is returned by ReadFile for a name the archive lacks.
var ErrEntryNotFound = errors.New("archive entry not found")

// Zip writes every file and directory under srcDir into a new Deflate
// archive at zipPath. Entry names are relative to srcDir and use forward
// slashes, so srcDir's contents sit at the archive root. A partially written
// archive is removed when any step fails.
func Zip(srcDir, zipPath types.FilesystemPath) (err error) {
	info, err := os.Stat(srcDir.String())
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", srcDir)
	}

	zipFile, err := os.Create(zipPath.String())
	if err != nil {
		return fmt.Errorf("failed to create ZIP file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(zipPath.String()) // Best-effort cleanup of the partial archive
		}
	}()

	zipWriter := zip.NewWriter(zipFile)

	walkErr := filepath.WalkDir(srcDir.String(), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, relErr := filepath.Rel(srcDir.String(), path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		if relPath == "." {
			return nil
		}
		// Use forward slashes for ZIP compatibility
		name := filepath.ToSlash(relPath)

		fileInfo, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("failed to get file info: %w", infoErr)
		}

		header, headerErr := zip.FileInfoHeader(fileInfo)
		if headerErr != nil {
			return fmt.Errorf("failed to create file header: %w", headerErr)
		}

		if d.IsDir() {
			header.Name = name + "/"
			header.Method = zip.Store
			if _, createErr := zipWriter.CreateHeader(header); createErr != nil {
				return fmt.Errorf("failed to create directory entry: %w", createErr)
			}
			return nil
		}

		header.Name = name
		header.Method = zip.Deflate
		writer, writerErr := zipWriter.CreateHeader(header)
		if writerErr != nil {
			return fmt.Errorf("failed to create ZIP entry: %w", writerErr)
		}

		return copyInto(writer, path)
	})

	closeErr := zipWriter.Close()
	fileCloseErr := zipFile.Close()

	switch {
	case walkErr != nil:
		return fmt.Errorf("failed to archive %s: %w", srcDir, walkErr)
	case closeErr != nil:
		return fmt.Errorf("failed to finish ZIP file: %w", closeErr)
	case fileCloseErr != nil:
		return fmt.Errorf("failed to close ZIP file: %w", fileCloseErr)
	}
	return nil
}

func copyInto(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}
	return nil
}

// List returns the entry names of the archive at zipPath, sorted.
// Directory entries keep their trailing slash.
func List(zipPath types.FilesystemPath) (names []string, err error) {
	r, err := zip.OpenReader(zipPath.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP file: %w", err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	names = make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns the uncompressed content of the entry called name.
func ReadFile(zipPath types.FilesystemPath, name string) (data []byte, err error) {
	r, err := zip.OpenReader(zipPath.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP file: %w", err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, openErr := f.Open()
		if openErr != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, openErr)
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}
