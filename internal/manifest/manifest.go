// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/invowk/texshuffle/internal/shuffle"
	"github.com/invowk/texshuffle/pkg/types"

	"github.com/pelletier/go-toml/v2"
)

// FileSuffix is appended to the pack name to form the manifest file name.
const FileSuffix = ".mapping.toml"

type (
	// Manifest records how a pack was produced so it can be reproduced or
	// looked up later.
	Manifest struct {
		Seed       int64   `toml:"seed"`
		PackName   string  `toml:"pack_name"`
		PackFormat int     `toml:"pack_format"`
		Extension  string  `toml:"extension"`
		Pairs      []Entry `toml:"pairs"`
	}

	// Entry is one pair with forward-slash paths.
	Entry struct {
		Original    string `toml:"original"`
		Destination string `toml:"destination"`
	}
)

// FileName returns the manifest file name for a pack.
func FileName(packName string) string {
	return packName + FileSuffix
}

// New builds a manifest from pipeline results.
func New(seed types.Seed, packName string, packFormat int, extension string, pairs []shuffle.Pair) Manifest {
	entries := make([]Entry, len(pairs))
	for i, p := range pairs {
		entries[i] = Entry{Original: p.Original.Slash(), Destination: p.Destination.Slash()}
	}
	return Manifest{
		Seed:       int64(seed),
		PackName:   packName,
		PackFormat: packFormat,
		Extension:  extension,
		Pairs:      entries,
	}
}

// ShufflePairs converts the entries back into pairs.
func (m Manifest) ShufflePairs() ([]shuffle.Pair, error) {
	pairs := make([]shuffle.Pair, len(m.Pairs))
	for i, e := range m.Pairs {
		orig, err := types.NewTexturePath(e.Original)
		if err != nil {
			return nil, fmt.Errorf("pairs[%d].original: %w", i, err)
		}
		dest, err := types.NewTexturePath(e.Destination)
		if err != nil {
			return nil, fmt.Errorf("pairs[%d].destination: %w", i, err)
		}
		pairs[i] = shuffle.Pair{Original: orig, Destination: dest}
	}
	return pairs, nil
}

// Write encodes m as TOML to path, replacing any existing file.
func Write(path types.FilesystemPath, m Manifest) error {
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	enc.SetIndentTables(true)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path.String(), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Read decodes the manifest at path. Unknown keys are rejected.
func Read(path types.FilesystemPath) (Manifest, error) {
	f, err := os.Open(path.String())
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	var m Manifest
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return m, nil
}
