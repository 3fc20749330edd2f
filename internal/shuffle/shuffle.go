// SPDX-License-Identifier: MPL-2.0

package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/invowk/texshuffle/internal/classify"
	"github.com/invowk/texshuffle/pkg/types"
)

// pcgStream is the fixed second PCG word; only the seed varies between runs.
const pcgStream uint64 = 0x7465787368756666 // "texshuff"

// ErrNotPermutation is returned by Verify when pairs do not permute a group.
var ErrNotPermutation = errors.New("pairs are not a permutation of the group")

type (
	// Pair maps the texture whose content is taken (Original) to the place
	// it is written to in the pack (Destination).
	Pair struct {
		Original    types.TexturePath
		Destination types.TexturePath
	}

	// PermutationError describes the group whose pairs failed Verify.
	PermutationError struct {
		Group  int
		Reason string
	}
)

// Error implements the error interface for PermutationError.
func (e *PermutationError) Error() string {
	return fmt.Sprintf("group %d: %s: %s", e.Group, ErrNotPermutation, e.Reason)
}

// Unwrap returns ErrNotPermutation for errors.Is() compatibility.
func (e *PermutationError) Unwrap() error { return ErrNotPermutation }

// NewRand returns a generator whose sequence is fully determined by seed.
func NewRand(seed types.Seed) *rand.Rand {
	return rand.New(rand.NewPCG(seed.Uint64(), pcgStream))
}

// Shuffle permutes each group independently and pairs the i-th original file
// with the i-th file of the permutation. Groups are processed in order, so
// for a fixed generator state the result is reproducible.
func Shuffle(groups []classify.Group, rng *rand.Rand) []Pair {
	total := 0
	for _, g := range groups {
		total += g.Len()
	}

	pairs := make([]Pair, 0, total)
	for _, g := range groups {
		shuffled := slices.Clone(g.Files)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for i, original := range g.Files {
			pairs = append(pairs, Pair{Original: original, Destination: shuffled[i]})
		}
	}
	return pairs
}

// Verify checks that pairs is the concatenation, in group order, of one
// permutation per group: originals follow the group's file order and the
// destinations of a group are exactly its files.
func Verify(groups []classify.Group, pairs []Pair) error {
	offset := 0
	for _, g := range groups {
		n := g.Len()
		if offset+n > len(pairs) {
			return &PermutationError{Group: g.Index, Reason: fmt.Sprintf("want %d pairs, only %d left", n, len(pairs)-offset)}
		}
		chunk := pairs[offset : offset+n]
		remaining := make(map[types.TexturePath]int, n)
		for _, f := range g.Files {
			remaining[f]++
		}
		for i, p := range chunk {
			if p.Original != g.Files[i] {
				return &PermutationError{Group: g.Index, Reason: fmt.Sprintf("pair %d original %s, want %s", i, p.Original, g.Files[i])}
			}
			if remaining[p.Destination] == 0 {
				return &PermutationError{Group: g.Index, Reason: fmt.Sprintf("destination %s is not an unused file of the group", p.Destination)}
			}
			remaining[p.Destination]--
		}
		offset += n
	}
	if offset != len(pairs) {
		return fmt.Errorf("%w: %d extra pairs", ErrNotPermutation, len(pairs)-offset)
	}
	return nil
}
