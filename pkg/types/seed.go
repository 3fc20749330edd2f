// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSeed is the sentinel error wrapped by InvalidSeedError.
var ErrInvalidSeed = errors.New("invalid seed")

type (
	// Seed drives every random decision of a run. The same Seed applied to the
	// same source tree always yields the same pack.
	Seed int64

	// InvalidSeedError is returned when a seed argument is not a base-10
	// 64-bit integer.
	InvalidSeedError struct {
		Value string
	}
)

// ParseSeed parses a base-10 signed 64-bit integer.
func ParseSeed(s string) (Seed, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &InvalidSeedError{Value: s}
	}
	return Seed(n), nil
}

// SeedFromTime derives a seed from t in milliseconds since the Unix epoch.
func SeedFromTime(t time.Time) Seed { return Seed(t.UnixMilli()) }

// Uint64 returns the seed bits reinterpreted as an unsigned integer.
func (s Seed) Uint64() uint64 { return uint64(s) }

// String returns the decimal representation of the seed.
func (s Seed) String() string { return strconv.FormatInt(int64(s), 10) }

// Error implements the error interface for InvalidSeedError.
func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("invalid seed %q: must be an integer", e.Value)
}

// Unwrap returns ErrInvalidSeed for errors.Is() compatibility.
func (e *InvalidSeedError) Unwrap() error { return ErrInvalidSeed }
