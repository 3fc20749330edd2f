// SPDX-License-Identifier: MPL-2.0

// Package shuffle turns classified groups into (original, destination)
// pairs using a seeded PCG generator.
package shuffle
