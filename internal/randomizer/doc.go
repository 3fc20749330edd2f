// SPDX-License-Identifier: MPL-2.0

// Package randomizer runs the texture shuffling pipeline end to end:
// classify the source tree, draw a seeded permutation per group, lay out and
// fill the pack, compress it and remove the unpacked copy.
//
// Progress is reported through an Observer so the command layer decides how
// to render it; the pipeline itself writes nothing to stdout.
package randomizer
