// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and writes the TOML record of a run: the seed, the
// pack settings and every (original, destination) pair. Paths always use
// forward slashes so a manifest is portable between platforms.
package manifest
