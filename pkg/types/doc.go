// SPDX-License-Identifier: MPL-2.0

// Package types defines the value types shared by texshuffle's packages:
// host file system paths, texture-relative paths, seeds and exit codes.
// Each carries its own validation.
//
// This package is a leaf dependency: it imports only the standard library.
package types
