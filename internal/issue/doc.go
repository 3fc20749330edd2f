// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing failure reports for texshuffle.
//
// An ActionableError names the step that failed, the path it failed on and
// what the user can do about it. Well-known failures also link to an Issue,
// a Markdown help card that the CLI renders with glamour.
package issue
