// SPDX-License-Identifier: MPL-2.0

// Package config loads the shuffling rules using Viper, with CUE as the
// schema language.
//
// The configuration file is config.json in the working directory unless an
// explicit path is given. It lists excluded directories and compatibility
// groups, and may override the image extension and the pack metadata. The
// file is validated against an embedded CUE schema (config_schema.cue)
// before any value reaches the pipeline, and every path entry is converted
// once into a types.TexturePath so the rest of the program never sees the
// "string or list of strings" form.
//
// Scalar settings can be overridden from the environment with the
// TEXSHUFFLE_ prefix (TEXSHUFFLE_EXTENSION, TEXSHUFFLE_PACKFORMAT,
// TEXSHUFFLE_DESCRIPTION).
package config
