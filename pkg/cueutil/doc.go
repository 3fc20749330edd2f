// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Configuration files are validated against an embedded CUE schema before
// their values reach the rest of the program:
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	values, err := cueutil.DecodeMap(
//	    configSchema,
//	    userFileBytes,
//	    "#Config",
//	    cueutil.WithFilename("config.json"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//
// Errors carry JSON-path style locations such as
// "compatibilityGroups[1][0]: conflicting values".
package cueutil
