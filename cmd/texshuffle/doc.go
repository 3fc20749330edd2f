// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for texshuffle.
//
// The root command runs the randomizer pipeline. Subcommands manage the
// configuration file (config init, config show) and inspect produced
// archives (inspect). Commands receive an *App that holds their services
// and output streams, so tests can drive them without touching os.Stdout.
package cmd
