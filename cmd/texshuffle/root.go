// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/texshuffle/internal/config"
	"github.com/invowk/texshuffle/pkg/types"
)

// DefaultSourceDir is the texture root read when --source is not given.
const DefaultSourceDir = "pack/assets/minecraft/textures"

var (
	// Version is set at build time via -ldflags.
	Version = "dev"
	// Commit is set at build time via -ldflags.
	Commit = "unknown"
	// BuildDate is set at build time via -ldflags.
	BuildDate = "unknown"
)

// rootFlags holds the flags shared by the root command and its subcommands.
type rootFlags struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the texshuffle command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}
	runFlags := &randomizeFlags{}

	rootCmd := &cobra.Command{
		Use:   "texshuffle [seed]",
		Short: "Build a resource pack with randomly swapped textures",
		Long: `texshuffle reads the textures of an unpacked Minecraft resource pack,
shuffles which file ends up at which path, and writes the result as a new
resource pack archive. Textures only trade places within compatibility
groups, so item textures stay items and block textures stay blocks.

Pass a seed to reproduce a previous pack. Without one, the current time is
used and printed so the run can be repeated.`,
		Example: `  texshuffle
  texshuffle 1700000000000
  texshuffle --source ./default/assets/minecraft/textures --name "Chaos Pack"
  texshuffle config init`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRandomize(cmd, app, flags, runFlags, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is ./"+config.ConfigFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.Flags().StringVar(&runFlags.source, "source", DefaultSourceDir, "texture root of the unpacked source pack")
	rootCmd.Flags().StringVar(&runFlags.output, "output", ".", "directory that receives the archive")
	rootCmd.Flags().StringVar(&runFlags.name, "name", "", "pack name (default is \"Randomized Textures (<timestamp>)\")")
	rootCmd.Flags().BoolVar(&runFlags.force, "force", false, "replace an existing pack directory, archive or manifest")
	rootCmd.Flags().BoolVar(&runFlags.manifest, "manifest", false, "write a TOML record of every swapped pair next to the archive")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(
		newConfigCommand(app, flags),
		newInspectCommand(app, flags),
	)

	return rootCmd
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		os.Exit(int(exitCodeFor(err)))
	}
}

// handleError skips errors the command has already reported and hands
// everything else to fang's default renderer.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
