// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/texshuffle/internal/config"
	"github.com/invowk/texshuffle/internal/issue"
	"github.com/invowk/texshuffle/internal/randomizer"
	"github.com/invowk/texshuffle/pkg/types"
)

type randomizeFlags struct {
	source   string
	output   string
	name     string
	force    bool
	manifest bool
}

func runRandomize(cmd *cobra.Command, app *App, flags *rootFlags, runFlags *randomizeFlags, args []string) error {
	seed, err := resolveSeed(app, args)
	if err != nil {
		return usageError(err)
	}

	// Printed before anything can fail so that every run is reproducible.
	fmt.Fprintf(app.stdout, "random seed: %s\n", seed)

	ctx := cmd.Context()
	cfg, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
	})
	if err != nil {
		return app.reportError(err, flags.verbose)
	}

	logger := newLogger(app, flags.verbose)
	logger.Debug("configuration loaded",
		"excluded", len(cfg.ExcludedDirs),
		"groups", len(cfg.CompatibilityGroups),
		"extension", cfg.Extension)

	progress := newProgressPrinter(app.stdout, app.stderr)
	res, err := app.Pipeline.Run(ctx, randomizer.Options{
		SourceDir:     types.FilesystemPath(runFlags.source),
		OutputDir:     types.FilesystemPath(runFlags.output),
		PackName:      runFlags.name,
		Seed:          seed,
		Config:        cfg,
		Overwrite:     runFlags.force,
		WriteManifest: runFlags.manifest,
		Logger:        logger,
		Clock:         app.Clock,
	}, progress)
	progress.interrupt()
	if err != nil {
		return app.reportError(err, flags.verbose)
	}

	fmt.Fprintf(app.stdout, "%s Created %s (%d textures)\n",
		SuccessStyle.Render("✓"), PathStyle.Render(res.ArchivePath.String()), len(res.Pairs))
	if res.ManifestPath != "" {
		fmt.Fprintf(app.stdout, "%s Wrote manifest %s\n",
			SuccessStyle.Render("✓"), PathStyle.Render(res.ManifestPath.String()))
	}
	return nil
}

// resolveSeed parses the optional seed argument, falling back to the
// current time in milliseconds.
func resolveSeed(app *App, args []string) (types.Seed, error) {
	if len(args) == 0 {
		return types.SeedFromTime(app.Clock.Now()), nil
	}
	seed, err := types.ParseSeed(args[0])
	if err != nil {
		return 0, issue.NewErrorContext().
			WithOperation("parse seed").
			WithResource(args[0]).
			WithSuggestion("Pass a whole number between -9223372036854775808 and 9223372036854775807").
			WithIssue(issue.InvalidSeedId).
			Wrap(err).
			BuildError()
	}
	return seed, nil
}

func newLogger(app *App, verbose bool) *log.Logger {
	logger := log.NewWithOptions(app.stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
