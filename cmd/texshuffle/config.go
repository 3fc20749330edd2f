// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/texshuffle/internal/config"
	"github.com/invowk/texshuffle/pkg/types"
)

func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the shuffle configuration",
		Long: `Manage the configuration file that decides which texture directories are
left alone and which directories share a shuffle pool.`,
	}

	configCmd.AddCommand(newConfigInitCommand(app, flags), newConfigShowCommand(app, flags))
	return configCmd
}

func newConfigInitCommand(app *App, flags *rootFlags) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + config.ConfigFileName,
		Long: `Write a starter configuration that excludes UI and font textures and keeps
item, block and entity textures in separate pools. An existing file is kept
unless --force is given.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			target := types.FilesystemPath(path)
			written, err := config.CreateDefaultConfig(target, force)
			if err != nil {
				return app.reportError(err, flags.verbose)
			}
			if !written {
				fmt.Fprintf(app.stdout, "%s %s already exists (use --force to replace it)\n",
					WarningStyle.Render("!"), PathStyle.Render(target.String()))
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n",
				SuccessStyle.Render("✓"), PathStyle.Render(target.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", config.ConfigFileName, "where to write the configuration")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}

func newConfigShowCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults and TEXSHUFFLE_* environment
overrides are applied. Paths are shown in their normalized form.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := config.LoadOptions{ConfigFilePath: types.FilesystemPath(flags.configPath)}
			cfg, err := app.Config.Load(cmd.Context(), opts)
			if err != nil {
				return app.reportError(err, flags.verbose)
			}

			out, err := config.GenerateJSON(cfg)
			if err != nil {
				return app.reportError(err, flags.verbose)
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Configuration"))
			fmt.Fprintf(app.stdout, "%s %s\n\n", SubtitleStyle.Render("File:"), PathStyle.Render(config.ResolvePath(opts).String()))
			fmt.Fprint(app.stdout, string(out))
			return nil
		},
	}
}
