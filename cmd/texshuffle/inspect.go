// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/texshuffle/internal/archive"
	"github.com/invowk/texshuffle/internal/issue"
	"github.com/invowk/texshuffle/internal/manifest"
	"github.com/invowk/texshuffle/internal/pack"
	"github.com/invowk/texshuffle/pkg/types"
)

// texturesPrefix is the archive directory holding textures.
var texturesPrefix = strings.Join(pack.TexturesSubdir, "/") + "/"

func newInspectCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive.zip>",
		Short: "Describe a generated resource pack archive",
		Long: `Print the pack metadata and texture count of an archive. When a manifest
written with --manifest sits next to the archive, its seed is shown too.
With -v every texture entry is listed.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := inspectArchive(app, types.FilesystemPath(args[0]), flags.verbose); err != nil {
				return app.reportError(err, flags.verbose)
			}
			return nil
		},
	}
}

func inspectArchive(app *App, zipPath types.FilesystemPath, verbose bool) error {
	names, err := archive.List(zipPath)
	if err != nil {
		return inspectError(zipPath, err)
	}
	data, err := archive.ReadFile(zipPath, pack.MetadataFileName)
	if err != nil {
		return inspectError(zipPath, err)
	}
	meta, err := pack.ParseMetadata(data)
	if err != nil {
		return inspectError(zipPath, err)
	}

	var textures []string
	for _, name := range names {
		if strings.HasPrefix(name, texturesPrefix) && !strings.HasSuffix(name, "/") {
			textures = append(textures, strings.TrimPrefix(name, texturesPrefix))
		}
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Resource pack"))
	printField(app, "Archive:", PathStyle.Render(zipPath.String()))
	printField(app, "Format:", fmt.Sprint(meta.Format))
	if meta.Description != "" {
		printField(app, "Description:", meta.Description)
	}
	printField(app, "Textures:", fmt.Sprint(len(textures)))

	manifestPath := types.FilesystemPath(strings.TrimSuffix(zipPath.String(), ".zip") + manifest.FileSuffix)
	m, err := manifest.Read(manifestPath)
	switch {
	case err == nil:
		printField(app, "Seed:", fmt.Sprint(m.Seed))
		printField(app, "Manifest:", PathStyle.Render(manifestPath.String()))
		pairs, pairsErr := m.ShufflePairs()
		if pairsErr != nil {
			fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+pairsErr.Error())
			break
		}
		moved := 0
		for _, p := range pairs {
			if p.Original != p.Destination {
				moved++
			}
		}
		printField(app, "Moved:", fmt.Sprintf("%d of %d", moved, len(pairs)))
	case !errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+err.Error())
	}

	if verbose {
		fmt.Fprintln(app.stdout)
		for _, name := range textures {
			fmt.Fprintf(app.stdout, "  %s\n", name)
		}
	}
	return nil
}

func printField(app *App, label, value string) {
	fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render(label), value)
}

func inspectError(zipPath types.FilesystemPath, err error) error {
	return issue.NewErrorContext().
		WithOperation("inspect archive").
		WithResource(zipPath.String()).
		WithSuggestion("Check that the path points to a pack produced by texshuffle").
		Wrap(err).
		BuildError()
}
