// SPDX-License-Identifier: MPL-2.0

package randomizer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/invowk/texshuffle/internal/archive"
	"github.com/invowk/texshuffle/internal/classify"
	"github.com/invowk/texshuffle/internal/issue"
	"github.com/invowk/texshuffle/internal/manifest"
	"github.com/invowk/texshuffle/internal/pack"
	"github.com/invowk/texshuffle/internal/shuffle"
	"github.com/invowk/texshuffle/pkg/fspath"
	"github.com/invowk/texshuffle/pkg/types"

	"github.com/charmbracelet/log"
)

// Result describes a completed run.
type Result struct {
	PackName    string
	ArchivePath types.FilesystemPath
	// ManifestPath is empty unless a manifest was requested.
	ManifestPath types.FilesystemPath
	Groups       []classify.Group
	Pairs        []shuffle.Pair
	// CleanupErr is set when the archive was written but the unpacked pack
	// directory could not be removed.
	CleanupErr error
}

type run struct {
	opts   Options
	obs    Observer
	logger *log.Logger

	packDir     types.FilesystemPath
	archivePath types.FilesystemPath
	pack        *pack.Pack
	// remove deletes the unpacked pack directory.
	remove func(*pack.Pack) error
}

// Run produces one randomized resource pack. Source textures are never
// modified. Every fatal error is an *issue.ActionableError naming the failed
// step; once the pack directory exists, a fatal error also removes it.
// Cancellation is honored between copies.
func Run(ctx context.Context, opts Options, obs Observer) (Result, error) {
	r, err := newRun(opts, obs)
	if err != nil {
		return Result{}, err
	}
	return r.execute(ctx)
}

func newRun(opts Options, obs Observer) (*run, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = NopObserver{}
	}
	opts = opts.withDefaults()

	return &run{
		opts:        opts,
		obs:         obs,
		logger:      opts.Logger,
		packDir:     fspath.JoinStr(opts.OutputDir, opts.PackName),
		archivePath: fspath.JoinStr(opts.OutputDir, opts.PackName+".zip"),
		remove:      (*pack.Pack).Remove,
	}, nil
}

func (r *run) execute(ctx context.Context) (Result, error) {
	res := Result{PackName: r.opts.PackName}

	r.obs.PhaseStarted(PhaseShuffle)
	groups, pairs, err := r.shuffle()
	if err != nil {
		return res, err
	}
	res.Groups, res.Pairs = groups, pairs
	r.obs.PhaseDone(PhaseShuffle)

	if err := r.checkOutputs(); err != nil {
		return res, err
	}

	r.obs.PhaseStarted(PhaseCreate)
	if err := r.create(); err != nil {
		return res, err
	}
	r.obs.PhaseDone(PhaseCreate)

	r.obs.PhaseStarted(PhaseCopy)
	if err := r.copyAll(ctx, pairs); err != nil {
		r.abort()
		return res, err
	}
	r.obs.PhaseDone(PhaseCopy)

	r.obs.PhaseStarted(PhaseCompress)
	if err := r.compress(); err != nil {
		r.abort()
		return res, err
	}
	res.ArchivePath = r.archivePath
	r.obs.PhaseDone(PhaseCompress)

	r.obs.PhaseStarted(PhaseCleanup)
	if err := r.remove(r.pack); err != nil {
		res.CleanupErr = issue.NewErrorContext().
			WithOperation("clean up").
			WithResource(r.packDir.String()).
			WithIssue(issue.CleanupFailedId).
			WithSuggestion("The archive is complete; delete the directory by hand").
			Wrap(err).
			Build()
		r.logger.Warn("cleanup failed", "dir", r.packDir, "error", err)
		r.obs.Warning(fmt.Sprintf("could not remove %s: %v", r.packDir, err))
	}
	r.obs.PhaseDone(PhaseCleanup)

	if r.opts.WriteManifest {
		r.obs.PhaseStarted(PhaseManifest)
		path, err := r.writeManifest(pairs)
		if err != nil {
			return res, err
		}
		res.ManifestPath = path
		r.obs.PhaseDone(PhaseManifest)
	}

	return res, nil
}

func (r *run) shuffle() ([]classify.Group, []shuffle.Pair, error) {
	cfg := r.opts.Config
	groups, err := classify.Classify(r.opts.SourceDir, classify.Options{
		Excluded:  cfg.ExcludedDirs,
		Groups:    cfg.CompatibilityGroups,
		Extension: cfg.Extension,
	})
	if err != nil {
		ectx := issue.NewErrorContext().
			WithOperation("read source textures").
			WithResource(r.opts.SourceDir.String())
		if errors.Is(err, classify.ErrSourceNotFound) {
			ectx = ectx.
				WithIssue(issue.SourceNotFoundId).
				WithSuggestion("Unpack a resource pack so its textures are at " + r.opts.SourceDir.String()).
				WithSuggestion("Pass --source to read textures from another directory")
		}
		return nil, nil, ectx.Wrap(err).BuildError()
	}

	pairs := shuffle.Shuffle(groups, shuffle.NewRand(r.opts.Seed))
	if err := shuffle.Verify(groups, pairs); err != nil {
		return nil, nil, fmt.Errorf("internal error: %w", err)
	}

	r.logger.Debug("classified source", "dir", r.opts.SourceDir, "groups", len(groups), "files", len(pairs), "seed", r.opts.Seed)
	return groups, pairs, nil
}

// checkOutputs refuses to touch an existing archive or manifest before any
// output is created.
func (r *run) checkOutputs() error {
	if r.opts.Overwrite {
		return nil
	}
	existing := []types.FilesystemPath{r.archivePath}
	if r.opts.WriteManifest {
		existing = append(existing, r.manifestPath())
	}
	for _, path := range existing {
		if _, err := os.Lstat(path.String()); err == nil {
			return packExistsError(path, fmt.Errorf("%w: %s", pack.ErrPackExists, path))
		}
	}
	return nil
}

func (r *run) create() error {
	cfg := r.opts.Config
	p, err := pack.Create(r.packDir, pack.Metadata{
		Format:      cfg.PackFormat,
		Description: cfg.Description,
	}, r.opts.Overwrite)
	if err != nil {
		if errors.Is(err, pack.ErrPackExists) {
			return packExistsError(r.packDir, err)
		}
		_ = os.RemoveAll(r.packDir.String()) // Best-effort removal of a half-created pack
		return issue.NewErrorContext().
			WithOperation("create resource pack").
			WithResource(r.packDir.String()).
			Wrap(err).
			BuildError()
	}
	r.pack = p
	r.logger.Debug("created pack", "dir", r.packDir)
	return nil
}

func (r *run) copyAll(ctx context.Context, pairs []shuffle.Pair) error {
	total := len(pairs)
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return issue.NewErrorContext().
				WithOperation("copy textures").
				WithResource(r.packDir.String()).
				Wrap(err).
				BuildError()
		}
		r.obs.CopyProgress(i, total)
		if err := r.pack.Copy(r.opts.SourceDir, pair); err != nil {
			return issue.NewErrorContext().
				WithOperation("copy textures").
				WithResource(pair.Original.Slash()).
				WithIssue(issue.CopyFailedId).
				WithSuggestion("Check that the source textures are readable and the output directory is writable").
				Wrap(err).
				BuildError()
		}
	}
	r.logger.Debug("copied textures", "count", total)
	return nil
}

func (r *run) compress() error {
	if err := archive.Zip(r.packDir, r.archivePath); err != nil {
		return issue.NewErrorContext().
			WithOperation("compress resource pack").
			WithResource(r.archivePath.String()).
			WithIssue(issue.CompressFailedId).
			WithSuggestion("Check free disk space and permissions in the output directory").
			Wrap(err).
			BuildError()
	}
	r.logger.Debug("wrote archive", "path", r.archivePath)
	return nil
}

func (r *run) manifestPath() types.FilesystemPath {
	return fspath.JoinStr(r.opts.OutputDir, manifest.FileName(r.opts.PackName))
}

// writeManifest runs after the archive is complete; a failure leaves the
// archive in place.
func (r *run) writeManifest(pairs []shuffle.Pair) (types.FilesystemPath, error) {
	path := r.manifestPath()
	cfg := r.opts.Config
	m := manifest.New(r.opts.Seed, r.opts.PackName, cfg.PackFormat, cfg.Extension, pairs)
	if err := manifest.Write(path, m); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("write manifest").
			WithResource(path.String()).
			WithSuggestion("The archive " + r.archivePath.String() + " was written; rerun with the same seed to regenerate the manifest").
			Wrap(err).
			BuildError()
	}
	r.logger.Debug("wrote manifest", "path", path)
	return path, nil
}

// abort removes the unpacked pack after a fatal error.
func (r *run) abort() {
	if r.pack == nil {
		return
	}
	if err := r.remove(r.pack); err != nil {
		r.logger.Warn("failed to remove partial pack", "dir", r.packDir, "error", err)
		r.obs.Warning(fmt.Sprintf("could not remove partial pack %s: %v", r.packDir, err))
	}
}

func packExistsError(path types.FilesystemPath, err error) error {
	return issue.NewErrorContext().
		WithOperation("create resource pack").
		WithResource(path.String()).
		WithIssue(issue.PackExistsId).
		WithSuggestion("Use --force to replace it").
		WithSuggestion("Use --name to choose a different pack name").
		Wrap(err).
		BuildError()
}
