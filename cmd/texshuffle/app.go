// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/invowk/texshuffle/internal/config"
	"github.com/invowk/texshuffle/internal/issue"
	"github.com/invowk/texshuffle/internal/randomizer"
	"github.com/invowk/texshuffle/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and
	// delegates through its service interfaces.
	App struct {
		Config   ConfigProvider
		Pipeline PipelineRunner
		Clock    randomizer.Clock
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Pipeline PipelineRunner
		Clock    randomizer.Clock
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// PipelineRunner produces one randomized pack.
	PipelineRunner interface {
		Run(ctx context.Context, opts randomizer.Options, obs randomizer.Observer) (randomizer.Result, error)
	}

	// PipelineFunc adapts a function to PipelineRunner.
	PipelineFunc func(ctx context.Context, opts randomizer.Options, obs randomizer.Observer) (randomizer.Result, error)

	wallClock struct{}
)

// Run calls f.
func (f PipelineFunc) Run(ctx context.Context, opts randomizer.Options, obs randomizer.Observer) (randomizer.Result, error) {
	return f(ctx, opts, obs)
}

func (wallClock) Now() time.Time { return time.Now() }

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Pipeline == nil {
		deps.Pipeline = PipelineFunc(randomizer.Run)
	}
	if deps.Clock == nil {
		deps.Clock = wallClock{}
	}

	return &App{
		Config:   deps.Config,
		Pipeline: deps.Pipeline,
		Clock:    deps.Clock,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// reportError prints err to stderr, followed by the help card of the issue
// it is linked to, and returns an already-reported ExitError.
func (a *App) reportError(err error, verbose bool) error {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if iss, ok := issue.IssueOf(err); ok {
		rendered, renderErr := iss.Render("dark")
		if renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
	}

	return &ExitError{Code: types.ExitFailure}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors get their suggestions, and the error chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
