// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/invowk/texshuffle/internal/randomizer"
)

func TestProgressPrinter_Lines(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := newProgressPrinter(&out, &errOut)

	p.PhaseStarted(randomizer.PhaseShuffle)
	p.PhaseDone(randomizer.PhaseShuffle)
	p.PhaseStarted(randomizer.PhaseCopy)
	for i := range 3 {
		p.CopyProgress(i, 3)
	}
	p.PhaseDone(randomizer.PhaseCopy)
	p.interrupt()

	want := "shuffling filepaths...\rshuffling filepaths... done\n" +
		"copying textures...\rcopying textures... 0%\rcopying textures... 33%\rcopying textures... 66%" +
		"\rcopying textures... done\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected stderr output %q", errOut.String())
	}
}

func TestProgressPrinter_ZeroTotal(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := newProgressPrinter(&out, &out)
	p.CopyProgress(0, 0)
	if out.Len() != 0 {
		t.Errorf("CopyProgress(0, 0) wrote %q", out.String())
	}
}

func TestProgressPrinter_WarningDuringPhase(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := newProgressPrinter(&out, &errOut)

	p.PhaseStarted(randomizer.PhaseCleanup)
	p.Warning("could not remove pack")
	if errOut.Len() != 0 {
		t.Fatalf("warning printed while the status line was open: %q", errOut.String())
	}
	p.PhaseDone(randomizer.PhaseCleanup)
	if !strings.Contains(errOut.String(), "could not remove pack") {
		t.Errorf("warning not flushed after phase end, stderr = %q", errOut.String())
	}

	errOut.Reset()
	p.Warning("outside a phase")
	if !strings.Contains(errOut.String(), "outside a phase") {
		t.Errorf("warning outside a phase should print immediately, stderr = %q", errOut.String())
	}
}

func TestProgressPrinter_Interrupt(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := newProgressPrinter(&out, &errOut)

	p.PhaseStarted(randomizer.PhaseCopy)
	p.CopyProgress(1, 2)
	p.Warning("partial pack left behind")
	p.interrupt()

	if got, want := out.String(), "copying textures...\rcopying textures... 50%\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.Contains(errOut.String(), "partial pack left behind") {
		t.Errorf("pending warning not flushed, stderr = %q", errOut.String())
	}

	out.Reset()
	p.interrupt()
	if out.Len() != 0 {
		t.Errorf("second interrupt wrote %q", out.String())
	}
}
