// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/invowk/texshuffle/internal/randomizer"
)

// progressPrinter renders pipeline phases as status lines:
//
//	shuffling filepaths... done
//	copying textures... 42%
//
// A phase line stays open until the phase ends, so the copy percentage is
// rewritten in place with a carriage return. Warnings raised while a line is
// open are held back until it is finished.
type progressPrinter struct {
	out     io.Writer
	errOut  io.Writer
	open    bool
	pending []string
}

var _ randomizer.Observer = (*progressPrinter)(nil)

func newProgressPrinter(out, errOut io.Writer) *progressPrinter {
	return &progressPrinter{out: out, errOut: errOut}
}

func (p *progressPrinter) PhaseStarted(phase randomizer.Phase) {
	fmt.Fprintf(p.out, "%s...", phase.Label())
	p.open = true
}

func (p *progressPrinter) CopyProgress(done, total int) {
	if total <= 0 {
		return
	}
	fmt.Fprintf(p.out, "\r%s... %d%%", randomizer.PhaseCopy.Label(), done*100/total)
}

func (p *progressPrinter) PhaseDone(phase randomizer.Phase) {
	fmt.Fprintf(p.out, "\r%s... done\n", phase.Label())
	p.open = false
	p.flushWarnings()
}

func (p *progressPrinter) Warning(msg string) {
	if p.open {
		p.pending = append(p.pending, msg)
		return
	}
	p.printWarning(msg)
}

// interrupt terminates an open status line after a failed phase.
func (p *progressPrinter) interrupt() {
	if p.open {
		fmt.Fprintln(p.out)
		p.open = false
	}
	p.flushWarnings()
}

func (p *progressPrinter) flushWarnings() {
	for _, msg := range p.pending {
		p.printWarning(msg)
	}
	p.pending = nil
}

func (p *progressPrinter) printWarning(msg string) {
	fmt.Fprintln(p.errOut, WarningStyle.Render("Warning: ")+msg)
}
