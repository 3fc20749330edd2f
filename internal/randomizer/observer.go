// SPDX-License-Identifier: MPL-2.0

package randomizer

// Phase identifies a step of the pipeline.
type Phase int

const (
	// PhaseShuffle classifies the source tree and draws the permutation.
	PhaseShuffle Phase = iota + 1
	// PhaseCreate lays out the pack directory.
	PhaseCreate
	// PhaseCopy copies every pair into the pack.
	PhaseCopy
	// PhaseCompress writes the zip archive.
	PhaseCompress
	// PhaseCleanup removes the unpacked pack directory.
	PhaseCleanup
	// PhaseManifest writes the TOML record of the run.
	PhaseManifest
)

type (
	// Observer is notified as the pipeline advances. Calls happen on the
	// goroutine running Run, in phase order.
	Observer interface {
		PhaseStarted(p Phase)
		// CopyProgress is called before the copy of pair done+1 of total.
		CopyProgress(done, total int)
		PhaseDone(p Phase)
		// Warning reports a non-fatal problem.
		Warning(msg string)
	}

	// NopObserver ignores every notification.
	NopObserver struct{}
)

// String returns the short phase name.
func (p Phase) String() string {
	switch p {
	case PhaseShuffle:
		return "shuffle"
	case PhaseCreate:
		return "create"
	case PhaseCopy:
		return "copy"
	case PhaseCompress:
		return "compress"
	case PhaseCleanup:
		return "cleanup"
	case PhaseManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// Label is the progress text shown for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseShuffle:
		return "shuffling filepaths"
	case PhaseCreate:
		return "creating resource pack"
	case PhaseCopy:
		return "copying textures"
	case PhaseCompress:
		return "compressing"
	case PhaseCleanup:
		return "cleaning up"
	case PhaseManifest:
		return "writing manifest"
	default:
		return p.String()
	}
}

// PhaseStarted implements Observer.
func (NopObserver) PhaseStarted(Phase) {}

// CopyProgress implements Observer.
func (NopObserver) CopyProgress(int, int) {}

// PhaseDone implements Observer.
func (NopObserver) PhaseDone(Phase) {}

// Warning implements Observer.
func (NopObserver) Warning(string) {}
