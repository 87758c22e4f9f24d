// internal/playback/state.go
package playback

import (
	"math"
	"slices"
	"time"

	"github.com/llehouerou/vidctl/internal/source"
)

// Phase is the readiness phase derived from a State.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseReady
	PhaseBuffering
	PhaseEnded
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "Unloaded"
	case PhaseLoading:
		return "Loading"
	case PhaseReady:
		return "Ready"
	case PhaseBuffering:
		return "Buffering"
	case PhaseEnded:
		return "Ended"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Speeds is the closed set of playback rates, in cycle order.
var Speeds = []float64{0.5, 1, 1.5, 2}

// ValidSpeed reports whether s belongs to Speeds.
func ValidSpeed(s float64) bool {
	return slices.Contains(Speeds, s)
}

// NextSpeed returns the speed after s, wrapping. Unknown speeds restart at 1.
func NextSpeed(s float64) float64 {
	i := slices.Index(Speeds, s)
	if i < 0 {
		return 1
	}
	return Speeds[(i+1)%len(Speeds)]
}

// NearestSpeed returns the member of Speeds closest to r.
func NearestSpeed(r float64) float64 {
	best := Speeds[0]
	for _, s := range Speeds[1:] {
		if math.Abs(s-r) < math.Abs(best-r) {
			best = s
		}
	}
	return best
}

// State is a snapshot of the playback state of one media item.
type State struct {
	Sources     []source.Variant
	SourceIndex int

	Playing bool // intent to play, independent of buffering
	Muted   bool
	Speed   float64
	Loop    bool

	Ready     bool
	Duration  time.Duration
	Position  time.Duration
	Buffering bool
	Ended     bool
	Err       error // non-nil once the active surface failed

	Fullscreen      bool
	ControlsVisible bool
	QualityMenuOpen bool

	MediaKey string
	Title    string
}

// Phase derives the readiness phase.
func (s State) Phase() Phase {
	switch {
	case s.Err != nil:
		return PhaseFailed
	case len(s.Sources) == 0:
		return PhaseUnloaded
	case !s.Ready:
		return PhaseLoading
	case s.Ended:
		return PhaseEnded
	case s.Buffering:
		return PhaseBuffering
	default:
		return PhaseReady
	}
}

// Loaded reports whether a media item is loaded.
func (s State) Loaded() bool {
	return len(s.Sources) > 0
}

// Current returns the current quality variant.
func (s State) Current() (source.Variant, bool) {
	if s.SourceIndex < 0 || s.SourceIndex >= len(s.Sources) {
		return source.Variant{}, false
	}
	return s.Sources[s.SourceIndex], true
}

// Remaining returns the time left before the end.
func (s State) Remaining() time.Duration {
	return max(s.Duration-s.Position, 0)
}

func (s State) clone() State {
	s.Sources = slices.Clone(s.Sources)
	return s
}

// sameExceptPosition compares every field but Position and Duration.
func sameExceptPosition(a, b State) bool {
	return slices.Equal(a.Sources, b.Sources) &&
		a.SourceIndex == b.SourceIndex &&
		a.Playing == b.Playing &&
		a.Muted == b.Muted &&
		a.Speed == b.Speed &&
		a.Loop == b.Loop &&
		a.Ready == b.Ready &&
		a.Buffering == b.Buffering &&
		a.Ended == b.Ended &&
		a.Err == b.Err &&
		a.Fullscreen == b.Fullscreen &&
		a.ControlsVisible == b.ControlsVisible &&
		a.QualityMenuOpen == b.QualityMenuOpen &&
		a.MediaKey == b.MediaKey &&
		a.Title == b.Title
}
