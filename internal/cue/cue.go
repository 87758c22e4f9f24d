// Package cue produces declarative, time-boxed visual feedback requests.
//
// The animator never blocks and never touches playback state: a renderer
// asks for the active cues at its own frame time and draws them.
package cue

import (
	"math"
	"time"
)

// Kind identifies a cue timeline.
type Kind int

const (
	Like Kind = iota
	Skip
	FadeIn
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Like:
		return "Like"
	case Skip:
		return "Skip"
	case FadeIn:
		return "FadeIn"
	default:
		return "Unknown"
	}
}

// Fixed timelines.
const (
	LikeDuration    = 180 * time.Millisecond
	SkipInDuration  = 120 * time.Millisecond
	SkipOutDuration = 180 * time.Millisecond
	FadeInDuration  = 250 * time.Millisecond
)

// Direction of a skip cue.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Cue is one animation request.
type Cue struct {
	Kind      Kind
	Direction Direction // Skip only
	Start     time.Time
	Duration  time.Duration
	Seq       uint64 // increments on every trigger, lets renderers detect restarts
}

// Frame is the visual state of a cue at one instant.
type Frame struct {
	Opacity float64
	Scale   float64
}

// Progress returns the normalized time in [0, 1].
func (c Cue) Progress(at time.Time) float64 {
	if c.Duration <= 0 {
		return 1
	}
	p := float64(at.Sub(c.Start)) / float64(c.Duration)
	return math.Max(0, math.Min(1, p))
}

// Done reports whether the timeline has run out at at.
func (c Cue) Done(at time.Time) bool {
	return !at.Before(c.Start.Add(c.Duration))
}

// Frame evaluates the cue timeline at at.
func (c Cue) Frame(at time.Time) Frame {
	p := c.Progress(at)
	switch c.Kind {
	case Like:
		// Damped spring on scale, opacity decays over the second half.
		scale := 1 + 0.35*math.Exp(-4*p)*math.Sin(p*2.5*math.Pi)
		opacity := 1.0
		if p > 0.5 {
			opacity = 1 - (p-0.5)*2
		}
		return Frame{Opacity: opacity, Scale: scale}
	case Skip:
		elapsed := at.Sub(c.Start)
		if elapsed < SkipInDuration {
			return Frame{Opacity: float64(elapsed) / float64(SkipInDuration), Scale: 1}
		}
		out := float64(elapsed-SkipInDuration) / float64(SkipOutDuration)
		return Frame{Opacity: math.Max(0, 1-out), Scale: 1}
	case FadeIn:
		return Frame{Opacity: p, Scale: 1}
	default:
		return Frame{Opacity: 0, Scale: 1}
	}
}

// Animator holds at most one running cue per kind.
// Not safe for concurrent use; the controller serializes access.
type Animator struct {
	now    func() time.Time
	active map[Kind]Cue
	seq    uint64
}

// NewAnimator creates an animator. A nil clock uses time.Now.
func NewAnimator(now func() time.Time) *Animator {
	if now == nil {
		now = time.Now
	}
	return &Animator{
		now:    now,
		active: make(map[Kind]Cue),
	}
}

// PulseLike starts (or restarts) the like pulse.
func (a *Animator) PulseLike() Cue {
	return a.trigger(Like, 0, LikeDuration)
}

// FlashSkip starts (or restarts) the skip indicator.
func (a *Animator) FlashSkip(dir Direction) Cue {
	return a.trigger(Skip, dir, SkipInDuration+SkipOutDuration)
}

// FadeIn starts (or restarts) the ready fade-in.
func (a *Animator) FadeIn() Cue {
	return a.trigger(FadeIn, 0, FadeInDuration)
}

// Active returns the cues still running at at, in kind order.
func (a *Animator) Active(at time.Time) []Cue {
	var out []Cue
	for _, k := range []Kind{Like, Skip, FadeIn} {
		c, ok := a.active[k]
		if !ok {
			continue
		}
		if c.Done(at) {
			delete(a.active, k)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Clear drops every cue.
func (a *Animator) Clear() {
	clear(a.active)
}

func (a *Animator) trigger(k Kind, dir Direction, d time.Duration) Cue {
	a.seq++
	c := Cue{
		Kind:      k,
		Direction: dir,
		Start:     a.now(),
		Duration:  d,
		Seq:       a.seq,
	}
	a.active[k] = c
	return c
}
