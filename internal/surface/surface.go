// Package surface defines the contract of a media playback surface: an
// opaque decode-and-render endpoint that the engine drives but never
// implements.
package surface

import "time"

// Slot names one of the two surfaces the engine owns.
type Slot int

const (
	Inline Slot = iota
	Fullscreen
)

// Slots lists every slot in index order.
var Slots = [2]Slot{Inline, Fullscreen}

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case Inline:
		return "inline"
	case Fullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Other returns the opposite slot.
func (s Slot) Other() Slot {
	if s == Inline {
		return Fullscreen
	}
	return Inline
}

// Listener receives surface events. Calls may arrive on any goroutine.
type Listener interface {
	OnLoad(duration time.Duration)
	OnProgress(current time.Duration)
	OnBuffer(buffering bool)
	OnError(err error)
}

// Handle is a controllable media endpoint.
//
// Implementations must not call their Listener synchronously from inside a
// Handle method: the engine calls Handle methods while holding its lock and
// listener calls take that same lock.
type Handle interface {
	SetListener(l Listener)
	Load(uri string)
	Unload()
	SetPaused(paused bool)
	SetMuted(muted bool)
	SetRepeat(repeat bool)
	SetRate(rate float64)
	Seek(position time.Duration)
}

// ReadyReporter is implemented by handles whose OnLoad reliably means the
// surface accepts seeks. Handles without it are settled after a fixed delay.
type ReadyReporter interface {
	ReportsReady() bool
}

// ReportsReady reports whether h signals seek readiness through OnLoad.
func ReportsReady(h Handle) bool {
	r, ok := h.(ReadyReporter)
	return ok && r.ReportsReady()
}
