// Package gesture classifies raw pointer input on the video surface into
// tap, double-tap and horizontal swipe-seek intents.
package gesture

import (
	"math"
	"time"
)

// Kind is the classified intent of one physical gesture.
type Kind int

const (
	Tap Kind = iota
	DoubleTap
	SwipeSeek
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case DoubleTap:
		return "DoubleTap"
	case SwipeSeek:
		return "SwipeSeek"
	default:
		return "Unknown"
	}
}

// Point is a pointer position in logical units.
type Point struct {
	X, Y float64
}

func (p Point) dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Event is a classified gesture. Delta is set for SwipeSeek only.
type Event struct {
	Kind  Kind
	Delta time.Duration
	At    Point
}

// Config holds the classification thresholds.
type Config struct {
	DoubleTapWindow    time.Duration
	DoubleTapTolerance float64
	SwipeThreshold     float64
	SkipInterval       time.Duration
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		DoubleTapWindow:    300 * time.Millisecond,
		DoubleTapTolerance: 40,
		SwipeThreshold:     45,
		SkipInterval:       10 * time.Second,
	}
}

// Interpreter is the gesture state machine.
//
//	idle ──down──▶ pressed ──up (drag > threshold)──▶ idle        emits SwipeSeek
//	                  │
//	                  └──up (otherwise)──▶ tapPending ──window elapsed──▶ idle   emits Tap
//	                                        │
//	                                        └──down (in window, near)──▶ consumed ──up──▶ idle
//	                                                                      emits DoubleTap on down
//
// Interpreter is not safe for concurrent use; the owner serializes calls.
type Interpreter struct {
	cfg Config

	pressed bool
	pressAt time.Time
	origin  Point
	last    Point

	// consumed marks a press whose gesture was already reported (second tap
	// of a double-tap) so its release emits nothing.
	consumed bool

	tapPending bool
	tapAt      time.Time
	tapPoint   Point
}

// New creates an interpreter with cfg.
func New(cfg Config) *Interpreter {
	return &Interpreter{cfg: cfg}
}

// Down records a pointer press. It returns a DoubleTap when the press lands
// within the window and tolerance of a pending tap. A press that does not
// qualify resolves the pending tap and returns it as a Tap.
func (g *Interpreter) Down(p Point, at time.Time) (Event, bool) {
	g.pressed = true
	g.pressAt = at
	g.origin = p
	g.last = p
	g.consumed = false

	if g.tapPending &&
		at.Sub(g.tapAt) <= g.cfg.DoubleTapWindow &&
		p.dist(g.tapPoint) <= g.cfg.DoubleTapTolerance {
		g.tapPending = false
		g.consumed = true
		return Event{Kind: DoubleTap, At: p}, true
	}

	return g.Flush()
}

// Move tracks drag distance for the current press.
func (g *Interpreter) Move(p Point) {
	if !g.pressed {
		return
	}
	g.last = p
}

// Up completes the current press. A qualifying horizontal drag returns a
// SwipeSeek immediately. Anything else becomes a pending tap; the owner must
// call Flush once Deadline passes.
func (g *Interpreter) Up(p Point) (Event, bool) {
	if !g.pressed {
		return Event{}, false
	}
	g.pressed = false
	g.last = p

	if g.consumed {
		g.consumed = false
		return Event{}, false
	}

	dx := g.last.X - g.origin.X
	dy := g.last.Y - g.origin.Y
	if math.Abs(dx) > g.cfg.SwipeThreshold && math.Abs(dx) >= math.Abs(dy) {
		g.tapPending = false
		delta := g.cfg.SkipInterval
		if dx < 0 {
			delta = -delta
		}
		return Event{Kind: SwipeSeek, Delta: delta, At: g.origin}, true
	}

	g.tapPending = true
	g.tapAt = g.pressAt
	g.tapPoint = g.origin
	return Event{}, false
}

// Cancel abandons the current press without emitting anything.
func (g *Interpreter) Cancel() {
	g.pressed = false
	g.consumed = false
}

// Deadline reports when the pending tap resolves into a Tap.
func (g *Interpreter) Deadline() (time.Time, bool) {
	if !g.tapPending {
		return time.Time{}, false
	}
	return g.tapAt.Add(g.cfg.DoubleTapWindow), true
}

// Flush emits the pending tap, if any. Called by the owner's tap-window timer.
func (g *Interpreter) Flush() (Event, bool) {
	if !g.tapPending {
		return Event{}, false
	}
	g.tapPending = false
	return Event{Kind: Tap, At: g.tapPoint}, true
}

// Reset drops all in-flight state.
func (g *Interpreter) Reset() {
	*g = Interpreter{cfg: g.cfg}
}
