// Package coordinator owns the inline and fullscreen playback surfaces and
// keeps exactly one of them live while mirroring position across mode
// switches and source changes.
package coordinator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/surface"
	"github.com/llehouerou/vidctl/internal/timers"
)

// DefaultSettleDelay is the fallback wait between assigning a source and
// seeking, used when a surface cannot report that it accepts seeks.
const DefaultSettleDelay = 250 * time.Millisecond

// Config wires a Coordinator to its owner.
type Config struct {
	SettleDelay time.Duration

	// Listener returns the event listener for a slot. Attached on New,
	// detached on Close.
	Listener func(slot surface.Slot) surface.Listener

	// OnSettled runs, under the timer table lock, after the pending seek of a
	// slot has been applied. The owner decides whether to resume playback.
	OnSettled func(slot surface.Slot)

	Logger logrus.FieldLogger
}

// settle is a seek waiting for a surface to accept it.
type settle struct {
	token     uint64
	target    time.Duration
	waitReady bool
}

// Coordinator is the two-slot surface registry.
//
// Every transition (load, fullscreen enter/exit, quality switch, retry)
// increments a token and drops the settles of the previous transition, so a
// late readiness event or timer can never apply a stale position.
//
// Not safe for concurrent use: all methods must be called with the timer
// table's lock held.
type Coordinator struct {
	handles [2]surface.Handle
	mounted [2]bool
	loaded  [2]bool // reported a load since the last mount
	uris    [2]string
	pending [2]*settle
	active  surface.Slot

	transition uint64

	muted  bool
	repeat bool
	rate   float64

	timers *timers.Table
	cfg    Config
	log    logrus.FieldLogger
}

// New creates a coordinator over inline and fullscreen handles.
func New(inline, fullscreen surface.Handle, t *timers.Table, cfg Config) *Coordinator {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Coordinator{
		handles: [2]surface.Handle{inline, fullscreen},
		active:  surface.Inline,
		rate:    1,
		timers:  t,
		cfg:     cfg,
		log:     log.WithField("component", "coordinator"),
	}
	if cfg.Listener != nil {
		for _, slot := range surface.Slots {
			c.handles[slot].SetListener(cfg.Listener(slot))
		}
	}
	return c
}

// Active returns the slot that currently renders.
func (c *Coordinator) Active() surface.Slot { return c.active }

// Mounted reports whether slot has a source assigned.
func (c *Coordinator) Mounted(slot surface.Slot) bool { return c.mounted[slot] }

// Settling reports whether slot has a seek waiting to be applied.
func (c *Coordinator) Settling(slot surface.Slot) bool { return c.pending[slot] != nil }

// Transition returns the current transition token.
func (c *Coordinator) Transition() uint64 { return c.transition }

// Load mounts a fresh media source on the inline surface and seeks it to at
// once it settles. Any fullscreen surface is unmounted.
func (c *Coordinator) Load(uri string, at time.Duration) {
	c.begin()
	if c.mounted[surface.Fullscreen] {
		c.unmount(surface.Fullscreen)
	}
	c.active = surface.Inline
	c.mount(surface.Inline, uri)
	c.settle(surface.Inline, at, true)
}

// EnterFullscreen pauses the inline surface, mounts uri on the fullscreen
// surface and seeks it to at once it settles. Playback is not resumed here.
func (c *Coordinator) EnterFullscreen(uri string, at time.Duration) {
	if c.active == surface.Fullscreen {
		return
	}
	c.begin()
	c.pause(surface.Inline)
	c.active = surface.Fullscreen
	c.mount(surface.Fullscreen, uri)
	c.settle(surface.Fullscreen, at, true)
}

// ExitFullscreen pauses and unmounts the fullscreen surface and seeks the
// inline surface to at once it settles. The inline surface is only reloaded
// when it does not already hold uri; one that is still loading keeps waiting
// for its load event.
func (c *Coordinator) ExitFullscreen(uri string, at time.Duration) {
	if c.active == surface.Inline {
		return
	}
	c.begin()
	c.pause(surface.Fullscreen)
	c.unmount(surface.Fullscreen)
	c.active = surface.Inline

	reloaded := false
	if !c.mounted[surface.Inline] || c.uris[surface.Inline] != uri {
		c.mount(surface.Inline, uri)
		reloaded = true
	}
	c.settle(surface.Inline, at, reloaded)
}

// SwitchQuality reassigns uri on every mounted surface and seeks each back
// to at once it settles.
func (c *Coordinator) SwitchQuality(uri string, at time.Duration) {
	c.begin()
	for _, slot := range surface.Slots {
		if !c.mounted[slot] {
			continue
		}
		c.mount(slot, uri)
		c.settle(slot, at, true)
	}
}

// Retry remounts uri on the active surface after a failure.
func (c *Coordinator) Retry(uri string, at time.Duration) {
	c.begin()
	c.mount(c.active, uri)
	c.settle(c.active, at, true)
}

// Loaded reports whether slot has reported a load since it was mounted.
func (c *Coordinator) Loaded(slot surface.Slot) bool { return c.loaded[slot] }

// Ready tells the coordinator that slot reported a load. A settle waiting on
// readiness is applied immediately.
func (c *Coordinator) Ready(slot surface.Slot) {
	if c.mounted[slot] {
		c.loaded[slot] = true
	}
	s := c.pending[slot]
	if s == nil || !s.waitReady {
		return
	}
	c.complete(slot, s.token)
}

// Seek moves the active surface to at. While the active surface is settling
// the pending seek is retargeted instead.
func (c *Coordinator) Seek(at time.Duration) {
	c.seekSlot(c.active, at)
}

// SeekAll moves every mounted surface to at.
func (c *Coordinator) SeekAll(at time.Duration) {
	for _, slot := range surface.Slots {
		if c.mounted[slot] {
			c.seekSlot(slot, at)
		}
	}
}

// SetPlaying pauses or resumes the active surface. Ignored while it settles:
// the owner reapplies its intent from OnSettled.
func (c *Coordinator) SetPlaying(playing bool) {
	if !c.mounted[c.active] || c.pending[c.active] != nil {
		return
	}
	c.handles[c.active].SetPaused(!playing)
}

// PauseAll pauses every mounted surface.
func (c *Coordinator) PauseAll() {
	for _, slot := range surface.Slots {
		c.pause(slot)
	}
}

// SetMuted applies mute to every mounted surface and future mounts.
func (c *Coordinator) SetMuted(muted bool) {
	c.muted = muted
	c.each(func(h surface.Handle) { h.SetMuted(muted) })
}

// SetRate applies the playback rate to every mounted surface and future mounts.
func (c *Coordinator) SetRate(rate float64) {
	c.rate = rate
	c.each(func(h surface.Handle) { h.SetRate(rate) })
}

// SetRepeat applies looping to every mounted surface and future mounts.
func (c *Coordinator) SetRepeat(repeat bool) {
	c.repeat = repeat
	c.each(func(h surface.Handle) { h.SetRepeat(repeat) })
}

// Unload drops pending settles and unloads both surfaces. The inline
// surface becomes active again.
func (c *Coordinator) Unload() {
	c.begin()
	for _, slot := range surface.Slots {
		if c.mounted[slot] {
			c.pause(slot)
			c.unmount(slot)
		}
	}
	c.active = surface.Inline
}

// Close unloads both surfaces and detaches their listeners.
func (c *Coordinator) Close() {
	c.Unload()
	for _, slot := range surface.Slots {
		c.handles[slot].SetListener(nil)
	}
}

func (c *Coordinator) begin() {
	c.transition++
	for _, slot := range surface.Slots {
		if c.pending[slot] != nil {
			c.log.WithFields(logrus.Fields{
				"slot":  slot,
				"token": c.pending[slot].token,
			}).Debug("dropping superseded settle")
		}
		c.pending[slot] = nil
		c.timers.Cancel(settleKey(slot))
	}
}

func (c *Coordinator) mount(slot surface.Slot, uri string) {
	h := c.handles[slot]
	h.SetPaused(true)
	h.SetMuted(c.muted)
	h.SetRate(c.rate)
	h.SetRepeat(c.repeat)
	h.Load(uri)
	c.mounted[slot] = true
	c.loaded[slot] = false
	c.uris[slot] = uri
}

func (c *Coordinator) unmount(slot surface.Slot) {
	c.handles[slot].Unload()
	c.mounted[slot] = false
	c.loaded[slot] = false
	c.uris[slot] = ""
}

func (c *Coordinator) pause(slot surface.Slot) {
	if c.mounted[slot] {
		c.handles[slot].SetPaused(true)
	}
}

func (c *Coordinator) each(fn func(h surface.Handle)) {
	for _, slot := range surface.Slots {
		if c.mounted[slot] {
			fn(c.handles[slot])
		}
	}
}

func (c *Coordinator) seekSlot(slot surface.Slot, at time.Duration) {
	if s := c.pending[slot]; s != nil {
		s.target = at
		return
	}
	if c.mounted[slot] {
		c.handles[slot].Seek(at)
	}
}

// settle schedules the seek of slot to at. A slot that was just reloaded or
// has not loaded yet drops early seeks, so it waits for its load event when
// the handle reports one; otherwise the settle delay applies.
func (c *Coordinator) settle(slot surface.Slot, at time.Duration, reloaded bool) {
	s := &settle{
		token:     c.transition,
		target:    at,
		waitReady: (reloaded || !c.loaded[slot]) && surface.ReportsReady(c.handles[slot]),
	}
	c.pending[slot] = s
	if s.waitReady {
		return
	}
	token := s.token
	c.timers.Schedule(settleKey(slot), c.cfg.SettleDelay, func() {
		c.complete(slot, token)
	})
}

func (c *Coordinator) complete(slot surface.Slot, token uint64) {
	s := c.pending[slot]
	if s == nil || s.token != token || token != c.transition {
		c.log.WithFields(logrus.Fields{"slot": slot, "token": token}).Debug("discarding stale settle")
		return
	}
	c.pending[slot] = nil
	c.timers.Cancel(settleKey(slot))
	c.handles[slot].Seek(s.target)
	c.log.WithFields(logrus.Fields{
		"slot":     slot,
		"position": s.target,
	}).Debug("surface settled")
	if c.cfg.OnSettled != nil {
		c.cfg.OnSettled(slot)
	}
}

func settleKey(slot surface.Slot) timers.Key {
	if slot == surface.Fullscreen {
		return timers.SettleFullscreen
	}
	return timers.SettleInline
}
