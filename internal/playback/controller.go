// internal/playback/controller.go
package playback

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/config"
	"github.com/llehouerou/vidctl/internal/controls"
	"github.com/llehouerou/vidctl/internal/coordinator"
	"github.com/llehouerou/vidctl/internal/cue"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/gesture"
	"github.com/llehouerou/vidctl/internal/source"
	"github.com/llehouerou/vidctl/internal/surface"
	"github.com/llehouerou/vidctl/internal/timers"
)

// Verify Controller implements Service at compile time.
var _ Service = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithConfig sets the engine timings and thresholds.
func WithConfig(cfg config.EngineConfig) Option {
	return func(c *Controller) { c.cfg = cfg.WithDefaults() }
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.base = l }
}

// Controller owns the playback state of one media item and drives the two
// surfaces through the coordinator.
//
// Every exported method, surface callback and timer callback serializes on a
// single mutex, which is also the lock of the timer table:
//
//	unloaded ──Load──▶ loading ──OnLoad──▶ ready ⇄ buffering
//	                      │                  │
//	                      │                  ├──progress ≥ end──▶ ended ──SeekTo/Replay/OnLoad──▶ ready
//	                      │                  │
//	                      └──────error───────┴──────────▶ failed ──Retry/SelectQuality──▶ loading
type Controller struct {
	mu sync.Mutex

	cfg  config.EngineConfig
	base logrus.FieldLogger
	log  logrus.FieldLogger

	state State
	last  State // last published snapshot

	switcher *source.Switcher
	timers   *timers.Table
	coord    *coordinator.Coordinator
	gestures *gesture.Interpreter
	controls *controls.AutoHide
	cues     *cue.Animator

	subs       []*Subscription
	subsMu     sync.Mutex
	subsClosed bool

	closed bool
}

// New creates a controller driving the inline and fullscreen surfaces.
func New(inline, fullscreen surface.Handle, opts ...Option) *Controller {
	c := &Controller{
		cfg:   config.DefaultEngineConfig(),
		state: State{Speed: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.base == nil {
		c.base = logrus.StandardLogger()
	}
	c.base = c.base.WithField("component", "playback")
	c.log = c.base
	c.last = c.state

	c.timers = timers.New(&c.mu)
	c.gestures = gesture.New(gesture.Config{
		DoubleTapWindow:    c.cfg.DoubleTapWindow,
		DoubleTapTolerance: c.cfg.DoubleTapTolerance,
		SwipeThreshold:     c.cfg.SwipeThreshold,
		SkipInterval:       c.cfg.SkipInterval,
	})
	c.controls = controls.NewAutoHide(c.timers, c.cfg.HideDelay, c.controlsChanged)
	c.cues = cue.NewAnimator(nil)
	c.coord = coordinator.New(inline, fullscreen, c.timers, coordinator.Config{
		SettleDelay: c.cfg.SettleDelay,
		Listener: func(slot surface.Slot) surface.Listener {
			return slotListener{c: c, slot: slot}
		},
		OnSettled: c.settled,
		Logger:    c.base,
	})
	return c
}

// Load initializes the state for a new media item and mounts its current
// quality on the inline surface.
//
// An empty or invalid source list is a caller error: the error is returned
// and the current state, loaded or not, is left untouched.
func (c *Controller) Load(sources []source.Variant, opts LoadOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	sw, err := source.NewSwitcher(sources, remounter{c})
	if err != nil {
		c.log.WithError(err).Warn("load rejected")
		return err
	}

	c.log = c.base.WithField("session", uuid.NewString())
	if opts.Quality != "" && !sw.Prefer(opts.Quality) {
		c.log.WithField("quality", opts.Quality).Debug("preferred quality not offered")
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 1
	}
	if !ValidSpeed(speed) {
		c.log.WithField("speed", speed).Warn("invalid start speed, using 1x")
		speed = 1
	}

	c.reset()
	c.switcher = sw
	c.state = State{
		Sources:     sw.Sources(),
		SourceIndex: sw.Index(),
		Playing:     opts.AutoPlay,
		Muted:       opts.Muted,
		Speed:       speed,
		Loop:        opts.Loop,
		Position:    max(opts.StartAt, 0),
		MediaKey:    opts.MediaKey,
		Title:       opts.Title,
	}

	c.coord.SetMuted(c.state.Muted)
	c.coord.SetRate(c.state.Speed)
	c.coord.SetRepeat(c.state.Loop)
	c.coord.Load(sw.Current().URI, c.state.Position)
	c.controls.Show()

	c.log.WithFields(logrus.Fields{
		"quality":  sw.Current().Label,
		"sources":  len(sources),
		"autoplay": opts.AutoPlay,
		"start":    c.state.Position,
	}).Info("media loaded")
	c.publish()
	return nil
}

// reset drops the current item: surfaces unloaded, timers and gestures
// cleared, state zeroed.
func (c *Controller) reset() {
	c.coord.Unload()
	c.timers.Cancel(timers.TapWindow)
	c.gestures.Reset()
	c.cues.Clear()
	c.controls.Reset()
	c.switcher = nil
	c.state = State{Speed: 1}
}

// SelectQuality switches to v at the current position. Playing intent is
// kept; the new source resumes once it settles.
func (c *Controller) SelectQuality(v source.Variant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.usable(); err != nil {
		return err
	}

	wasFailed := c.state.Err != nil
	switched, err := c.switcher.Select(v, c.state.Position)
	if err != nil {
		c.log.WithError(err).Warn("quality rejected")
		return err
	}
	c.state.QualityMenuOpen = false
	c.controls.SetMenuOpen(false)
	if switched {
		c.state.SourceIndex = c.switcher.Index()
		if wasFailed {
			// a caller-driven source change is the way out of failed
			c.state.Err = nil
			c.state.Ready = false
			c.state.Buffering = false
		}
		c.log.WithFields(logrus.Fields{
			"quality":  v.Label,
			"position": c.state.Position,
		}).Info("quality switched")
	}
	c.publish()
	return nil
}

// remounter adapts the coordinator to source.Remounter.
type remounter struct{ c *Controller }

func (r remounter) SwitchQuality(v source.Variant, position time.Duration) {
	if r.c.state.Err != nil {
		r.c.coord.Retry(v.URI, position)
		return
	}
	r.c.coord.SwitchQuality(v.URI, position)
}

// Retry remounts the current source at the last position after a failure.
// No-op unless failed.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.usable(); err != nil {
		return err
	}
	c.retry(c.state.Position)
	c.publish()
	return nil
}

func (c *Controller) retry(at time.Duration) {
	if c.state.Err == nil {
		return
	}
	c.log.WithError(c.state.Err).WithField("position", at).Info("retrying")
	c.state.Err = nil
	c.state.Ready = false
	c.state.Buffering = false
	c.state.Ended = false
	c.state.Position = at
	c.state.Playing = true
	c.coord.Retry(c.switcher.Current().URI, at)
	c.controls.Show()
}

// Play sets the intent to play.
func (c *Controller) Play() {
	c.withLoaded(func() {
		if c.state.Ended {
			c.replay()
			return
		}
		c.setPlaying(true)
	})
}

// Pause clears the intent to play.
func (c *Controller) Pause() {
	c.withLoaded(func() { c.setPlaying(false) })
}

// TogglePlay flips the intent to play and shows the controls. Acts as
// Replay once ended.
func (c *Controller) TogglePlay() {
	c.withLoaded(c.togglePlay)
}

func (c *Controller) togglePlay() {
	if c.state.Ended {
		c.replay()
		return
	}
	c.setPlaying(!c.state.Playing)
}

func (c *Controller) setPlaying(playing bool) {
	if c.state.Err == nil {
		c.state.Playing = playing
		c.coord.SetPlaying(playing)
	}
	c.controls.Show()
}

// Replay seeks both surfaces to the start and plays. Acts as Retry from
// the start once failed.
func (c *Controller) Replay() {
	c.withLoaded(c.replay)
}

func (c *Controller) replay() {
	if c.state.Err != nil {
		c.retry(0)
		return
	}
	c.state.Position = 0
	c.state.Ended = false
	c.state.Playing = true
	c.coord.SeekAll(0)
	c.coord.SetPlaying(true)
	c.controls.Show()
}

// SeekTo moves to position, clamped to the media bounds.
func (c *Controller) SeekTo(position time.Duration) {
	c.withLoaded(func() { c.seekTo(position) })
}

// SeekBy moves by delta and flashes the skip cue.
func (c *Controller) SeekBy(delta time.Duration) {
	c.withLoaded(func() { c.skip(delta) })
}

func (c *Controller) seekTo(position time.Duration) {
	c.state.Position = c.clamp(position)
	if c.state.Ended && c.state.Position < c.endThreshold() {
		c.state.Ended = false
	}
	c.coord.Seek(c.state.Position)
	c.controls.Show()
}

func (c *Controller) skip(delta time.Duration) {
	if delta == 0 {
		return
	}
	c.seekTo(c.state.Position + delta)
	dir := cue.Forward
	if delta < 0 {
		dir = cue.Backward
	}
	c.emitCue(c.cues.FlashSkip(dir))
}

func (c *Controller) clamp(position time.Duration) time.Duration {
	if !c.state.Ready {
		return max(position, 0)
	}
	return lo.Clamp(position, 0, c.state.Duration)
}

func (c *Controller) endThreshold() time.Duration {
	return c.state.Duration - c.cfg.EndTolerance
}

// ToggleMute flips mute on both surfaces.
func (c *Controller) ToggleMute() {
	c.withLoaded(func() { c.setMuted(!c.state.Muted) })
}

// SetMuted sets mute on both surfaces.
func (c *Controller) SetMuted(muted bool) {
	c.withLoaded(func() { c.setMuted(muted) })
}

func (c *Controller) setMuted(muted bool) {
	c.state.Muted = muted
	c.coord.SetMuted(muted)
	c.controls.Show()
}

// CycleSpeed advances to the next speed, wrapping.
func (c *Controller) CycleSpeed() {
	c.withLoaded(func() { c.setSpeed(NextSpeed(c.state.Speed)) })
}

// SetSpeed sets a speed from Speeds.
func (c *Controller) SetSpeed(speed float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.usable(); err != nil {
		return err
	}
	if !ValidSpeed(speed) {
		c.log.WithField("speed", speed).Warn("speed rejected")
		return ErrInvalidSpeed
	}
	c.setSpeed(speed)
	c.publish()
	return nil
}

func (c *Controller) setSpeed(speed float64) {
	c.state.Speed = speed
	c.coord.SetRate(speed)
	c.controls.Show()
}

// EnterFullscreen hands playback over to the fullscreen surface at the
// current position.
func (c *Controller) EnterFullscreen() {
	c.withLoaded(c.enterFullscreen)
}

// ExitFullscreen hands playback back to the inline surface.
func (c *Controller) ExitFullscreen() {
	c.withLoaded(c.exitFullscreen)
}

// ToggleFullscreen enters or exits fullscreen.
func (c *Controller) ToggleFullscreen() {
	c.withLoaded(func() {
		if c.state.Fullscreen {
			c.exitFullscreen()
			return
		}
		c.enterFullscreen()
	})
}

func (c *Controller) enterFullscreen() {
	if c.state.Fullscreen {
		return
	}
	c.state.Fullscreen = true
	c.coord.EnterFullscreen(c.switcher.Current().URI, c.state.Position)
	c.controls.Show()
	c.log.WithField("position", c.state.Position).Debug("entering fullscreen")
}

func (c *Controller) exitFullscreen() {
	if !c.state.Fullscreen {
		return
	}
	c.state.Fullscreen = false
	c.coord.ExitFullscreen(c.switcher.Current().URI, c.state.Position)
	c.controls.Show()
	c.log.WithField("position", c.state.Position).Debug("exiting fullscreen")
}

// ShowControls shows the overlay and restarts the hide countdown.
func (c *Controller) ShowControls() {
	c.withLoaded(c.controls.Show)
}

// OpenQualityMenu opens the quality menu, holding the overlay visible.
func (c *Controller) OpenQualityMenu() {
	c.withLoaded(func() { c.setMenuOpen(true) })
}

// CloseQualityMenu closes the quality menu.
func (c *Controller) CloseQualityMenu() {
	c.withLoaded(func() { c.setMenuOpen(false) })
}

func (c *Controller) setMenuOpen(open bool) {
	c.state.QualityMenuOpen = open
	c.controls.SetMenuOpen(open)
}

// Like plays the like pulse. Playback is unaffected.
func (c *Controller) Like() {
	c.withLoaded(func() { c.emitCue(c.cues.PulseLike()) })
}

// PointerDown reports a press on the video surface.
func (c *Controller) PointerDown(p gesture.Point) {
	c.withLoaded(func() {
		if ev, ok := c.gestures.Down(p, time.Now()); ok {
			c.dispatch(ev)
		}
		c.armTapWindow()
	})
}

// PointerMove reports pointer motion during a press.
func (c *Controller) PointerMove(p gesture.Point) {
	c.withLoaded(func() { c.gestures.Move(p) })
}

// PointerUp reports a release on the video surface.
func (c *Controller) PointerUp(p gesture.Point) {
	c.withLoaded(func() {
		if ev, ok := c.gestures.Up(p); ok {
			c.dispatch(ev)
		}
		c.armTapWindow()
	})
}

// PointerCancel abandons the current press, e.g. when it moved onto the
// overlay controls.
func (c *Controller) PointerCancel() {
	c.withLoaded(c.gestures.Cancel)
}

func (c *Controller) armTapWindow() {
	deadline, ok := c.gestures.Deadline()
	if !ok {
		c.timers.Cancel(timers.TapWindow)
		return
	}
	c.timers.Schedule(timers.TapWindow, time.Until(deadline), func() {
		if ev, ok := c.gestures.Flush(); ok {
			c.dispatch(ev)
		}
		c.publish()
	})
}

func (c *Controller) dispatch(ev gesture.Event) {
	c.log.WithFields(logrus.Fields{
		"gesture": ev.Kind,
		"delta":   ev.Delta,
	}).Debug("gesture")
	c.eachSub(func(s *Subscription) { s.sendGesture(GestureEvent{Gesture: ev}) })

	switch ev.Kind {
	case gesture.Tap:
		c.togglePlay()
	case gesture.DoubleTap:
		c.emitCue(c.cues.PulseLike())
	case gesture.SwipeSeek:
		c.skip(ev.Delta)
	}
}

func (c *Controller) emitCue(q cue.Cue) {
	c.eachSub(func(s *Subscription) { s.sendCue(CueEvent{Cue: q}) })
}

func (c *Controller) controlsChanged(visible bool) {
	c.state.ControlsVisible = visible
	if !visible {
		c.state.QualityMenuOpen = false
	}
	c.publish()
}

// OnSurfaceLoaded reports that the active surface loaded the media.
func (c *Controller) OnSurfaceLoaded(duration time.Duration) {
	c.onActiveSurface(func(slot surface.Slot, active bool) { c.applyLoaded(slot, active, duration) })
}

// OnSurfaceProgress reports the playback position of the active surface.
func (c *Controller) OnSurfaceProgress(current time.Duration) {
	c.onActiveSurface(func(slot surface.Slot, active bool) { c.applyProgress(slot, active, current) })
}

// OnSurfaceBuffering reports a stall or recovery of the active surface.
func (c *Controller) OnSurfaceBuffering(buffering bool) {
	c.onActiveSurface(func(_ surface.Slot, active bool) { c.applyBuffering(active, buffering) })
}

// OnSurfaceError reports a fatal failure of the active surface.
func (c *Controller) OnSurfaceError(err error) {
	c.onActiveSurface(func(slot surface.Slot, active bool) { c.applyError(slot, active, err) })
}

func (c *Controller) applyLoaded(slot surface.Slot, active bool, duration time.Duration) {
	c.coord.Ready(slot)
	if !active || c.state.Err != nil {
		return
	}
	wasReady := c.state.Ready
	c.state.Ready = true
	c.state.Duration = max(duration, 0)
	c.state.Ended = false
	c.state.Position = lo.Clamp(c.state.Position, 0, c.state.Duration)
	if !wasReady {
		c.emitCue(c.cues.FadeIn())
		c.log.WithFields(logrus.Fields{
			"slot":     slot,
			"duration": duration,
		}).Debug("surface ready")
	}
}

func (c *Controller) applyProgress(slot surface.Slot, active bool, current time.Duration) {
	// a settling surface still reports the position of its fresh load
	if !active || c.state.Err != nil || c.coord.Settling(slot) {
		return
	}
	c.state.Position = c.clamp(current)
	if c.state.Ready && !c.state.Loop && !c.state.Ended &&
		c.state.Duration > 0 && c.state.Position >= c.endThreshold() {
		c.state.Ended = true
		// Playing is intent, but once the media ran out there is nothing left
		// to play: the intent drops so TogglePlay and Replay start over.
		c.state.Playing = false
		c.coord.SetPlaying(false)
		c.controls.Show()
		c.log.WithField("position", c.state.Position).Debug("ended")
	}
}

func (c *Controller) applyBuffering(active, buffering bool) {
	if !active || c.state.Err != nil {
		return
	}
	c.state.Buffering = buffering
}

func (c *Controller) applyError(slot surface.Slot, active bool, err error) {
	uri := c.switcher.Current().URI
	if !active {
		c.log.WithError(err).WithField("slot", slot).Warn("hidden surface failed")
		return
	}
	if c.state.Err != nil {
		return
	}
	serr := &SurfaceError{Slot: slot, URI: uri, Err: err}
	c.state.Err = serr
	c.state.Playing = false
	c.state.Buffering = false
	c.coord.PauseAll()
	c.controls.Show()
	c.log.WithError(err).WithField("slot", slot).Error("playback failed")
	c.eachSub(func(s *Subscription) {
		s.sendError(ErrorEvent{Operation: errmsg.OpPlaybackRun, Err: serr})
	})
}

// onSurface runs fn under the lock for an event of slot, if the controller
// is live and loaded.
func (c *Controller) onSurface(slot surface.Slot, fn func(slot surface.Slot, active bool)) {
	c.surfaceEvent(func() surface.Slot { return slot }, fn)
}

// onActiveSurface is onSurface for events attributed to whichever slot is
// active when the lock is taken.
func (c *Controller) onActiveSurface(fn func(slot surface.Slot, active bool)) {
	c.surfaceEvent(c.coord.Active, fn)
}

func (c *Controller) surfaceEvent(resolve func() surface.Slot, fn func(slot surface.Slot, active bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.switcher == nil {
		return
	}
	slot := resolve()
	fn(slot, slot == c.coord.Active())
	c.publish()
}

// settled runs when a surface applied its pending seek.
func (c *Controller) settled(slot surface.Slot) {
	if c.closed || slot != c.coord.Active() || c.state.Err != nil {
		return
	}
	c.coord.SetPlaying(c.state.Playing)
}

// slotListener forwards the events of one surface to the controller.
type slotListener struct {
	c    *Controller
	slot surface.Slot
}

func (l slotListener) OnLoad(d time.Duration) {
	l.c.onSurface(l.slot, func(slot surface.Slot, active bool) { l.c.applyLoaded(slot, active, d) })
}

func (l slotListener) OnProgress(p time.Duration) {
	l.c.onSurface(l.slot, func(slot surface.Slot, active bool) { l.c.applyProgress(slot, active, p) })
}

func (l slotListener) OnBuffer(b bool) {
	l.c.onSurface(l.slot, func(_ surface.Slot, active bool) { l.c.applyBuffering(active, b) })
}

func (l slotListener) OnError(err error) {
	l.c.onSurface(l.slot, func(slot surface.Slot, active bool) { l.c.applyError(slot, active, err) })
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Cues returns the cues still running.
func (c *Controller) Cues() []cue.Cue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cues.Active(time.Now())
}

// Subscribe creates a new event subscription. After Close the returned
// subscription is already done.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.subsClosed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close stops every timer, unloads and detaches both surfaces and closes
// subscriptions. Later calls and surface events are ignored.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.timers.Stop()
	c.coord.Close()
	c.log.Debug("controller closed")
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsClosed = true
	c.subsMu.Unlock()

	return nil
}

func (c *Controller) usable() error {
	if c.closed {
		return ErrClosed
	}
	if c.switcher == nil {
		return ErrNotLoaded
	}
	return nil
}

// withLoaded runs fn under the lock when media is loaded, then publishes.
func (c *Controller) withLoaded(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.usable(); err != nil {
		c.log.WithError(err).Debug("ignored")
		return
	}
	fn()
	c.publish()
}

// publish sends the state and position changes since the last publish.
func (c *Controller) publish() {
	prev, cur := c.last, c.state
	c.last = cur
	stateChanged := !sameExceptPosition(prev, cur)
	posChanged := prev.Position != cur.Position || prev.Duration != cur.Duration
	if !stateChanged && !posChanged {
		return
	}
	c.eachSub(func(s *Subscription) {
		if stateChanged {
			s.sendState(StateChange{Previous: prev.clone(), Current: cur.clone()})
		}
		if posChanged {
			s.sendPosition(PositionChange{Position: cur.Position, Duration: cur.Duration})
		}
	})
}

func (c *Controller) eachSub(fn func(s *Subscription)) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, s := range c.subs {
		fn(s)
	}
}
