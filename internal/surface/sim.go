package surface

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrSimulatedFailure is reported for URIs starting with "fail:".
var ErrSimulatedFailure = errors.New("simulated decode failure")

// SimOptions configures a simulated surface.
type SimOptions struct {
	Duration    time.Duration // media length
	LoadLatency time.Duration // delay between Load and OnLoad
	Tick        time.Duration // progress report interval
	StallEvery  time.Duration // buffer after this much playback; 0 never stalls
	StallFor    time.Duration // how long each stall lasts
}

func (o SimOptions) withDefaults() SimOptions {
	if o.Duration <= 0 {
		o.Duration = 2 * time.Minute
	}
	if o.LoadLatency <= 0 {
		o.LoadLatency = 400 * time.Millisecond
	}
	if o.Tick <= 0 {
		o.Tick = 250 * time.Millisecond
	}
	if o.StallFor <= 0 {
		o.StallFor = time.Second
	}
	return o
}

// Sim is an in-process surface that pretends to decode media. It loads after
// a latency, advances position in real time scaled by the rate, honors
// repeat, and can stall periodically. URIs with the "fail:" prefix fail to
// load. Seeks issued before the load completes are dropped, as many real
// surfaces do.
type Sim struct {
	mu       sync.Mutex
	opts     SimOptions
	listener Listener

	stop    chan struct{}
	loaded  bool
	paused  bool
	muted   bool
	repeat  bool
	rate    float64
	pos     time.Duration
	played  time.Duration
	stalled bool
}

// NewSim creates an idle simulated surface.
func NewSim(opts SimOptions) *Sim {
	return &Sim{
		opts:   opts.withDefaults(),
		paused: true,
		rate:   1,
	}
}

func (s *Sim) ReportsReady() bool { return true }

func (s *Sim) SetListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

func (s *Sim) Load(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.loaded = false
	s.pos = 0
	s.played = 0
	s.stalled = false
	s.stop = make(chan struct{})
	go s.run(uri, s.stop)
}

func (s *Sim) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.loaded = false
	s.pos = 0
}

func (s *Sim) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

func (s *Sim) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *Sim) SetRepeat(repeat bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat = repeat
}

func (s *Sim) SetRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = rate
}

func (s *Sim) Seek(position time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	s.pos = min(max(position, 0), s.opts.Duration)
}

// Close stops the background goroutine.
func (s *Sim) Close() {
	s.Unload()
}

func (s *Sim) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Sim) run(uri string, stop <-chan struct{}) {
	select {
	case <-stop:
		return
	case <-time.After(s.opts.LoadLatency):
	}

	if strings.HasPrefix(uri, "fail:") {
		s.emit(stop, func(l Listener) { l.OnError(ErrSimulatedFailure) })
		return
	}

	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	s.emit(stop, func(l Listener) { l.OnLoad(s.opts.Duration) })

	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.step(stop)
		}
	}
}

func (s *Sim) step(stop <-chan struct{}) {
	s.mu.Lock()
	if s.paused || s.stalled {
		s.mu.Unlock()
		return
	}
	advance := time.Duration(float64(s.opts.Tick) * s.rate)
	s.pos += advance
	s.played += advance
	if s.pos >= s.opts.Duration {
		if s.repeat {
			s.pos = 0
		} else {
			s.pos = s.opts.Duration
			s.paused = true
		}
	}
	pos := s.pos
	stall := s.opts.StallEvery > 0 && s.played >= s.opts.StallEvery
	if stall {
		s.played = 0
		s.stalled = true
	}
	s.mu.Unlock()

	s.emit(stop, func(l Listener) { l.OnProgress(pos) })
	if stall {
		s.emit(stop, func(l Listener) { l.OnBuffer(true) })
		time.AfterFunc(s.opts.StallFor, func() {
			s.mu.Lock()
			s.stalled = false
			s.mu.Unlock()
			s.emit(stop, func(l Listener) { l.OnBuffer(false) })
		})
	}
}

// emit calls the listener outside the surface lock, unless the load that
// produced the event has been superseded.
func (s *Sim) emit(stop <-chan struct{}, fn func(Listener)) {
	select {
	case <-stop:
		return
	default:
	}
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		fn(l)
	}
}

var (
	_ Handle        = (*Sim)(nil)
	_ ReadyReporter = (*Sim)(nil)
)
