package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged      <-chan StateChange
	PositionChanged   <-chan PositionChange
	GestureRecognized <-chan GestureEvent
	CueTriggered      <-chan CueEvent
	Error             <-chan ErrorEvent
	Done              <-chan struct{}

	// Internal write channels
	stateCh    chan StateChange
	positionCh chan PositionChange
	gestureCh  chan GestureEvent
	cueCh      chan CueEvent
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		gestureCh:  make(chan GestureEvent, eventBufferSize),
		cueCh:      make(chan CueEvent, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.PositionChanged = s.positionCh
	s.GestureRecognized = s.gestureCh
	s.CueTriggered = s.cueCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendPosition sends a position change event (non-blocking).
func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

// sendGesture sends a gesture event (non-blocking).
func (s *Subscription) sendGesture(e GestureEvent) {
	select {
	case s.gestureCh <- e:
	default:
	}
}

// sendCue sends a cue event (non-blocking).
func (s *Subscription) sendCue(e CueEvent) {
	select {
	case s.cueCh <- e:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
