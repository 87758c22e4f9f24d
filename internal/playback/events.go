package playback

import (
	"time"

	"github.com/llehouerou/vidctl/internal/cue"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/gesture"
)

// StateChange is emitted when any field other than position changes.
type StateChange struct {
	Previous State
	Current  State
}

// PositionChange is emitted when position or duration moves, including
// progress ticks and seeks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// GestureEvent is emitted for every classified pointer gesture.
type GestureEvent struct {
	Gesture gesture.Event
}

// CueEvent is emitted when a visual cue starts or restarts.
type CueEvent struct {
	Cue cue.Cue
}

// ErrorEvent is emitted when playback fails.
type ErrorEvent struct {
	Operation errmsg.Op
	Err       error
}
