// Package app contains the terminal host: a bubbletea model that feeds keys
// and mouse input to the playback controller and renders its state.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vidctl/internal/cue"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/gesture"
	"github.com/llehouerou/vidctl/internal/playback"
)

// PlaybackMessage is implemented by messages converted from controller
// events. They are routed together in Update().
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// ServiceStateChangedMsg is sent when a field other than position changed.
type ServiceStateChangedMsg struct {
	Previous playback.State
	Current  playback.State
}

func (ServiceStateChangedMsg) playbackMessage() {}

// ServicePositionChangedMsg is sent on progress ticks and seeks.
type ServicePositionChangedMsg struct {
	Position time.Duration
	Duration time.Duration
}

func (ServicePositionChangedMsg) playbackMessage() {}

// ServiceGestureMsg is sent for every classified pointer gesture.
type ServiceGestureMsg struct {
	Gesture gesture.Event
}

func (ServiceGestureMsg) playbackMessage() {}

// ServiceCueMsg is sent when a cue starts or restarts.
type ServiceCueMsg struct {
	Cue cue.Cue
}

func (ServiceCueMsg) playbackMessage() {}

// ServiceErrorMsg is sent when playback fails.
type ServiceErrorMsg struct {
	Operation errmsg.Op
	Err       error
}

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent once the controller closed its subscriptions.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// AnimationTickMsg drives cue redraws while any cue is running.
type AnimationTickMsg time.Time
