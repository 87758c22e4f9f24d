package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// animationFrame is the redraw interval while cues are running.
const animationFrame = 33 * time.Millisecond

// AnimationTickCmd returns a command that sends AnimationTickMsg after one frame.
func AnimationTickCmd() tea.Cmd {
	return tea.Tick(animationFrame, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next controller
// event. It listens on all subscription channels and converts events to tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Previous: e.Previous, Current: e.Current}
		case e := <-sub.PositionChanged:
			return ServicePositionChangedMsg{Position: e.Position, Duration: e.Duration}
		case e := <-sub.GestureRecognized:
			return ServiceGestureMsg{Gesture: e.Gesture}
		case e := <-sub.CueTriggered:
			return ServiceCueMsg{Cue: e.Cue}
		case e := <-sub.Error:
			return ServiceErrorMsg{Operation: e.Operation, Err: e.Err}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}
