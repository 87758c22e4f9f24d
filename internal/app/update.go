// internal/app/update.go
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/errmsg"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if pm, ok := msg.(PlaybackMessage); ok {
		return m.handlePlaybackMsg(pm)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case AnimationTickMsg:
		if len(m.Service.Cues()) == 0 {
			m.animating = false
			return m, nil
		}
		return m, AnimationTickCmd()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

// handlePlaybackMsg routes controller events. Every branch re-arms the watch.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ServiceClosedMsg:
		return m, nil // Controller closed, nothing left to watch

	case ServiceStateChangedMsg:
		if msg.Current.MediaKey == msg.Previous.MediaKey {
			m.saveProgress(msg.Current)
		}
		if becameReady(msg.Previous, msg.Current) {
			m.sendNowPlayingNotification(msg.Current)
		}

	case ServicePositionChangedMsg:
		m.saveProgress(m.Service.State())

	case ServiceCueMsg:
		if !m.animating {
			m.animating = true
			return m, tea.Batch(m.WatchServiceEvents(), AnimationTickCmd())
		}

	case ServiceGestureMsg:
		m.log.WithField("gesture", msg.Gesture.Kind).Debug("gesture")

	case ServiceErrorMsg:
		m.log.WithFields(logrus.Fields{
			"op": msg.Operation,
		}).WithError(msg.Err).Warn(errmsg.Format(msg.Operation, msg.Err))
		m.sendFailureNotification(m.Service.State(), msg.Err)
	}
	return m, m.WatchServiceEvents()
}
