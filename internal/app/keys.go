package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/keymap"
	"github.com/llehouerou/vidctl/internal/playback"
)

// keyContext is the keymap context matching the current state.
func keyContext(s playback.State) string {
	if s.QualityMenuOpen {
		return "menu"
	}
	return "playback"
}

// handleKeyMsg dispatches a key press to the controller.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	s := m.Service.State()

	action := m.Keys.Resolve(keyContext(s), key)

	// Any key dismisses a pending error notice or the help popup.
	if m.ErrorMsg != "" || m.ShowHelp {
		m.ErrorMsg = ""
		m.ShowHelp = false
		if action != keymap.ActionQuit {
			return m, nil
		}
	}

	switch action {
	case keymap.ActionQuit:
		m.saveProgress(s)
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = true
	case keymap.ActionPlayPause:
		m.Service.TogglePlay()
	case keymap.ActionMute:
		m.Service.ToggleMute()
	case keymap.ActionCycleSpeed:
		m.Service.CycleSpeed()
	case keymap.ActionSeekBack:
		m.Service.SeekBy(-m.SkipInterval)
	case keymap.ActionSeekForward:
		m.Service.SeekBy(m.SkipInterval)
	case keymap.ActionReplay:
		return m.replayOrRetry(s)
	case keymap.ActionLike:
		m.Service.Like()
	case keymap.ActionFullscreen:
		m.Service.ToggleFullscreen()
	case keymap.ActionQualityMenu:
		m.Service.OpenQualityMenu()
	case keymap.ActionCloseMenu:
		m.Service.CloseQualityMenu()
	case keymap.ActionSelectQuality:
		return m.selectQuality(s, keymap.QualityIndex(key))
	case "":
		m.Service.ShowControls()
	}
	return m, nil
}

func (m Model) replayOrRetry(s playback.State) (tea.Model, tea.Cmd) {
	if s.Phase() != playback.PhaseFailed {
		m.Service.Replay()
		return m, nil
	}
	if err := m.Service.Retry(); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpMediaRetry, err)
	}
	return m, nil
}

func (m Model) selectQuality(s playback.State, idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(s.Sources) {
		return m, nil
	}
	v := s.Sources[idx]
	if err := m.Service.SelectQuality(v); err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpQualitySet, v.Label, err)
		return m, nil
	}
	m.Service.CloseQualityMenu()
	return m, nil
}
