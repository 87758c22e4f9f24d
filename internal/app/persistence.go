package app

import (
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/playback"
	"github.com/llehouerou/vidctl/internal/state"
)

// loadOptions builds the load options, applying saved progress.
func (m Model) loadOptions() playback.LoadOptions {
	opts := playback.LoadOptions{
		AutoPlay: m.Media.AutoPlay,
		Loop:     m.Media.Loop,
		MediaKey: m.Media.Key,
		Title:    m.Media.Title,
	}
	if m.Progress == nil || m.Media.Key == "" {
		return opts
	}

	p, err := m.Progress.GetProgress(m.Media.Key)
	if err != nil {
		m.log.WithError(err).Warn(errmsg.Format(errmsg.OpProgressLoad, err))
		return opts
	}
	if p == nil {
		return opts
	}
	opts.StartAt = p.Position
	opts.Quality = p.Quality
	opts.Muted = p.Muted
	if playback.ValidSpeed(p.Speed) {
		opts.Speed = p.Speed
	}
	m.log.WithField("position", p.Position).Debug("resuming")
	return opts
}

// saveProgress records the resume point of s. Finished items restart from
// the beginning next time.
func (m Model) saveProgress(s playback.State) {
	if m.Progress == nil || s.MediaKey == "" || !s.Ready || s.Err != nil {
		return
	}
	p := state.Progress{
		MediaKey: s.MediaKey,
		Position: s.Position,
		Duration: s.Duration,
		Speed:    s.Speed,
		Muted:    s.Muted,
	}
	if s.Ended {
		p.Position = 0
	}
	if v, ok := s.Current(); ok {
		p.Quality = v.Label
	}
	m.Progress.SaveProgress(p)
}
