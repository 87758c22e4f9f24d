package app

import (
	"github.com/llehouerou/vidctl/internal/config"
	"github.com/llehouerou/vidctl/internal/notify"
	"github.com/llehouerou/vidctl/internal/playback"
)

// WithNotifier enables desktop notifications.
func WithNotifier(n notify.Notifier, cfg config.NotificationsConfig) Option {
	return func(m *Model) {
		m.notifier = n
		m.notificationsConfig = cfg
	}
}

// becameReady reports a load or retry reaching ready.
func becameReady(prev, cur playback.State) bool {
	return !prev.Ready && cur.Ready && cur.Err == nil
}

// sendNowPlayingNotification announces s, replacing the previous one.
func (m *Model) sendNowPlayingNotification(s playback.State) {
	if m.notifier == nil || !m.notificationsConfig.NowPlayingEnabled() {
		return
	}
	n := notify.NowPlaying(s)
	n.Timeout = m.notificationsConfig.Timeout
	n.ReplacesID = m.lastNowPlayingID
	if m.notificationsConfig.PosterEnabled() {
		if v, ok := s.Current(); ok {
			n.Icon = notify.PosterIcon(v.URI)
		}
	}
	id, err := m.notifier.Notify(n)
	if err != nil {
		m.log.WithError(err).Debug("now playing notification failed")
		return
	}
	m.lastNowPlayingID = id
}

// sendFailureNotification reports a playback failure.
func (m *Model) sendFailureNotification(s playback.State, err error) {
	if m.notifier == nil || !m.notificationsConfig.FailuresEnabled() {
		return
	}
	n := notify.PlaybackFailed(s, err)
	n.Timeout = m.notificationsConfig.Timeout
	if _, nerr := m.notifier.Notify(n); nerr != nil {
		m.log.WithError(nerr).Debug("failure notification failed")
	}
}
