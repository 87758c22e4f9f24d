// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"errors"
	"strings"

	"github.com/llehouerou/vidctl/internal/playback"
	"github.com/llehouerou/vidctl/internal/ui/playerbar"
)

// Urgency represents notification priority levels as defined by freedesktop notifications.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path or file URL of an image, or an icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// NowPlaying describes an item that just became ready.
func NowPlaying(s playback.State) Notification {
	parts := []string{}
	if v, ok := s.Current(); ok {
		parts = append(parts, v.Label)
	}
	if s.Speed != 0 && s.Speed != 1 {
		parts = append(parts, playerbar.FormatSpeed(s.Speed))
	}
	if s.Muted {
		parts = append(parts, "muted")
	}
	return Notification{
		Title:   titleOf(s),
		Body:    strings.Join(parts, " · "),
		Urgency: UrgencyLow,
	}
}

// PlaybackFailed describes a failure of the active surface.
func PlaybackFailed(s playback.State, err error) Notification {
	cause := err
	var se *playback.SurfaceError
	if errors.As(err, &se) {
		cause = se.Err
	}
	body := "Playback failed"
	if cause != nil {
		body += ": " + cause.Error()
	}
	return Notification{
		Title:   titleOf(s),
		Body:    body,
		Urgency: UrgencyCritical,
	}
}

func titleOf(s playback.State) string {
	if s.Title != "" {
		return s.Title
	}
	if v, ok := s.Current(); ok {
		return v.URI
	}
	return "vidctl"
}

// nopNotifier drops every notification.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
