//go:build linux

package mpris

import (
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/vidctl/internal/playback"
)

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// LoopStatus/Rate/Volume optional interfaces.
type playerAdapter struct {
	service playback.Service

	mu       sync.Mutex
	trackID  string
	lastSeen time.Duration
}

func newPlayerAdapter(service playback.Service) *playerAdapter {
	p := &playerAdapter{service: service}
	p.newTrack()
	return p
}

// newTrack assigns a fresh track id; MPRIS clients key their caches on it.
func (p *playerAdapter) newTrack() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackID = "/org/mpris/MediaPlayer2/Track/" + strings.ReplaceAll(uuid.NewString(), "-", "")
	p.lastSeen = 0
}

func (p *playerAdapter) currentTrackID() dbus.ObjectPath {
	p.mu.Lock()
	defer p.mu.Unlock()
	return dbus.ObjectPath(p.trackID)
}

// observe records a reported position and reports whether it jumped far
// enough from the previous one to count as a seek.
func (p *playerAdapter) observe(pos time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	delta := pos - p.lastSeen
	p.lastSeen = pos
	return delta < 0 || delta > seekJump
}

func (p *playerAdapter) Next() error {
	return nil // single item
}

func (p *playerAdapter) Previous() error {
	return nil // single item
}

func (p *playerAdapter) Pause() error {
	p.service.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.service.TogglePlay()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.service.Pause()
	p.service.SeekTo(0)
	return nil
}

func (p *playerAdapter) Play() error {
	p.service.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.service.SeekBy(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	if dbus.ObjectPath(trackID) != p.currentTrackID() {
		return nil // stale request for a previous item
	}
	p.service.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s := p.service.State()
	switch s.Phase() {
	case playback.PhaseUnloaded, playback.PhaseFailed:
		return types.PlaybackStatusStopped, nil
	case playback.PhaseEnded:
		return types.PlaybackStatusPaused, nil
	case playback.PhaseLoading, playback.PhaseReady, playback.PhaseBuffering:
	}
	if s.Playing {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.service.State().Speed, nil
}

// SetRate snaps to the nearest supported speed.
func (p *playerAdapter) SetRate(rate float64) error {
	if rate <= 0 {
		p.service.Pause()
		return nil
	}
	return p.service.SetSpeed(playback.NearestSpeed(rate))
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.service.State()
	v, ok := s.Current()
	if !ok {
		return types.Metadata{}, nil
	}

	title := s.Title
	if title == "" {
		title = v.Label
	}
	meta := types.Metadata{
		TrackId: p.currentTrackID(),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   title,
	}
	if art := FindPoster(v.URI); art != "" {
		meta.ArtUrl = art
	}
	return meta, nil
}

// Volume maps mute onto the MPRIS volume range.
func (p *playerAdapter) Volume() (float64, error) {
	if p.service.State().Muted {
		return 0, nil
	}
	return 1, nil
}

func (p *playerAdapter) SetVolume(volume float64) error {
	p.service.SetMuted(volume <= 0)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.State().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return playback.Speeds[0], nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return playback.Speeds[len(playback.Speeds)-1], nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.State().Loaded(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.service.State().Loaded(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.State().Ready, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.State().Loop {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus is read-only: looping is fixed per load.
func (p *playerAdapter) SetLoopStatus(_ types.LoopStatus) error {
	return nil
}
