//go:build linux

package mpris

import (
	"time"

	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/playback"
)

// seekJump is the smallest position change between two reports that is
// announced as a seek rather than normal progress.
const seekJump = 2 * time.Second

// Adapter connects a playback.Service to MPRIS over D-Bus.
type Adapter struct {
	service playback.Service
	server  *server.Server
	events  *events.EventHandler
	player  *playerAdapter
	sub     *playback.Subscription
	log     logrus.FieldLogger
	done    chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, log logrus.FieldLogger) (*Adapter, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	a := &Adapter{
		service: service,
		player:  newPlayerAdapter(service),
		log:     log.WithField("component", "mpris"),
		done:    make(chan struct{}),
	}

	a.server = server.NewServer("vidctl", &rootAdapter{}, a.player)
	a.events = events.NewEventHandler(a.server)
	a.sub = service.Subscribe()

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.WithError(err).Warn("mpris server stopped")
		}
	}()
	go a.watch()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// watch forwards playback changes as PropertiesChanged signals.
func (a *Adapter) watch() {
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case e := <-a.sub.StateChanged:
			a.stateChanged(e.Previous, e.Current)
		case e := <-a.sub.PositionChanged:
			a.positionChanged(e.Position)
		}
	}
}

func (a *Adapter) stateChanged(prev, cur playback.State) {
	if prev.MediaKey != cur.MediaKey || prev.SourceIndex != cur.SourceIndex ||
		prev.Duration != cur.Duration || prev.Title != cur.Title {
		if prev.MediaKey != cur.MediaKey {
			a.player.newTrack()
		}
		a.emit("title", a.events.Player.OnTitle())
	}
	if prev.Playing != cur.Playing || prev.Phase() != cur.Phase() {
		a.emit("playback", a.events.Player.OnPlayback())
	}
	if !prev.Ended && cur.Ended {
		a.emit("ended", a.events.Player.OnEnded())
	}
	if prev.Muted != cur.Muted {
		a.emit("volume", a.events.Player.OnVolume())
	}
	if prev.Speed != cur.Speed || prev.Loop != cur.Loop {
		a.emit("options", a.events.Player.OnOptions())
	}
}

func (a *Adapter) positionChanged(pos time.Duration) {
	if !a.player.observe(pos) {
		return
	}
	a.emit("seek", a.events.Player.OnSeek(types.Microseconds(pos.Microseconds())))
}

func (a *Adapter) emit(signal string, err error) {
	if err != nil {
		a.log.WithError(err).WithField("signal", signal).Debug("emitting mpris signal failed")
	}
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "vidctl", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/webm", "video/x-matroska", "application/vnd.apple.mpegurl"}, nil
}
