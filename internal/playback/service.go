package playback

import (
	"time"

	"github.com/llehouerou/vidctl/internal/cue"
	"github.com/llehouerou/vidctl/internal/gesture"
	"github.com/llehouerou/vidctl/internal/source"
)

// LoadOptions configures a freshly loaded media item.
type LoadOptions struct {
	AutoPlay bool
	Loop     bool

	StartAt time.Duration // resume position
	Quality string        // preferred label; unknown labels fall back to the first source
	Speed   float64       // zero means 1
	Muted   bool

	MediaKey string // identifies the item in the progress store
	Title    string
}

// Service defines the playback controller contract.
type Service interface {
	// Media
	Load(sources []source.Variant, opts LoadOptions) error
	SelectQuality(v source.Variant) error
	Retry() error

	// Transport
	Play()
	Pause()
	TogglePlay()
	Replay()
	SeekTo(position time.Duration)
	SeekBy(delta time.Duration)

	// Audio and rate
	ToggleMute()
	SetMuted(muted bool)
	CycleSpeed()
	SetSpeed(speed float64) error

	// Presentation
	EnterFullscreen()
	ExitFullscreen()
	ToggleFullscreen()
	ShowControls()
	OpenQualityMenu()
	CloseQualityMenu()
	Like()

	// Pointer input on the video surface
	PointerDown(p gesture.Point)
	PointerMove(p gesture.Point)
	PointerUp(p gesture.Point)
	PointerCancel()

	// Active surface events
	OnSurfaceLoaded(duration time.Duration)
	OnSurfaceProgress(current time.Duration)
	OnSurfaceBuffering(buffering bool)
	OnSurfaceError(err error)

	// State queries
	State() State
	Cues() []cue.Cue

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
