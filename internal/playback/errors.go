package playback

import (
	"errors"
	"fmt"

	"github.com/llehouerou/vidctl/internal/source"
	"github.com/llehouerou/vidctl/internal/surface"
)

// Precondition errors. Returned synchronously, state is left untouched.
var (
	ErrNoSources        = source.ErrNoSources
	ErrDuplicateQuality = source.ErrDuplicateQuality
	ErrUnknownQuality   = source.ErrUnknownQuality
	ErrInvalidSpeed     = errors.New("invalid playback speed")
	ErrNotLoaded        = errors.New("no media loaded")
	ErrClosed           = errors.New("controller closed")
)

// SurfaceError is a fatal decode or load failure of the active surface.
type SurfaceError struct {
	Slot surface.Slot
	URI  string
	Err  error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("%s surface %q: %v", e.Slot, e.URI, e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }
