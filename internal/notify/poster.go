//go:build linux

package notify

import "github.com/llehouerou/vidctl/internal/mpris"

// PosterIcon returns the file URL of the poster of a local video, if found.
// This is a convenience wrapper around mpris.FindPoster.
func PosterIcon(uri string) string {
	return mpris.FindPoster(uri)
}
