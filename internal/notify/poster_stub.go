//go:build !linux

package notify

// PosterIcon returns empty on non-Linux platforms.
// Desktop notifications are only supported on Linux via D-Bus.
func PosterIcon(_ string) string {
	return ""
}
