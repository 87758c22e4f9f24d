//go:build linux

package mpris

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// posterNames lists common artwork filenames in priority order.
var posterNames = []string{
	"poster.jpg", "poster.png",
	"folder.jpg", "folder.png",
	"cover.jpg", "cover.png",
	"fanart.jpg",
}

// FindPoster looks for artwork next to a local video. A sidecar named after
// the video ("movie.jpg" for "movie.mkv") wins over the generic names.
// Returns a file URL, or empty string for remote sources or when nothing is
// found.
func FindPoster(uri string) string {
	path, ok := localPath(uri)
	if !ok {
		return ""
	}
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	candidates := []string{stem + ".jpg", stem + ".png"}
	candidates = append(candidates, posterNames...)
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return (&url.URL{Scheme: "file", Path: p}).String()
		}
	}
	return ""
}

func localPath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "file":
		return u.Path, u.Path != ""
	case "":
		return uri, uri != ""
	}
	return "", false
}
