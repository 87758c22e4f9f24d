//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindPoster(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "poster.jpg"))
	video := filepath.Join(dir, "movie.mkv")

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"plain path", video, "file://" + filepath.Join(dir, "poster.jpg")},
		{"file url", "file://" + video, "file://" + filepath.Join(dir, "poster.jpg")},
		{"remote", "https://example.com/movie.mkv", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindPoster(tt.uri); got != tt.want {
				t.Errorf("FindPoster(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestFindPoster_SidecarWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "folder.jpg"))
	touch(t, filepath.Join(dir, "movie.png"))

	got := FindPoster(filepath.Join(dir, "movie.mkv"))
	want := "file://" + filepath.Join(dir, "movie.png")
	if got != want {
		t.Errorf("FindPoster() = %q, want %q", got, want)
	}
}

func TestFindPoster_NotFound(t *testing.T) {
	if got := FindPoster(filepath.Join(t.TempDir(), "movie.mkv")); got != "" {
		t.Errorf("FindPoster() = %q, want empty string", got)
	}
}
