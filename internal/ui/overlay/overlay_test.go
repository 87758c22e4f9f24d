package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		overlay string
		width   int
		want    string
	}{
		{
			name:    "replaces visible span",
			base:    "..........\n..........",
			overlay: "   abc",
			width:   10,
			want:    "...abc....\n..........",
		},
		{
			name:    "blank overlay line keeps base",
			base:    "..........\n..........",
			overlay: "          \n  xy",
			width:   10,
			want:    "..........\n..xy......",
		},
		{
			name:    "short base is padded",
			base:    "..",
			overlay: "     z",
			width:   8,
			want:    "..   z  ",
		},
		{
			name:    "extra overlay lines ignored",
			base:    "....",
			overlay: "a\nb",
			width:   4,
			want:    "a...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(Compose(tt.base, tt.overlay, tt.width))
			if got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompose_StyledOverlay(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hi")
	got := Compose(strings.Repeat(".", 6), "  "+styled, 6)

	if plain := ansi.Strip(got); plain != "..hi.." {
		t.Errorf("stripped = %q, want %q", plain, "..hi..")
	}
}

func TestCompose_WideCharacterAtEdge(t *testing.T) {
	got := ansi.Strip(Compose("日本語", " x", 6))
	if w := ansi.StringWidth(got); w != 6 {
		t.Errorf("width = %d, want 6 (%q)", w, got)
	}
	if !strings.Contains(got, "x") {
		t.Errorf("overlay missing in %q", got)
	}
}

func TestCenter(t *testing.T) {
	base := strings.Join([]string{".......", ".......", "......."}, "\n")

	got := ansi.Strip(Center(base, "♥", 7, 3))

	want := strings.Join([]string{".......", "...♥...", "......."}, "\n")
	if got != want {
		t.Errorf("Center() = %q, want %q", got, want)
	}
}
