package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestFade(t *testing.T) {
	fg := lipgloss.Color("#ff0000")
	bg := lipgloss.Color("#000000")

	tests := []struct {
		name    string
		opacity float64
		want    lipgloss.Color
	}{
		{"opaque", 1, fg},
		{"transparent", 0, bg},
		{"clamped above", 3, fg},
		{"clamped below", -1, bg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fade(fg, bg, tt.opacity); got != tt.want {
				t.Errorf("Fade(%v) = %q, want %q", tt.opacity, got, tt.want)
			}
		})
	}
}

func TestFade_Midpoint(t *testing.T) {
	got := Fade("#ffffff", "#000000", 0.5)
	if got == "#ffffff" || got == "#000000" {
		t.Errorf("Fade(0.5) = %q, want a blend", got)
	}
	if !strings.HasPrefix(string(got), "#") || len(got) != 7 {
		t.Errorf("Fade(0.5) = %q, want hex color", got)
	}
}

func TestApplyGradient_PreservesText(t *testing.T) {
	tests := []string{"", "a", "progress", "日本語"}
	for _, text := range tests {
		got := ansi.Strip(ApplyGradient(text, "#a78bfa", "#f1a208"))
		if got != text {
			t.Errorf("ApplyGradient(%q) stripped = %q", text, got)
		}
	}
}

func TestRamp(t *testing.T) {
	got := ramp(5, "#000000", "#ffffff")
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].Hex() != "#000000" || got[4].Hex() != "#ffffff" {
		t.Errorf("ends = %s..%s, want #000000..#ffffff", got[0].Hex(), got[4].Hex())
	}
	if n := len(ramp(1, "#a78bfa", "#f1a208")); n != 1 {
		t.Errorf("len = %d, want 1", n)
	}
}

func TestParse_ANSIFallback(t *testing.T) {
	if got := parse("240").Hex(); got != "#808080" {
		t.Errorf("fallback = %s, want #808080", got)
	}
}
