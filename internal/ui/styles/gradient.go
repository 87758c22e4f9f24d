package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for colors that are not #rrggbb, such as ANSI indexes.
var neutral = colorful.Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}

// ApplyGradient colors each grapheme of text along an HCL ramp from one
// color to another.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	for gr := uniseg.NewGraphemes(text); gr.Next(); {
		clusters = append(clusters, gr.Str())
	}
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range ramp(len(clusters), from, to) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(clusters[i]))
	}
	return b.String()
}

// Fade blends fg towards bg in Lab space. Opacity 1 is fg, 0 is bg.
func Fade(fg, bg lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return fg
	}
	if opacity <= 0 {
		return bg
	}
	return lipgloss.Color(parse(bg).BlendLab(parse(fg), opacity).Clamped().Hex())
}

// ramp returns n colors evenly spaced between from and to.
func ramp(n int, from, to lipgloss.Color) []colorful.Color {
	start := parse(from)
	if n < 2 {
		return []colorful.Color{start}
	}
	end := parse(to)
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = start.BlendHcl(end, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

func parse(c lipgloss.Color) colorful.Color {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return neutral
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return neutral
	}
	return col
}
