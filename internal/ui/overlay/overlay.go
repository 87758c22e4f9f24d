// Package overlay layers rendered views on top of each other.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Compose overlays content on top of a base view.
// Each overlay line replaces the base between its first and last visible
// (non-space) columns; leading and trailing spaces stay transparent.
// This function is ANSI-aware and handles styled text correctly.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plainOverlay := ansi.Strip(overlayLine)
		if strings.TrimSpace(plainOverlay) == "" {
			continue
		}

		startCol := 0
		for _, r := range plainOverlay {
			if r != ' ' {
				break
			}
			startCol++
		}
		endCol := ansi.StringWidth(strings.TrimRight(plainOverlay, " "))

		content := ansi.Cut(overlayLine, startCol, endCol)
		baseLines[i] = splice(baseLines[i], content, startCol, endCol, width)
	}

	return strings.Join(baseLines, "\n")
}

// Center overlays content in the middle of a width x height base view.
func Center(base, content string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	return Compose(base, placed, width)
}

// splice replaces columns [start, end) of line with content. Wide
// characters cut in half at either edge become spaces.
func splice(line, content string, start, end, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}

	prefix := ansi.Cut(line, 0, start)
	if w := ansi.StringWidth(prefix); w < start {
		prefix += strings.Repeat(" ", start-w)
	}

	result := prefix + content
	if end >= width {
		return result
	}

	want := width - end
	suffix := ansi.Cut(line, end, width)
	switch w := ansi.StringWidth(suffix); {
	case w > want:
		suffix = " " + ansi.Cut(suffix, w-want+1, w)
	case w < want:
		suffix = strings.Repeat(" ", want-w) + suffix
	}
	return result + suffix
}
