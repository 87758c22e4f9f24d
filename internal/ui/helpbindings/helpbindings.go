// Package helpbindings renders the key binding reference popup.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vidctl/internal/keymap"
	"github.com/llehouerou/vidctl/internal/ui/popup"
	"github.com/llehouerou/vidctl/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"playback", "menu", "global"}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"menu":     "Quality Menu",
}

// Render returns the help popup centered in a width x height area.
func Render(width, height int) string {
	d := popup.New()
	d.Title = "Help"
	d.Content = buildContent(max(height-6, 3))
	d.Footer = "any key to close"
	return d.Render(width, height)
}

// buildContent lists bindings by category, cut to maxLines.
func buildContent(maxLines int) string {
	st := styles.T().S()
	keyStyle := st.Title
	headerStyle := st.Warning.Bold(true)

	var bindings []keymap.Binding
	for _, ctx := range categoryOrder {
		bindings = append(bindings, keymap.ByContext(ctx)...)
	}

	// Find max key width for alignment
	maxKeyWidth := 0
	for _, b := range bindings {
		maxKeyWidth = max(maxKeyWidth, lipgloss.Width(keyLabel(b)))
	}

	var lines []string
	current := ""
	for _, b := range bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			lines = append(lines, headerStyle.Render(categoryLabels[b.Context]))
			current = b.Context
		}
		k := keyLabel(b)
		padded := k + strings.Repeat(" ", maxKeyWidth-lipgloss.Width(k))
		lines = append(lines, keyStyle.Render(padded)+"  "+st.Base.Render(b.Description))
	}

	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], st.Subtle.Render("…"))
	}
	return strings.Join(lines, "\n")
}

// keyLabel renders the keys of b for display.
func keyLabel(b keymap.Binding) string {
	if b.Action == keymap.ActionSelectQuality {
		return "1-9"
	}
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		switch k {
		case " ":
			keys[i] = "space"
		case "left":
			keys[i] = "←"
		case "right":
			keys[i] = "→"
		default:
			keys[i] = k
		}
	}
	return strings.Join(keys, ", ")
}
