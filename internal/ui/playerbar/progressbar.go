package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vidctl/internal/ui"
	"github.com/llehouerou/vidctl/internal/ui/render"
	"github.com/llehouerou/vidctl/internal/ui/styles"
)

var (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgressBar renders the position line.
// Format: ▶  1:23  ━━━━━─────  -3:33
// The right-hand time counts down to the end.
func RenderProgressBar(position, duration time.Duration, width int, status string) string {
	posStr := render.Duration(position)
	durStr := "-" + render.Duration(max(duration-position, 0))
	if duration <= 0 {
		durStr = "--:--"
	}

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < ui.MinProgressBarWidth {
		return status + "  " + posStr + " / " + render.Duration(duration)
	}

	filled := filledCells(position, duration, barWidth)
	t := styles.T()
	bar := styles.ApplyGradient(strings.Repeat(filledBlock, filled), t.Primary, t.Secondary) +
		t.S().Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + t.S().Muted.Render(durStr)
}

func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || position <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(int(float64(width)*ratio), width)
}
