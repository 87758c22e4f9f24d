// Package popup renders centered dialog boxes.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vidctl/internal/ui/render"
	"github.com/llehouerou/vidctl/internal/ui/styles"
)

// Style configures the popup appearance.
type Style struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	TitleStyle  lipgloss.Style
	FooterStyle lipgloss.Style
}

// DefaultStyle returns the default popup style.
func DefaultStyle() Style {
	t := styles.T()
	return Style{
		Border:      lipgloss.RoundedBorder(),
		BorderColor: t.Border,
		TitleStyle:  t.S().Title,
		FooterStyle: t.S().Subtle,
	}
}

// ErrorStyle returns the style used for failure notices.
func ErrorStyle() Style {
	s := DefaultStyle()
	s.BorderColor = styles.T().Error
	s.TitleStyle = styles.T().S().Error.Bold(true)
	return s
}

// Dialog is a box with title, content and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Width   int // 0 = auto-fit content
	Style   Style
}

// New creates a new dialog with default style.
func New() *Dialog {
	return &Dialog{
		Style: DefaultStyle(),
	}
}

// Box renders the dialog without centering. maxWidth bounds the box
// including its border.
func (p *Dialog) Box(maxWidth int) string {
	style := p.Style

	innerWidth := p.Width
	if innerWidth == 0 {
		innerWidth = max(
			maxLineWidth(p.Content),
			lipgloss.Width(p.Title),
			lipgloss.Width(p.Footer),
		)
	}
	// border + padding
	innerWidth = max(min(innerWidth, maxWidth-4), 1)

	lines := make([]string, 0, strings.Count(p.Content, "\n")+5)
	if p.Title != "" {
		lines = append(lines, render.Center(style.TitleStyle.Render(render.Truncate(p.Title, innerWidth)), innerWidth), "")
	}
	for line := range strings.SplitSeq(p.Content, "\n") {
		lines = append(lines, padLine(render.TruncateStyled(line, innerWidth), innerWidth))
	}
	if p.Footer != "" {
		lines = append(lines, "", render.Center(style.FooterStyle.Render(render.Truncate(p.Footer, innerWidth)), innerWidth))
	}

	return lipgloss.NewStyle().
		Border(style.Border).
		BorderForeground(style.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Render returns the dialog centered in a termWidth x termHeight area.
func (p *Dialog) Render(termWidth, termHeight int) string {
	return Center(p.Box(termWidth), termWidth, termHeight)
}

// Center centers pre-rendered content in the given area. The result has
// exactly termHeight lines when the content fits.
func Center(content string, termWidth, termHeight int) string {
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, content)
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		maxW = max(maxW, lipgloss.Width(line))
	}
	return maxW
}

func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
