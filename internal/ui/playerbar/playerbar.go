// Package playerbar renders the video controls bar: transport status,
// title, badges and the progress line.
package playerbar

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vidctl/internal/icons"
	"github.com/llehouerou/vidctl/internal/playback"
	"github.com/llehouerou/vidctl/internal/ui"
	"github.com/llehouerou/vidctl/internal/ui/render"
	"github.com/llehouerou/vidctl/internal/ui/styles"
)

// State holds everything needed to render the controls bar.
type State struct {
	Phase      playback.Phase
	Playing    bool
	Title      string
	Quality    string
	Speed      float64
	Muted      bool
	Loop       bool
	Fullscreen bool
	Position   time.Duration
	Duration   time.Duration
	Spinner    string // current spinner frame, shown while loading or buffering
}

// NewState constructs a State from a playback snapshot.
func NewState(s playback.State, spinner string) State {
	st := State{
		Phase:      s.Phase(),
		Playing:    s.Playing,
		Title:      s.Title,
		Speed:      s.Speed,
		Muted:      s.Muted,
		Loop:       s.Loop,
		Fullscreen: s.Fullscreen,
		Position:   s.Position,
		Duration:   s.Duration,
		Spinner:    spinner,
	}
	if v, ok := s.Current(); ok {
		st.Quality = v.Label
	}
	return st
}

// Height returns the total height of the bar including its border.
func Height() int {
	return ui.BarHeight
}

// Render returns the bar for the given width, or an empty string when
// nothing is loaded.
func Render(s State, width int) string {
	if s.Phase == playback.PhaseUnloaded {
		return ""
	}
	innerWidth := max(width-4, 0) // border + padding

	top := render.Row(titleLine(s, innerWidth), badges(s), innerWidth)
	bottom := RenderProgressBar(s.Position, s.Duration, innerWidth, statusGlyph(s))

	t := styles.T()
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(top + "\n" + bottom)
}

func titleLine(s State, innerWidth int) string {
	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	phase := phaseLabel(s)
	avail := max(innerWidth-lipgloss.Width(badges(s))-lipgloss.Width(phase)-3, 1)

	out := styles.T().S().Title.Render(render.Truncate(title, avail))
	if phase != "" {
		out += "  " + phase
	}
	return out
}

// phaseLabel describes non-ready phases next to the title.
func phaseLabel(s State) string {
	st := styles.T().S()
	switch s.Phase {
	case playback.PhaseLoading:
		return st.Muted.Render(strings.TrimSpace(s.Spinner + " loading"))
	case playback.PhaseBuffering:
		return st.Muted.Render(strings.TrimSpace(s.Spinner + " buffering"))
	case playback.PhaseEnded:
		return st.Muted.Render("ended")
	case playback.PhaseFailed:
		return st.Error.Render("failed")
	case playback.PhaseUnloaded, playback.PhaseReady:
	}
	return ""
}

func statusGlyph(s State) string {
	ic := icons.Current()
	switch s.Phase {
	case playback.PhaseEnded:
		return ic.Ended
	case playback.PhaseFailed:
		return ic.Failed
	case playback.PhaseUnloaded, playback.PhaseLoading, playback.PhaseReady, playback.PhaseBuffering:
	}
	return icons.Status(s.Playing)
}

// badges renders the speed, quality, loop, mute and fullscreen indicators.
func badges(s State) string {
	st := styles.T().S()
	var parts []string

	if s.Speed != 0 && s.Speed != 1 {
		parts = append(parts, st.Active.Render(FormatSpeed(s.Speed)))
	} else {
		parts = append(parts, st.Badge.Render(FormatSpeed(1)))
	}
	if s.Quality != "" {
		parts = append(parts, st.Badge.Render(s.Quality))
	}
	if s.Loop {
		parts = append(parts, st.Badge.Render(icons.Current().Loop))
	}
	if v := icons.Volume(s.Muted); v != "" {
		style := st.Badge
		if s.Muted {
			style = st.Warning.Padding(0, 1)
		}
		parts = append(parts, style.Render(v))
	}
	if s.Fullscreen {
		parts = append(parts, st.Badge.Render(icons.Current().Fullscreen))
	}
	return strings.Join(parts, "")
}

// FormatSpeed renders a playback rate as "1.5x".
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64) + "x"
}
