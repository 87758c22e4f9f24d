// Package videoview renders the whole player: the video area with its
// placeholder card, active cues, the quality menu or failure notice, and
// the controls bar when visible.
package videoview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vidctl/internal/cue"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/icons"
	"github.com/llehouerou/vidctl/internal/playback"
	"github.com/llehouerou/vidctl/internal/ui"
	"github.com/llehouerou/vidctl/internal/ui/overlay"
	"github.com/llehouerou/vidctl/internal/ui/playerbar"
	"github.com/llehouerou/vidctl/internal/ui/popup"
	"github.com/llehouerou/vidctl/internal/ui/render"
	"github.com/llehouerou/vidctl/internal/ui/styles"
)

// View is one frame's worth of input.
type View struct {
	State   playback.State
	Cues    []cue.Cue
	Now     time.Time
	Spinner string
	Width   int
	Height  int

	SkipInterval time.Duration // label of skip cues
}

// BarVisible reports whether the controls bar is drawn for s. Outside the
// ready and buffering phases the bar stays up so the state is readable.
func BarVisible(s playback.State) bool {
	switch s.Phase() {
	case playback.PhaseReady, playback.PhaseBuffering, playback.PhaseLoading:
		return s.ControlsVisible
	case playback.PhaseUnloaded, playback.PhaseEnded, playback.PhaseFailed:
	}
	return true
}

// Render draws the frame. The output is exactly v.Height lines.
func Render(v View) string {
	if v.Width <= 0 || v.Height <= 0 {
		return ""
	}

	videoHeight := v.Height
	var bar string
	if BarVisible(v.State) {
		bar = playerbar.Render(playerbar.NewState(v.State, v.Spinner), v.Width)
		if bar != "" {
			videoHeight = max(v.Height-lipgloss.Height(bar), ui.MinVideoHeight)
		}
	}

	frame := videoFrame(v, videoHeight)
	if bar == "" {
		return frame
	}
	return fitHeight(frame+"\n"+bar, v.Height)
}

// videoFrame draws the video area. Inline mode frames it with a border;
// fullscreen fills the whole area.
func videoFrame(v View, height int) string {
	t := styles.T()
	w, h := v.Width, height
	frameStyle := lipgloss.NewStyle().Background(t.BgBase)
	if !v.State.Fullscreen {
		frameStyle = frameStyle.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border)
		w, h = max(w-2, 1), max(h-2, 1)
	}

	area := blank(w, h)
	area = overlay.Center(area, card(v), w, h)
	for _, c := range v.Cues {
		area = drawCue(area, c, v, w, h)
	}
	if d := dialog(v.State); d != nil {
		area = overlay.Compose(area, d.Render(w, h), w)
	}

	return frameStyle.Render(area)
}

// card is the centered placeholder standing in for the picture.
func card(v View) string {
	s := v.State
	t := styles.T()
	st := t.S()
	switch s.Phase() {
	case playback.PhaseUnloaded:
		return st.Subtle.Render("no media")
	case playback.PhaseLoading:
		return st.Muted.Render(strings.TrimSpace(v.Spinner + " loading"))
	case playback.PhaseBuffering:
		return st.Muted.Render(v.Spinner)
	case playback.PhaseEnded:
		return st.Muted.Render(icons.Current().Ended + "  replay (r)")
	case playback.PhaseFailed:
		return ""
	case playback.PhaseReady:
	}

	title := render.Sanitize(s.Title)
	if title == "" {
		title = "▒▒▒▒▒▒"
	}
	opacity := 1.0
	for _, c := range v.Cues {
		if c.Kind == cue.FadeIn {
			opacity = c.Frame(v.Now).Opacity
		}
	}
	fg := styles.Fade(t.FgBase, t.BgBase, opacity)
	out := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(render.Truncate(title, max(v.Width-8, 4)))
	if !s.Playing {
		out = lipgloss.NewStyle().Foreground(fg).Render(icons.Status(false)) + "  " + out
	}
	return out
}

// drawCue composes a like or skip cue at its anchor, colored by opacity.
func drawCue(area string, c cue.Cue, v View, w, h int) string {
	t := styles.T()
	f := c.Frame(v.Now)
	if f.Opacity <= 0 {
		return area
	}

	var text string
	var fg lipgloss.Color
	pos := lipgloss.Center
	switch c.Kind {
	case cue.Like:
		text, fg = icons.Current().Like, t.Like
		if f.Scale > 1.1 {
			text = " " + text + " "
		}
	case cue.Skip:
		forward := c.Direction == cue.Forward
		text, fg = skipLabel(forward, v.SkipInterval), t.Skip
		pos = 0.15
		if forward {
			pos = 0.85
		}
	case cue.FadeIn:
		return area
	}

	style := lipgloss.NewStyle().Foreground(styles.Fade(fg, t.BgBase, f.Opacity)).Bold(f.Scale > 1.1)
	placed := lipgloss.Place(w, h, pos, lipgloss.Center, style.Render(text))
	return overlay.Compose(area, placed, w)
}

func skipLabel(forward bool, interval time.Duration) string {
	secs := int(interval / time.Second)
	if secs <= 0 {
		return icons.Skip(forward)
	}
	if forward {
		return fmt.Sprintf("%s %ds", icons.Skip(true), secs)
	}
	return fmt.Sprintf("%ds %s", secs, icons.Skip(false))
}

// dialog returns the quality menu or failure notice, if any.
func dialog(s playback.State) *popup.Dialog {
	if s.Phase() == playback.PhaseFailed {
		d := popup.New()
		d.Style = popup.ErrorStyle()
		d.Title = icons.Current().Failed + " Playback failed"
		d.Content = failureText(s)
		d.Footer = "r retry"
		if len(s.Sources) > 1 {
			d.Footer += " · q other quality"
		}
		if s.QualityMenuOpen {
			d.Content += "\n\n" + qualityList(s)
		}
		return d
	}
	if s.QualityMenuOpen {
		d := popup.New()
		d.Title = "Quality"
		d.Content = qualityList(s)
		d.Footer = "1-9 select · q close"
		return d
	}
	return nil
}

func failureText(s playback.State) string {
	label := ""
	if v, ok := s.Current(); ok {
		label = v.Label
	}
	cause := s.Err
	var se *playback.SurfaceError
	if errors.As(s.Err, &se) {
		cause = se.Err
	}
	return errmsg.FormatWith(errmsg.OpPlaybackRun, label, cause)
}

func qualityList(s playback.State) string {
	st := styles.T().S()
	lines := make([]string, 0, len(s.Sources))
	for i, v := range s.Sources {
		line := fmt.Sprintf("%d  %s", i+1, v.Label)
		if i == s.SourceIndex {
			line = st.Active.Render(line)
		} else {
			line = st.Base.Padding(0, 1).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// blank returns a w x h block of spaces.
func blank(w, h int) string {
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// fitHeight trims or pads s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[len(lines)-h:]
	}
	for len(lines) < h {
		lines = append([]string{""}, lines...)
	}
	return strings.Join(lines, "\n")
}
