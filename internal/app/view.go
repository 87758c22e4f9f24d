// internal/app/view.go
package app

import (
	"time"

	"github.com/llehouerou/vidctl/internal/ui/helpbindings"
	"github.com/llehouerou/vidctl/internal/ui/overlay"
	"github.com/llehouerou/vidctl/internal/ui/popup"
	"github.com/llehouerou/vidctl/internal/ui/videoview"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}

	out := videoview.Render(videoview.View{
		State:        m.Service.State(),
		Cues:         m.Service.Cues(),
		Now:          time.Now(),
		Spinner:      m.Spinner.View(),
		Width:        m.Width,
		Height:       m.Height,
		SkipInterval: m.SkipInterval,
	})

	if m.ShowHelp {
		out = overlay.Compose(out, helpbindings.Render(m.Width, m.Height), m.Width)
	}
	if m.ErrorMsg != "" {
		d := popup.New()
		d.Style = popup.ErrorStyle()
		d.Title = "Error"
		d.Content = m.ErrorMsg
		d.Footer = "any key to dismiss"
		out = overlay.Compose(out, d.Render(m.Width, m.Height), m.Width)
	}
	return out
}
