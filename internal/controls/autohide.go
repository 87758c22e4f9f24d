// Package controls drives the visibility of the transport overlay.
package controls

import (
	"time"

	"github.com/llehouerou/vidctl/internal/timers"
)

// DefaultHideDelay is how long the overlay stays up after the last interaction.
const DefaultHideDelay = 2500 * time.Millisecond

// AutoHide is the overlay visibility state machine.
//
//	hidden ──Show──▶ visible ──hide timer──▶ hidden
//	                   │  ▲
//	                   └──┘ Show restarts the timer
//
// While the quality menu is open the hide timer is suppressed.
// All methods must be called with the timer table's lock held.
type AutoHide struct {
	timers   *timers.Table
	delay    time.Duration
	visible  bool
	menuOpen bool
	onChange func(visible bool)
}

// NewAutoHide creates a hidden overlay. onChange runs under the table lock
// every time visibility flips.
func NewAutoHide(t *timers.Table, delay time.Duration, onChange func(visible bool)) *AutoHide {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return &AutoHide{
		timers:   t,
		delay:    delay,
		onChange: onChange,
	}
}

// Visible reports whether the overlay is shown.
func (a *AutoHide) Visible() bool { return a.visible }

// MenuOpen reports whether the quality menu holds the overlay open.
func (a *AutoHide) MenuOpen() bool { return a.menuOpen }

// Show makes the overlay visible and restarts the hide timer.
func (a *AutoHide) Show() {
	a.set(true)
	a.rearm()
}

// Hide hides the overlay immediately. Closes the menu too.
func (a *AutoHide) Hide() {
	a.timers.Cancel(timers.Hide)
	a.menuOpen = false
	a.set(false)
}

// Toggle hides a visible overlay or shows a hidden one.
func (a *AutoHide) Toggle() {
	if a.visible {
		a.Hide()
		return
	}
	a.Show()
}

// SetMenuOpen opens or closes the quality menu. Opening keeps the overlay
// visible indefinitely; closing starts a fresh hide countdown.
func (a *AutoHide) SetMenuOpen(open bool) {
	if a.menuOpen == open {
		return
	}
	a.menuOpen = open
	a.Show()
}

// Reset hides the overlay and forgets the menu without notifying.
func (a *AutoHide) Reset() {
	a.timers.Cancel(timers.Hide)
	a.visible = false
	a.menuOpen = false
}

func (a *AutoHide) rearm() {
	if a.menuOpen {
		a.timers.Cancel(timers.Hide)
		return
	}
	a.timers.Schedule(timers.Hide, a.delay, a.expire)
}

func (a *AutoHide) expire() {
	if a.menuOpen {
		return
	}
	a.set(false)
}

func (a *AutoHide) set(visible bool) {
	if a.visible == visible {
		return
	}
	a.visible = visible
	if a.onChange != nil {
		a.onChange(visible)
	}
}
