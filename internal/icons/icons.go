// Package icons selects the glyphs used by the player overlay.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play        string
	Pause       string
	Ended       string
	Failed      string
	Sound       string
	Muted       string
	Loop        string
	Fullscreen  string
	Like        string
	SkipForward string
	SkipBack    string
}

var (
	nerdIcons = Icons{
		Play:        "", // nf-fa-play
		Pause:       "", // nf-fa-pause
		Ended:       "", // nf-fa-repeat
		Failed:      "", // nf-fa-warning
		Sound:       "󰕾",      // nf-md-volume_high
		Muted:       "󰝟",      // nf-md-volume_off
		Loop:        "󰑖",      // nf-md-repeat
		Fullscreen:  "󰊓",      // nf-md-fullscreen
		Like:        "󰣐",      // nf-md-heart
		SkipForward: "󰵱",      // nf-md-fast_forward_10
		SkipBack:    "󰴪",      // nf-md-rewind_10
	}

	unicodeIcons = Icons{
		Play:        "▶",
		Pause:       "⏸",
		Ended:       "↻",
		Failed:      "⚠",
		Sound:       "🔊",
		Muted:       "🔇",
		Loop:        "🔁",
		Fullscreen:  "⛶",
		Like:        "♥",
		SkipForward: "»",
		SkipBack:    "«",
	}

	noneIcons = Icons{
		Play:        ">",
		Pause:       "||",
		Ended:       "[end]",
		Failed:      "!",
		Sound:       "",
		Muted:       "[mute]",
		Loop:        "[loop]",
		Fullscreen:  "[full]",
		Like:        "<3",
		SkipForward: ">>",
		SkipBack:    "<<",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Status returns the transport glyph for a playing flag.
func Status(playing bool) string {
	if playing {
		return current.Play
	}
	return current.Pause
}

// Volume returns the mute indicator. Empty when sound is on and the style
// has no glyph for it.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Sound
}

// Skip returns the skip glyph for a direction.
func Skip(forward bool) string {
	if forward {
		return current.SkipForward
	}
	return current.SkipBack
}
