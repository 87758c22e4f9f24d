package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "menu"
}

// All contains every key binding, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"ctrl+c", "esc"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionCycleSpeed, []string{"s"}, "Cycle speed", "playback"},
	{ActionSeekBack, []string{"left"}, "Skip back", "playback"},
	{ActionSeekForward, []string{"right"}, "Skip forward", "playback"},
	{ActionReplay, []string{"r"}, "Replay/retry", "playback"},
	{ActionLike, []string{"l"}, "Like", "playback"},
	{ActionFullscreen, []string{"f"}, "Toggle fullscreen", "playback"},
	{ActionQualityMenu, []string{"q"}, "Quality menu", "playback"},

	// Quality menu
	{ActionSelectQuality, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Select quality", "menu"},
	{ActionCloseMenu, []string{"q", "esc"}, "Close menu", "menu"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// QualityIndex returns the zero-based menu index for a digit key, or -1.
func QualityIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}
