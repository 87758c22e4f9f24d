// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionMute        Action = "mute"
	ActionCycleSpeed  Action = "cycle_speed"
	ActionSeekBack    Action = "seek_back"
	ActionSeekForward Action = "seek_forward"
	ActionReplay      Action = "replay_retry" // r - replay when ended, retry when failed
	ActionLike        Action = "like"

	// Presentation actions
	ActionFullscreen  Action = "fullscreen"
	ActionQualityMenu Action = "quality_menu"

	// Quality menu actions
	ActionSelectQuality Action = "select_quality" // 1-9
	ActionCloseMenu     Action = "close_menu"
)
