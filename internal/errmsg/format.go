// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Media operations
	OpMediaLoad   Op = "load media"
	OpMediaRetry  Op = "reload media"
	OpQualitySet  Op = "switch quality"
	OpSpeedSet    Op = "change speed"
	OpPlaybackRun Op = "play video"

	// Progress store operations
	OpProgressLoad   Op = "load watch progress"
	OpProgressSave   Op = "save watch progress"
	OpProgressDelete Op = "delete watch progress"

	// Desktop integration
	OpMPRISStart Op = "start media key integration"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
