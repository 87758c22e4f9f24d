// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// CellWidthUnits and CellHeightUnits convert terminal cells to the
	// logical pointer units the gesture recognizer works in. A cell is
	// roughly twice as tall as it is wide.
	CellWidthUnits  = 8
	CellHeightUnits = 16

	// BarHeight is the height of the controls bar (border + 2 rows).
	BarHeight = 4

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5

	// MinVideoHeight is the smallest video area drawn above the controls.
	MinVideoHeight = 3
)
