package ui

import "time"

// Screen layout.
const (
	// ControlBarHeight is the number of rows below the desktop.
	ControlBarHeight = 1

	// MinWidth and MinHeight are the smallest usable terminal sizes.
	MinWidth  = 24
	MinHeight = 8

	// HelpWidth is the width of the shortcut overlay.
	HelpWidth = 58

	// EditorWidth is the width of the custom content editor.
	EditorWidth = 72
)

// Timing constants.
const (
	// StatusDuration is how long a status message stays in the control bar.
	StatusDuration = 3 * time.Second

	// MaxFrameDelta bounds the time a single frame may advance, so a stalled
	// terminal does not fast-forward every engine at once.
	MaxFrameDelta = 250 * time.Millisecond

	// ScreenshotTimeout bounds clipboard helpers.
	ScreenshotTimeout = 10 * time.Second

	// MinStepInterval and MaxStepInterval bound the typing speed keys.
	MinStepInterval = 10 * time.Millisecond
	MaxStepInterval = 2 * time.Second
)

// Glyphs drawn on the desktop.
const (
	closeGlyph  = "×"
	cursorGlyph = "▋"
	catGlyph    = "🐱"
)
