package renderer

import (
	"context"

	"lockworks/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleLock
	StyleItem
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSuccess
	StyleHazard
	StyleLit
	StyleSubtle
)

// Renderer defines the interface for game rendering backends
// Implementations can include TUI (terminal), Ebiten, etc.
type Renderer interface {
	// Init initializes the renderer (colors, fonts, window, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders the selected lock, the lock list, the
	// inventory and the message log
	RenderFrame(g *state.Game)

	// StyleText applies a style to text and returns the styled string
	// For TUI this applies ANSI colors, for GUI it may return markup
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// Run drives the scene until the player quits or ctx is done
	Run(ctx context.Context, g *state.Game) error
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return Plain(msg, args...)
}
