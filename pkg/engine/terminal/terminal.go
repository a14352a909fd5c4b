package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// IsInteractive reports whether stdin is a terminal we can put in raw mode.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// MakeRaw puts stdin into raw mode so keys arrive without Enter.
// The returned function restores the previous mode.
func MakeRaw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

// Home moves the cursor to the top left and clears the screen below it.
// Used in raw mode, where a full clear flickers.
func Home() {
	fmt.Print("\x1b[H\x1b[J")
}
