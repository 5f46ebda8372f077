// Package backend abstracts the terminal the runtime draws to.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-virtual/terminal"
)

// Style is the cell style used across the runtime.
type Style = tcell.Style

// Color is a cell color.
type Color = tcell.Color

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Cell is a rune with its style.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal the app renders into.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	HideCursor()
	// PollEvent blocks for the next event and returns nil once the
	// backend has been finalized.
	PollEvent() terminal.Event
}
