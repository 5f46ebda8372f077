// Package terminal defines backend-neutral input events.
package terminal

// Key identifies a non-rune key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyTab
	KeyCtrlC
)

// Event is any input event produced by a backend.
type Event interface {
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) isEvent() {}

// MouseButton identifies the buttons held or scrolled.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// MouseEvent is a mouse press, release or motion.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) isEvent() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// PasteEvent carries bracketed paste text.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}
