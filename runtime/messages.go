package runtime

import (
	"time"

	"github.com/odvcencio/furry-virtual/terminal"
)

// Message represents an event flowing into the UI loop.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// IsWheel reports whether the event is a wheel step.
func (m MouseMsg) IsWheel() bool {
	return m.Button == terminal.MouseWheelUp || m.Button == terminal.MouseWheelDown
}

// TickMsg is sent on each frame tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QueueFlushMsg triggers a state queue flush in the update loop.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg requests a render pass without forcing a full redraw.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// CallMsg runs Fn on the loop goroutine. Timers use it so callbacks
// never race with rendering.
type CallMsg struct {
	Fn func()
}

func (CallMsg) isMessage() {}
