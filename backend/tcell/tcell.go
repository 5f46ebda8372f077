// Package tcell adapts a tcell screen to the runtime backend.
package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/terminal"
)

// Backend draws to a tcell.Screen.
type Backend struct {
	screen  tcell.Screen
	buttons tcell.ButtonMask
}

// New creates a backend on the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Screen exposes the wrapped screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.SetStyle(tcell.StyleDefault)
	b.screen.Clear()
	return nil
}

func (b *Backend) Fini() {
	b.screen.Fini()
}

func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, style)
}

// SetRow writes a run of cells starting at (startX, y). Zero runes mark
// the trailing half of a wide rune and are skipped.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		if cell.Rune == 0 {
			continue
		}
		b.screen.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
	}
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent returns the next event the runtime understands.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if converted := b.convert(ev); converted != nil {
			return converted
		}
	}
}

func (b *Backend) convert(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		return b.convertMouse(e)
	}
	return nil
}

func convertKey(e *tcell.EventKey) terminal.KeyEvent {
	mods := e.Modifiers()
	out := terminal.KeyEvent{
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
	switch e.Key() {
	case tcell.KeyRune:
		out.Key = terminal.KeyRune
		out.Rune = e.Rune()
	case tcell.KeyEnter:
		out.Key = terminal.KeyEnter
	case tcell.KeyEscape:
		out.Key = terminal.KeyEscape
	case tcell.KeyUp:
		out.Key = terminal.KeyUp
	case tcell.KeyDown:
		out.Key = terminal.KeyDown
	case tcell.KeyLeft:
		out.Key = terminal.KeyLeft
	case tcell.KeyRight:
		out.Key = terminal.KeyRight
	case tcell.KeyPgUp:
		out.Key = terminal.KeyPageUp
	case tcell.KeyPgDn:
		out.Key = terminal.KeyPageDown
	case tcell.KeyHome:
		out.Key = terminal.KeyHome
	case tcell.KeyEnd:
		out.Key = terminal.KeyEnd
	case tcell.KeyTab:
		out.Key = terminal.KeyTab
	case tcell.KeyCtrlC:
		out.Key = terminal.KeyCtrlC
	default:
		out.Key = terminal.KeyNone
	}
	return out
}

// convertMouse turns tcell's button state into press/move/release
// transitions by comparing against the previous event.
func (b *Backend) convertMouse(e *tcell.EventMouse) terminal.MouseEvent {
	x, y := e.Position()
	mods := e.Modifiers()
	out := terminal.MouseEvent{
		X:     x,
		Y:     y,
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
	buttons := e.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		out.Button = terminal.MouseWheelUp
		out.Action = terminal.MousePress
		return out
	case buttons&tcell.WheelDown != 0:
		out.Button = terminal.MouseWheelDown
		out.Action = terminal.MousePress
		return out
	}
	pressed := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := b.buttons
	b.buttons = pressed
	switch {
	case pressed != 0 && prev == 0:
		out.Action = terminal.MousePress
		out.Button = mouseButton(pressed)
	case pressed == 0 && prev != 0:
		out.Action = terminal.MouseRelease
		out.Button = mouseButton(prev)
	default:
		out.Action = terminal.MouseMove
		out.Button = mouseButton(pressed)
	}
	return out
}

func mouseButton(mask tcell.ButtonMask) terminal.MouseButton {
	switch {
	case mask&tcell.Button1 != 0:
		return terminal.MouseLeft
	case mask&tcell.Button3 != 0:
		return terminal.MouseMiddle
	case mask&tcell.Button2 != 0:
		return terminal.MouseRight
	}
	return terminal.MouseNone
}

var (
	_ backend.Backend   = (*Backend)(nil)
	_ backend.RowWriter = (*Backend)(nil)
)
