package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/scroll"
	"github.com/odvcencio/furry-virtual/state"
	"github.com/odvcencio/furry-virtual/terminal"
	"github.com/odvcencio/furry-virtual/widgets"
)

// appendBatch is how many items 'a' adds.
const appendBatch = 100

var helpLines = []string{
	"up/down     select",
	"pgup/pgdn   page",
	"home/end    first/last",
	"wheel       scroll",
	"drag bar    scroll",
	"a           append items",
	"?           toggle help",
	"q/esc       quit",
}

// shell lays out the list above a one-row status line and owns the help
// overlay.
type shell struct {
	widgets.Component
	list   *widgets.VirtualList[string]
	items  *state.Signal[[]string]
	more   func(start, n int) []string
	status *state.Signal[string]
	label  *widgets.SignalLabel
	help   *runtime.LayerScope
	helpUI *helpOverlay
}

func newShell(list *widgets.VirtualList[string], items *state.Signal[[]string], more func(start, n int) []string) *shell {
	s := &shell{
		list:   list,
		items:  items,
		more:   more,
		status: state.NewValue(""),
	}
	s.label = widgets.NewSignalLabel(s.status)
	s.label.SetStyle(backend.DefaultStyle().Reverse(true))
	s.helpUI = &helpOverlay{lines: helpLines, onClose: s.closeHelp}
	list.OnSelect(func(int, string) { s.updateStatus() })
	list.View().OnScroll(func(scroll.ScrollEvent) { s.updateStatus() })
	s.updateStatus()
	return s
}

func (s *shell) Bind(services runtime.Services) {
	s.Component.Bind(services)
	if scope := services.NewLayerScope(); scope != nil {
		s.help = scope
	}
}

func (s *shell) Mount() {}

func (s *shell) Unmount() {
	s.closeHelp()
}

func (s *shell) updateStatus() {
	w := s.list.Window()
	start, end := w.Range(s.list.Table().Len())
	s.status.Set(fmt.Sprintf(" %d/%d  rows %d-%d  height %.0f  %s  ? help",
		s.list.Selected()+1, s.list.Table().Len(), start, end, s.list.Table().TotalHeight(), w.Phase()))
}

func (s *shell) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

func (s *shell) Layout(bounds runtime.Rect) {
	s.Component.Layout(bounds)
	listHeight := max(bounds.Height-1, 0)
	s.list.Layout(runtime.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: listHeight})
	s.label.Layout(runtime.Rect{X: bounds.X, Y: bounds.Y + listHeight, Width: bounds.Width, Height: min(bounds.Height, 1)})
}

func (s *shell) Render(ctx runtime.RenderContext) {
	s.list.Render(ctx)
	s.label.Render(ctx)
}

func (s *shell) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch {
	case key.Key == terminal.KeyEscape, key.Key == terminal.KeyRune && key.Rune == 'q':
		return runtime.WithCommand(runtime.Quit{})
	case key.Key == terminal.KeyRune && key.Rune == '?':
		s.toggleHelp()
		return runtime.Handled()
	case key.Key == terminal.KeyRune && key.Rune == 'a' && s.items != nil && s.more != nil:
		current := s.items.Get()
		next := append(append([]string(nil), current...), s.more(len(current), appendBatch)...)
		s.items.Set(next)
		return runtime.Handled()
	}
	return s.list.HandleMessage(msg)
}

func (s *shell) toggleHelp() {
	if s.help.Active() {
		s.closeHelp()
		return
	}
	s.help.Show(s.helpUI, true)
}

func (s *shell) closeHelp() {
	s.help.Close()
	s.Invalidate()
}

func (s *shell) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{s.list, s.label}
}

// helpOverlay is a centred key reference. Any key or click closes it.
type helpOverlay struct {
	widgets.Base
	lines   []string
	onClose func()
}

func (h *helpOverlay) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

func (h *helpOverlay) box() runtime.Rect {
	bounds := h.Bounds()
	width := 0
	for _, line := range h.lines {
		width = max(width, runewidth.StringWidth(line))
	}
	width = min(width+4, bounds.Width)
	height := min(len(h.lines)+2, bounds.Height)
	return runtime.Rect{
		X:      bounds.X + (bounds.Width-width)/2,
		Y:      bounds.Y + (bounds.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

func (h *helpOverlay) Render(ctx runtime.RenderContext) {
	box := h.box()
	if box.Empty() {
		return
	}
	style := backend.DefaultStyle()
	ctx.Buffer.Fill(box, ' ', style)
	right, bottom := box.X+box.Width-1, box.Y+box.Height-1
	for x := box.X; x <= right; x++ {
		ctx.Buffer.Set(x, box.Y, '─', style)
		ctx.Buffer.Set(x, bottom, '─', style)
	}
	for y := box.Y; y <= bottom; y++ {
		ctx.Buffer.Set(box.X, y, '│', style)
		ctx.Buffer.Set(right, y, '│', style)
	}
	ctx.Buffer.Set(box.X, box.Y, '┌', style)
	ctx.Buffer.Set(right, box.Y, '┐', style)
	ctx.Buffer.Set(box.X, bottom, '└', style)
	ctx.Buffer.Set(right, bottom, '┘', style)
	inner := ctx.Buffer.Sub(runtime.Rect{X: box.X + 2, Y: box.Y + 1, Width: box.Width - 4, Height: box.Height - 2})
	for i, line := range h.lines {
		inner.SetString(0, i, line, style)
	}
}

func (h *helpOverlay) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.KeyMsg:
	case runtime.MouseMsg:
		if m.Action != terminal.MousePress {
			return runtime.Handled()
		}
	default:
		return runtime.Unhandled()
	}
	if h.onClose != nil {
		h.onClose()
	}
	return runtime.Handled()
}
