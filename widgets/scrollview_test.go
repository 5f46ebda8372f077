package widgets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/pointer"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/scroll"
	"github.com/odvcencio/furry-virtual/terminal"
)

// tallContent draws one labelled row per line.
type tallContent struct {
	Base
	rows int
	msgs []runtime.MouseMsg
}

func (c *tallContent) Measure(constraints runtime.Constraints) runtime.Size {
	return runtime.Size{Width: constraints.MaxWidth, Height: c.rows}
}

func (c *tallContent) Render(ctx runtime.RenderContext) {
	for y := 0; y < c.rows; y++ {
		ctx.Buffer.SetString(0, y, fmt.Sprintf("r%d", y), backend.DefaultStyle())
	}
}

func (c *tallContent) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if m, ok := msg.(runtime.MouseMsg); ok {
		c.msgs = append(c.msgs, m)
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

type scrollFixture struct {
	view    *ScrollView
	content *tallContent
	timer   *fakeTimer
	doc     *pointer.Document
	buf     *runtime.Buffer
}

func newScrollFixture(t *testing.T) *scrollFixture {
	t.Helper()
	f := &scrollFixture{
		content: &tallContent{rows: 40},
		timer:   &fakeTimer{},
		doc:     pointer.NewDocument(),
		buf:     runtime.NewBuffer(10, 10),
	}
	cfg := DefaultScrollViewConfig()
	cfg.Timer = f.timer.after
	cfg.Document = f.doc
	f.view = NewScrollView(f.content, cfg)
	f.view.Layout(runtime.Rect{Width: 10, Height: 10})
	return f
}

func (f *scrollFixture) render() {
	f.view.Render(runtime.RenderContext{Buffer: f.buf, Bounds: runtime.Rect{Width: 10, Height: 10}})
}

func (f *scrollFixture) barColumn() string {
	var sb strings.Builder
	for y := 0; y < 10; y++ {
		sb.WriteRune(f.buf.Get(9, y).Rune)
	}
	return sb.String()
}

func press(x, y int) runtime.MouseMsg {
	return runtime.MouseMsg{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress}
}

func TestScrollViewBarsFollowHover(t *testing.T) {
	f := newScrollFixture(t)
	f.render()
	if f.view.BarVisible(scroll.Vertical) || f.buf.Get(9, 0).Rune == '#' {
		t.Fatalf("bars must stay hidden until hovered")
	}

	f.view.PointerEnter()
	f.render()
	if got := f.barColumn(); got != "###|||||||" {
		t.Fatalf("bar column = %q", got)
	}
	if !strings.HasPrefix(rowText(f.buf, 9), "r9") {
		t.Fatalf("content row 9 = %q", rowText(f.buf, 9))
	}

	f.view.PointerLeave()
	f.render()
	if got := f.barColumn(); got != "###|||||||" {
		t.Fatalf("bars must linger until the hide delay, got %q", got)
	}
	f.timer.fire()
	f.render()
	if f.buf.Get(9, 0).Rune == '#' {
		t.Fatalf("bars must hide after the delay")
	}
}

func TestScrollViewWheelScrollsContent(t *testing.T) {
	f := newScrollFixture(t)
	var tops []float64
	f.view.OnScroll(func(ev scroll.ScrollEvent) { tops = append(tops, ev.Top) })

	f.view.HandleMessage(runtime.MouseMsg{Button: terminal.MouseWheelDown, Action: terminal.MousePress})
	f.view.PointerEnter()
	f.render()
	if got := f.view.Viewport().Offset().Y; got != 3 {
		t.Fatalf("offset = %v, want 3", got)
	}
	if !strings.HasPrefix(rowText(f.buf, 0), "r3") {
		t.Fatalf("row 0 = %q, want r3", rowText(f.buf, 0))
	}
	// thumb at 3*10/40 = 0.75 spans cells 0..3
	if got := f.barColumn(); got != "####||||||" {
		t.Fatalf("bar column = %q", got)
	}
	if len(tops) != 1 || tops[0] != 3 {
		t.Fatalf("scroll events = %v", tops)
	}
}

func TestScrollViewTrackJump(t *testing.T) {
	f := newScrollFixture(t)
	f.view.PointerEnter()

	if res := f.view.HandleMessage(press(9, 8)); !res.Handled {
		t.Fatalf("track press not handled")
	}
	// thumb centred on 8.5: offset 7.25, scroll 40*7.25/10
	if got := f.view.Viewport().Offset().Y; got != 29 {
		t.Fatalf("offset = %v, want 29", got)
	}
	if f.doc.ListenerCount(pointer.Move) != 0 {
		t.Fatalf("a jump must not start a drag")
	}
	if len(f.content.msgs) != 0 {
		t.Fatalf("bar presses must not reach content")
	}
}

func TestScrollViewThumbDrag(t *testing.T) {
	f := newScrollFixture(t)
	f.view.PointerEnter()

	f.view.HandleMessage(press(9, 1))
	if !f.view.Region().Dragging() {
		t.Fatalf("expected a thumb drag")
	}
	f.view.PointerLeave()
	if f.view.Region().HidePending() {
		t.Fatalf("leaving during a drag must not schedule a hide")
	}

	f.doc.Dispatch(pointer.Move, pointer.Event{X: 20, Y: 3})
	if got := f.view.Viewport().Offset().Y; got != 8 {
		t.Fatalf("offset = %v, want 8", got)
	}
	f.doc.Dispatch(pointer.Up, pointer.Event{X: 20, Y: 3})
	if f.view.Region().Dragging() || f.doc.ListenerCount(pointer.Move) != 0 {
		t.Fatalf("release must end the drag")
	}
	if !f.view.Region().HidePending() {
		t.Fatalf("drag end outside the view must schedule a hide")
	}
	f.timer.fire()
	if f.view.BarVisible(scroll.Vertical) {
		t.Fatalf("bar should hide after the drag ended outside")
	}
}

func TestScrollViewForwardsContentClicks(t *testing.T) {
	f := newScrollFixture(t)
	f.view.ScrollTo(0, 5)
	f.view.HandleMessage(press(2, 1))
	if len(f.content.msgs) != 1 {
		t.Fatalf("content messages = %d", len(f.content.msgs))
	}
	if m := f.content.msgs[0]; m.X != 2 || m.Y != 6 {
		t.Fatalf("content coordinates = (%d,%d), want (2,6)", m.X, m.Y)
	}
}

func TestScrollViewController(t *testing.T) {
	f := newScrollFixture(t)
	f.view.ScrollToEnd()
	if got := f.view.Viewport().Offset().Y; got != 30 {
		t.Fatalf("end offset = %v, want 30", got)
	}
	f.view.PageBy(-1)
	if got := f.view.Viewport().Offset().Y; got != 20 {
		t.Fatalf("page up offset = %v, want 20", got)
	}
	f.view.HandleMessage(runtime.KeyMsg{Key: terminal.KeyHome})
	if got := f.view.Viewport().Offset().Y; got != 0 {
		t.Fatalf("home offset = %v, want 0", got)
	}
}

func TestScrollViewUnmountReleasesDrag(t *testing.T) {
	f := newScrollFixture(t)
	f.view.PointerEnter()
	f.view.HandleMessage(press(9, 0))
	f.view.Unmount()
	if f.doc.ListenerCount(pointer.Move) != 0 || f.doc.ListenerCount(pointer.Up) != 0 {
		t.Fatalf("unmount must detach drag listeners")
	}
	if f.view.Region().Hovered().Get() {
		t.Fatalf("unmount must clear hover")
	}
}
