package runtime

import (
	"sync"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/terminal"
)

// boxWidget is a leaf or container with fixed bounds that records
// everything that happens to it.
type boxWidget struct {
	name     string
	bounds   Rect
	children []Widget
	handle   func(Message) HandleResult
	render   func(ctx RenderContext)

	log      *[]string
	messages []Message
	entered  int
	left     int
}

func (w *boxWidget) record(event string) {
	if w.log != nil {
		*w.log = append(*w.log, w.name+":"+event)
	}
}

func (w *boxWidget) Measure(c Constraints) Size { return Size{} }
func (w *boxWidget) Layout(bounds Rect)         {}
func (w *boxWidget) Render(ctx RenderContext) {
	if w.render != nil {
		w.render(ctx)
	}
}
func (w *boxWidget) HandleMessage(msg Message) HandleResult {
	w.messages = append(w.messages, msg)
	if w.handle != nil {
		return w.handle(msg)
	}
	return Unhandled()
}
func (w *boxWidget) Bounds() Rect            { return w.bounds }
func (w *boxWidget) ChildWidgets() []Widget  { return w.children }
func (w *boxWidget) Bind(services Services)  { w.record("bind") }
func (w *boxWidget) Unbind()                 { w.record("unbind") }
func (w *boxWidget) Mount()                  { w.record("mount") }
func (w *boxWidget) Unmount()                { w.record("unmount") }
func (w *boxWidget) PointerEnter()           { w.entered++ }
func (w *boxWidget) PointerLeave()           { w.left++ }

type setCall struct {
	x, y int
	r    rune
}

// fakeBackend serves scripted events and records drawing.
type fakeBackend struct {
	mu     sync.Mutex
	width  int
	height int
	events chan terminal.Event
	sets   []setCall
	shows  int
	log    *[]string
	done   chan struct{}
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{width: w, height: h, events: make(chan terminal.Event, 16), done: make(chan struct{})}
}

func (f *fakeBackend) Init() error { return nil }
func (f *fakeBackend) Fini()       { close(f.done) }
func (f *fakeBackend) Size() (int, int) {
	return f.width, f.height
}
func (f *fakeBackend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets = append(f.sets, setCall{x: x, y: y, r: mainc})
}
func (f *fakeBackend) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
	if f.log != nil {
		*f.log = append(*f.log, "show")
	}
}
func (f *fakeBackend) HideCursor() {}
func (f *fakeBackend) PollEvent() terminal.Event {
	select {
	case ev := <-f.events:
		return ev
	case <-f.done:
		return nil
	}
}

func (f *fakeBackend) runeAt(x, y int) (rune, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sets) - 1; i >= 0; i-- {
		if f.sets[i].x == x && f.sets[i].y == y {
			return f.sets[i].r, true
		}
	}
	return 0, false
}
