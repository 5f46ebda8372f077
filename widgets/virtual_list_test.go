package widgets

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/pointer"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/scroll"
	"github.com/odvcencio/furry-virtual/state"
	"github.com/odvcencio/furry-virtual/terminal"
)

// twoLines renders every item as two rows.
var twoLines = RendererFunc[int](func(item, index, width int) []Line {
	style := backend.DefaultStyle()
	return []Line{
		PlainLine(fmt.Sprintf("%d-a", item), style),
		PlainLine(fmt.Sprintf("%d-b", item), style),
	}
})

func intItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

type listFixture struct {
	list *VirtualList[int]
	buf  *runtime.Buffer
	rect runtime.Rect
}

func newListFixture(t *testing.T, adapter ListAdapter[int], renderer ItemRenderer[int]) *listFixture {
	t.Helper()
	cfg := VirtualListConfig{EstimatedItemHeight: 1}
	cfg.Scroll.Timer = (&fakeTimer{}).after
	cfg.Scroll.Document = pointer.NewDocument()
	list, err := NewVirtualList(adapter, renderer, cfg)
	if err != nil {
		t.Fatalf("NewVirtualList: %v", err)
	}
	f := &listFixture{list: list, buf: runtime.NewBuffer(20, 5), rect: runtime.Rect{Width: 20, Height: 5}}
	list.Layout(f.rect)
	return f
}

func (f *listFixture) render() {
	f.list.Render(runtime.RenderContext{Buffer: f.buf, Bounds: f.rect})
}

func (f *listFixture) row(y int) string {
	return strings.TrimRight(rowText(f.buf, y), " ")
}

func TestVirtualListRequiresEstimate(t *testing.T) {
	_, err := NewVirtualList[int](NewSliceAdapter(intItems(3)), nil, VirtualListConfig{})
	if !errors.Is(err, scroll.ErrEstimatedHeight) {
		t.Fatalf("err = %v, want ErrEstimatedHeight", err)
	}
}

func TestVirtualListMaterializesWindow(t *testing.T) {
	f := newListFixture(t, NewSliceAdapter(intItems(100)), nil)
	if f.list.Window().Step() != 5 {
		t.Fatalf("step = %d, want 5", f.list.Window().Step())
	}
	if got := f.list.Table().TotalHeight(); got != 100 {
		t.Fatalf("total = %v, want 100", got)
	}
	f.render()
	for y := 0; y < 5; y++ {
		if got, want := f.row(y), fmt.Sprint(y); got != want {
			t.Fatalf("row %d = %q, want %q", y, got, want)
		}
	}
	if got := len(f.list.pending); got != 5 {
		t.Fatalf("measurements = %d, want one per materialized row", got)
	}
	if f.list.Reconcile() {
		t.Fatalf("rows matching the estimate must not count as changed")
	}
	if f.list.Window().Phase() != scroll.PhaseSteady {
		t.Fatalf("phase = %v, want steady", f.list.Window().Phase())
	}
}

func TestVirtualListReconcilesMeasuredHeights(t *testing.T) {
	f := newListFixture(t, NewSliceAdapter(intItems(100)), twoLines)
	f.render()
	if !f.list.Reconcile() {
		t.Fatalf("taller rows must be reconciled")
	}
	if got := f.list.Table().TotalHeight(); got != 105 {
		t.Fatalf("total = %v, want 105", got)
	}
	if got := f.list.View().Viewport().ContentSize().Y; got != 105 {
		t.Fatalf("content height = %v, want 105", got)
	}
	f.render()
	want := []string{"0-a", "0-b", "1-a", "1-b", "2-a"}
	for y, w := range want {
		if got := f.row(y); got != w {
			t.Fatalf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestVirtualListScrollTranslatesBlock(t *testing.T) {
	f := newListFixture(t, NewSliceAdapter(intItems(100)), twoLines)
	f.render()
	f.list.Reconcile()

	f.list.HandleMessage(runtime.MouseMsg{Button: terminal.MouseWheelDown, Action: terminal.MousePress})
	w := f.list.Window()
	if w.Start() != 1 || w.Translate() != 2 {
		t.Fatalf("start=%d translate=%v, want 1 and 2", w.Start(), w.Translate())
	}
	f.render()
	// block starts at 2-3 = -1, so row 1's first line is clipped
	if got := f.row(0); got != "1-b" {
		t.Fatalf("row 0 = %q, want 1-b", got)
	}
	if got := f.row(1); got != "2-a" {
		t.Fatalf("row 1 = %q, want 2-a", got)
	}
}

func TestVirtualListSelection(t *testing.T) {
	f := newListFixture(t, NewSliceAdapter(intItems(100)), twoLines)
	f.render()
	f.list.Reconcile()
	f.render()

	var selected []int
	f.list.OnSelect(func(index, item int) { selected = append(selected, index) })
	var activated int
	f.list.OnActivate(func(index, item int) { activated = item })

	f.list.HandleMessage(press(3, 2))
	if f.list.Selected() != 1 {
		t.Fatalf("click on row 2 selected %d, want 1", f.list.Selected())
	}
	f.list.HandleMessage(runtime.KeyMsg{Key: terminal.KeyDown})
	f.list.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnter})
	if activated != 2 {
		t.Fatalf("activated %d, want 2", activated)
	}

	f.list.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnd})
	if got := f.list.View().Viewport().Offset().Y; got != 100 {
		t.Fatalf("offset = %v, want 100", got)
	}
	if f.list.Window().Start() != 95 {
		t.Fatalf("start = %d, want 95", f.list.Window().Start())
	}
	if len(selected) != 3 || selected[2] != 99 {
		t.Fatalf("selected = %v", selected)
	}
}

func TestVirtualListFollowsSignalAdapter(t *testing.T) {
	items := state.NewSignal(intItems(3))
	f := newListFixture(t, NewSignalAdapter(items), nil)
	f.list.Mount()
	defer f.list.Unmount()

	items.Set(intItems(50))
	if got := f.list.Table().Len(); got != 50 {
		t.Fatalf("table len = %d, want 50", got)
	}
	if got := f.list.View().Viewport().ContentSize().Y; got != 50 {
		t.Fatalf("content height = %v, want 50", got)
	}

	f.list.SetSelected(40)
	items.Set(intItems(10))
	if f.list.Selected() != 9 {
		t.Fatalf("selection = %d, want clamped to 9", f.list.Selected())
	}
	if got := f.list.View().Viewport().Offset().Y; got != 5 {
		t.Fatalf("offset = %v, want clamped to 5", got)
	}
}

func TestVirtualListEmpty(t *testing.T) {
	f := newListFixture(t, NewSliceAdapter[int](nil), nil)
	f.render()
	if f.row(0) != "" || f.list.Reconcile() {
		t.Fatalf("an empty list draws nothing")
	}
	if f.list.HandleMessage(runtime.KeyMsg{Key: terminal.KeyDown}).Handled {
		t.Fatalf("keys on an empty list are unhandled")
	}
}
