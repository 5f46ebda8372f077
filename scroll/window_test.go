package scroll

import (
	"errors"
	"testing"
)

func newWindow(t *testing.T, count int, estimated, container float64) *Window {
	t.Helper()
	w := NewWindow(newTable(t, count, estimated))
	if err := w.Configure(container, estimated); err != nil {
		t.Fatalf("configure: %v", err)
	}
	return w
}

func assertTranslate(t *testing.T, w *Window) {
	t.Helper()
	want := 0.0
	if w.Start() >= 1 {
		prev, _ := w.Table().Row(w.Start() - 1)
		want = prev.Bottom
	}
	if w.Translate() != want {
		t.Fatalf("translate = %v, want %v (start %d)", w.Translate(), want, w.Start())
	}
}

func TestWindowConfigure(t *testing.T) {
	w := newWindow(t, 100, 50, 400)
	if w.Step() != 8 || w.Start() != 0 || w.End() != 8 {
		t.Fatalf("step=%d start=%d end=%d, want 8 0 8", w.Step(), w.Start(), w.End())
	}
	if w.Phase() != PhaseMeasuring {
		t.Fatalf("phase = %v, want measuring", w.Phase())
	}

	odd := newWindow(t, 100, 30, 100)
	if odd.Step() != 4 {
		t.Fatalf("step = %d, want ceil(100/30)=4", odd.Step())
	}

	if err := NewWindow(nil).Configure(400, 0); !errors.Is(err, ErrEstimatedHeight) {
		t.Fatalf("err = %v, want ErrEstimatedHeight", err)
	}
}

func TestWindowOnScroll(t *testing.T) {
	w := newWindow(t, 100, 50, 400)
	w.OnScroll(80)
	if w.Start() != 1 || w.End() != 9 {
		t.Fatalf("start=%d end=%d, want 1 9", w.Start(), w.End())
	}
	assertTranslate(t, w)
	if w.Translate() != 50 {
		t.Fatalf("translate = %v, want 50", w.Translate())
	}

	w.OnScroll(0)
	if w.Start() != 0 || w.Translate() != 0 {
		t.Fatalf("start=%d translate=%v, want 0 0", w.Start(), w.Translate())
	}
}

func TestWindowOnScrollPastEndClamps(t *testing.T) {
	w := newWindow(t, 10, 50, 400)
	w.OnScroll(10_000)
	if w.Start() != 9 {
		t.Fatalf("start = %d, want last index 9", w.Start())
	}
	start, end := w.Range(10)
	if start != 9 || end != 10 {
		t.Fatalf("range = [%d,%d), want [9,10)", start, end)
	}
	assertTranslate(t, w)
}

func TestWindowRangeClamps(t *testing.T) {
	w := newWindow(t, 5, 10, 100)
	start, end := w.Range(5)
	if start != 0 || end != 5 {
		t.Fatalf("range = [%d,%d), want [0,5)", start, end)
	}
	if s, e := w.Range(0); s != 0 || e != 0 {
		t.Fatalf("empty range = [%d,%d)", s, e)
	}
}

func TestWindowReconcile(t *testing.T) {
	w := newWindow(t, 20, 10, 40)
	w.OnScroll(35)
	if w.Start() != 3 {
		t.Fatalf("start = %d, want 3", w.Start())
	}

	changed := w.Reconcile([]Measurement{{Index: 4, Height: 20}, {Index: 3, Height: 10}})
	if !changed {
		t.Fatalf("expected reconcile to report a change")
	}
	if w.ShiftedAhead() {
		t.Fatalf("no correction happened above the window")
	}
	assertTranslate(t, w)
	if w.Phase() != PhaseSteady {
		t.Fatalf("phase = %v, want steady", w.Phase())
	}

	w.Reconcile([]Measurement{{Index: 0, Height: 14}})
	if !w.ShiftedAhead() {
		t.Fatalf("expected correction above the window to be flagged")
	}
	assertTranslate(t, w)
	if w.Translate() != 34 {
		t.Fatalf("translate = %v, want 34", w.Translate())
	}

	if w.Reconcile([]Measurement{{Index: 0, Height: 14}}) {
		t.Fatalf("repeat measurement should not change anything")
	}
	if w.Table().TotalHeight() != 214 {
		t.Fatalf("total = %v, want 214", w.Table().TotalHeight())
	}
}

func TestWindowSetTableReappliesOffset(t *testing.T) {
	w := newWindow(t, 20, 10, 40)
	w.OnScroll(95)
	w.SetTable(newTable(t, 20, 5))
	if w.Start() != 19 {
		t.Fatalf("start = %d, want 19", w.Start())
	}
	assertTranslate(t, w)
}
