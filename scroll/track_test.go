package scroll

import (
	"testing"

	"github.com/odvcencio/furry-virtual/pointer"
)

func TestTrackGeometry(t *testing.T) {
	track := NewTrack(Vertical)
	track.UpdateGeometry(400, 1600)
	thumb := track.Thumb()
	if !thumb.Visible || thumb.Size != 100 {
		t.Fatalf("thumb = %+v, want visible size 100", thumb)
	}

	track.UpdateGeometry(400, 100_000)
	if got := track.Thumb().Size; got != DefaultMinThumbSize {
		t.Fatalf("size = %v, want min %v", got, DefaultMinThumbSize)
	}

	track.UpdateGeometry(400, 400)
	if track.Thumb().Visible {
		t.Fatalf("content equal to viewport must not overflow")
	}
}

func TestTrackGeometryDegenerateSizes(t *testing.T) {
	track := NewTrack(Horizontal)
	for _, sizes := range [][2]float64{{0, 100}, {100, 0}, {-5, 100}, {100, -1}} {
		track.UpdateGeometry(sizes[0], sizes[1])
		thumb := track.Thumb()
		if thumb.Visible || thumb.Size != 0 {
			t.Fatalf("sizes %v: thumb = %+v, want hidden", sizes, thumb)
		}
	}
	if _, ok := track.Jump(10); ok {
		t.Fatalf("jump on a degenerate track should do nothing")
	}
}

func TestTrackThumbSizeMonotonic(t *testing.T) {
	track := NewTrack(Vertical)
	prev := -1.0
	for content := 401.0; content < 200_000; content *= 1.7 {
		track.UpdateGeometry(400, content)
		size := track.Thumb().Size
		if prev >= 0 && size > prev {
			t.Fatalf("thumb grew from %v to %v as content grew to %v", prev, size, content)
		}
		if size < DefaultMinThumbSize {
			t.Fatalf("thumb %v below minimum", size)
		}
		prev = size
	}
}

func TestTrackJump(t *testing.T) {
	track := NewTrack(Vertical)
	track.UpdateGeometry(400, 1600)

	scroll, ok := track.Jump(250)
	if !ok {
		t.Fatalf("expected jump")
	}
	if got := track.Thumb().Offset; got != 200 {
		t.Fatalf("offset = %v, want 200", got)
	}
	if scroll != 800 {
		t.Fatalf("scroll = %v, want 800", scroll)
	}

	track.Jump(5)
	if got := track.Thumb().Offset; got != 0 {
		t.Fatalf("offset = %v, want clamp to 0", got)
	}
	track.Jump(399)
	if got := track.Thumb().Offset; got != 300 {
		t.Fatalf("offset = %v, want clamp to 300", got)
	}
}

func TestTrackOnNativeScroll(t *testing.T) {
	track := NewTrack(Vertical)
	track.UpdateGeometry(400, 1600)

	if !track.OnNativeScroll(800) {
		t.Fatalf("expected first scroll to update")
	}
	if got := track.Thumb().Offset; got != 200 {
		t.Fatalf("offset = %v, want 200", got)
	}
	if track.OnNativeScroll(800) {
		t.Fatalf("repeated offset must not rewrite the thumb")
	}

	track.UpdateGeometry(400, 3200)
	track.Resync(800)
	if got := track.Thumb().Offset; got != 100 {
		t.Fatalf("offset after resync = %v, want 100", got)
	}
}

func TestTrackNativeScrollClampsToTrackEnd(t *testing.T) {
	track := NewTrack(Vertical)
	track.UpdateGeometry(100, 10000)
	if got := track.Thumb().Size; got != DefaultMinThumbSize {
		t.Fatalf("size = %v, want %v", got, DefaultMinThumbSize)
	}

	track.OnNativeScroll(9900)
	if got := track.Thumb().Offset; got != 80 {
		t.Fatalf("offset = %v, want 80", got)
	}

	doc := pointer.NewDocument()
	track.BeginDrag(dragAt(90), doc, nil)
	doc.Dispatch(pointer.Move, dragAt(85))
	if got := track.Thumb().Offset; got != 75 {
		t.Fatalf("offset after drag = %v, want 75", got)
	}
}

func TestTrackDrag(t *testing.T) {
	doc := pointer.NewDocument()
	track := NewTrack(Vertical)
	track.UpdateGeometry(400, 1600)
	track.OnNativeScroll(400)

	var scrolls []float64
	session := track.BeginDrag(pointer.Event{X: 3, Y: 120}, doc, func(offset float64) {
		scrolls = append(scrolls, offset)
	})
	if !track.Dragging() {
		t.Fatalf("expected drag to be active")
	}
	if doc.ListenerCount(pointer.Move) != 1 || doc.ListenerCount(pointer.Up) != 1 {
		t.Fatalf("expected one move and one up listener")
	}
	if doc.SelectionAllowed() {
		t.Fatalf("selection must be suppressed during a drag")
	}

	doc.Dispatch(pointer.Move, pointer.Event{X: 90, Y: 170})
	if got := track.Thumb().Offset; got != 150 {
		t.Fatalf("offset = %v, want 150", got)
	}
	doc.Dispatch(pointer.Move, pointer.Event{Y: 10_000})
	if got := track.Thumb().Offset; got != 300 {
		t.Fatalf("offset = %v, want clamp 300", got)
	}
	doc.Dispatch(pointer.Move, pointer.Event{Y: -10_000})
	if got := track.Thumb().Offset; got != 0 {
		t.Fatalf("offset = %v, want clamp 0", got)
	}
	if len(scrolls) != 3 || scrolls[0] != 600 || scrolls[1] != 1200 || scrolls[2] != 0 {
		t.Fatalf("scrolls = %v", scrolls)
	}

	doc.Dispatch(pointer.Up, pointer.Event{X: -50, Y: -50})
	if !session.Ended() || track.Dragging() {
		t.Fatalf("expected release to end the drag")
	}
	if doc.ListenerCount(pointer.Move) != 0 || doc.ListenerCount(pointer.Up) != 0 {
		t.Fatalf("expected listeners detached")
	}
	doc.Dispatch(pointer.Move, pointer.Event{Y: 200})
	if len(scrolls) != 3 {
		t.Fatalf("moves after release must be ignored")
	}
}

func TestTrackDragRestoresPriorSelectGuard(t *testing.T) {
	doc := pointer.NewDocument()
	guardCalls := 0
	prior := func() bool {
		guardCalls++
		return true
	}
	doc.SetSelectStart(prior)

	track := NewTrack(Horizontal)
	track.UpdateGeometry(100, 400)
	session := track.BeginDrag(pointer.Event{X: 10}, doc, nil)
	doc.Dispatch(pointer.Move, pointer.Event{X: 20})
	if got := track.Thumb().Offset; got != 10 {
		t.Fatalf("horizontal drag offset = %v, want 10", got)
	}
	session.End()
	session.End()

	if !doc.SelectionAllowed() || guardCalls != 1 {
		t.Fatalf("expected the prior guard to be restored, calls=%d", guardCalls)
	}
}

func TestTrackDragRoundTrip(t *testing.T) {
	doc := pointer.NewDocument()
	track := NewTrack(Vertical)
	track.UpdateGeometry(256, 1024)

	var last float64
	track.BeginDrag(pointer.Event{Y: 10}, doc, func(offset float64) { last = offset })
	doc.Dispatch(pointer.Move, pointer.Event{Y: 74})
	dragOffset := track.Thumb().Offset
	doc.Dispatch(pointer.Up, pointer.Event{})

	other := NewTrack(Vertical)
	other.UpdateGeometry(256, 1024)
	other.OnNativeScroll(last)
	if other.Thumb().Offset != dragOffset {
		t.Fatalf("scroll path offset %v differs from drag offset %v", other.Thumb().Offset, dragOffset)
	}
	track.OnNativeScroll(last)
	if track.Thumb().Offset != dragOffset {
		t.Fatalf("native scroll moved the thumb from %v to %v", dragOffset, track.Thumb().Offset)
	}
}

func TestTrackSecondDragReplacesFirst(t *testing.T) {
	doc := pointer.NewDocument()
	track := NewTrack(Vertical)
	track.UpdateGeometry(100, 1000)

	first := track.BeginDrag(pointer.Event{Y: 1}, doc, nil)
	track.BeginDrag(pointer.Event{Y: 2}, doc, nil)
	if !first.Ended() {
		t.Fatalf("expected first session to end")
	}
	if got := doc.ListenerCount(pointer.Move); got != 1 {
		t.Fatalf("move listeners = %d, want 1", got)
	}
}
