package scroll

import "testing"

func TestSyncRoutesScrollToTracksAndWindow(t *testing.T) {
	table := newTable(t, 100, 50)
	window := NewWindow(table)
	if err := window.Configure(400, 50); err != nil {
		t.Fatalf("configure: %v", err)
	}
	viewport := NewViewport()
	region := NewRegion(viewport, RegionConfig{})
	sync := NewSync(region, window)

	updates := 0
	sync.SetOnUpdate(func(ev ScrollEvent) {
		updates++
		thumb := region.Track(Vertical).Thumb()
		want := ev.Top * ev.ClientHeight / ev.ScrollHeight
		if thumb.Offset != want {
			t.Fatalf("thumb offset %v out of step with top %v", thumb.Offset, ev.Top)
		}
		if row, _ := table.Row(window.Start()); row.Bottom <= ev.Top {
			t.Fatalf("window start %d out of step with top %v", window.Start(), ev.Top)
		}
	})
	viewport.SetOnScroll(sync.OnScroll)
	viewport.SetViewSize(Vec{X: 80, Y: 400})
	viewport.SetContentSize(Vec{X: 80, Y: table.TotalHeight()})
	sync.Refresh(viewport.Event())

	viewport.ScrollTo(Vertical, 80)
	if window.Start() != 1 || window.End() != 9 {
		t.Fatalf("window = [%d,%d), want [1,9)", window.Start(), window.End())
	}
	if updates != 2 {
		t.Fatalf("updates = %d, want 2", updates)
	}
}

func TestSyncDragDrivesViewport(t *testing.T) {
	table := newTable(t, 64, 16)
	window := NewWindow(table)
	window.Configure(256, 16)
	viewport := NewViewport()
	region := NewRegion(viewport, RegionConfig{})
	sync := NewSync(region, window)
	viewport.SetOnScroll(sync.OnScroll)
	viewport.SetViewSize(Vec{X: 10, Y: 256})
	viewport.SetContentSize(Vec{X: 10, Y: table.TotalHeight()})
	sync.Refresh(viewport.Event())

	region.PointerDown(Vertical, 0, dragAt(0))
	region.Document().Dispatch(pointerMove, dragAt(32))
	region.Document().Dispatch(pointerUp, dragAt(32))

	if got := viewport.Offset().Y; got != 128 {
		t.Fatalf("viewport top = %v, want 128", got)
	}
	if got := region.Track(Vertical).Thumb().Offset; got != 32 {
		t.Fatalf("thumb offset = %v, want 32", got)
	}
	if window.Start() != 8 {
		t.Fatalf("window start = %d, want 8", window.Start())
	}
}
