package scroll

// Sync routes native scroll events to the bar tracks and the list window.
// Both are updated inside one OnScroll call so a render never sees the
// thumb and the windowed rows at different offsets.
type Sync struct {
	region   *Region
	window   *Window
	onUpdate func(ScrollEvent)
}

// NewSync wires region and window. window may be nil for plain content.
func NewSync(region *Region, window *Window) *Sync {
	return &Sync{region: region, window: window}
}

// SetOnUpdate sets a callback run once after each routed event.
func (s *Sync) SetOnUpdate(fn func(ScrollEvent)) {
	if s == nil {
		return
	}
	s.onUpdate = fn
}

// SetWindow replaces the window that follows vertical scrolling.
func (s *Sync) SetWindow(window *Window) {
	if s == nil {
		return
	}
	s.window = window
}

// OnScroll handles a native scroll event.
func (s *Sync) OnScroll(ev ScrollEvent) {
	if s == nil {
		return
	}
	if s.region != nil {
		s.region.UpdateGeometry(ev)
		s.region.y.OnNativeScroll(ev.Top)
		s.region.x.OnNativeScroll(ev.Left)
	}
	if s.window != nil {
		s.window.OnScroll(ev.Top)
	}
	if s.onUpdate != nil {
		s.onUpdate(ev)
	}
}

// Refresh recomputes thumb geometry after a size change that left the
// scroll offsets untouched.
func (s *Sync) Refresh(ev ScrollEvent) {
	if s == nil {
		return
	}
	if s.region != nil {
		s.region.UpdateGeometry(ev)
		s.region.y.Resync(ev.Top)
		s.region.x.Resync(ev.Left)
	}
	if s.onUpdate != nil {
		s.onUpdate(ev)
	}
}
