package scroll

// Vec is a two-axis size or offset in cells.
type Vec struct {
	X, Y float64
}

// ScrollEvent reports the scroll position and sizes of a scrollable region.
type ScrollEvent struct {
	Top, Left                 float64
	ClientWidth, ClientHeight float64
	ScrollWidth, ScrollHeight float64
}

// Viewport is the scrollable element: it owns the scroll offset and
// emits a ScrollEvent whenever the offset moves.
type Viewport struct {
	offset      Vec
	contentSize Vec
	viewSize    Vec
	onScroll    func(ScrollEvent)
}

// NewViewport creates a viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetOnScroll sets the callback for offset updates.
func (v *Viewport) SetOnScroll(fn func(ScrollEvent)) {
	if v == nil {
		return
	}
	v.onScroll = fn
}

// SetContentSize updates the content size and clamps the offset.
func (v *Viewport) SetContentSize(size Vec) {
	if v == nil {
		return
	}
	v.contentSize = size
	v.SetOffset(v.offset.X, v.offset.Y)
}

// ContentSize returns the content size.
func (v *Viewport) ContentSize() Vec {
	if v == nil {
		return Vec{}
	}
	return v.contentSize
}

// SetViewSize updates the view size and clamps the offset.
func (v *Viewport) SetViewSize(size Vec) {
	if v == nil {
		return
	}
	v.viewSize = size
	v.SetOffset(v.offset.X, v.offset.Y)
}

// ViewSize returns the view size.
func (v *Viewport) ViewSize() Vec {
	if v == nil {
		return Vec{}
	}
	return v.viewSize
}

// Offset returns the current offset.
func (v *Viewport) Offset() Vec {
	if v == nil {
		return Vec{}
	}
	return v.offset
}

// SetOffset sets the scroll offset.
func (v *Viewport) SetOffset(x, y float64) {
	if v == nil {
		return
	}
	next := clampOffset(Vec{X: x, Y: y}, v.contentSize, v.viewSize)
	if next == v.offset {
		return
	}
	v.offset = next
	if v.onScroll != nil {
		v.onScroll(v.Event())
	}
}

// ScrollBy adjusts the offset.
func (v *Viewport) ScrollBy(dx, dy float64) {
	if v == nil {
		return
	}
	v.SetOffset(v.offset.X+dx, v.offset.Y+dy)
}

// ScrollTo moves one axis to an absolute offset.
func (v *Viewport) ScrollTo(o Orientation, offset float64) {
	if v == nil {
		return
	}
	if o == Horizontal {
		v.SetOffset(offset, v.offset.Y)
		return
	}
	v.SetOffset(v.offset.X, offset)
}

// MaxOffset returns the maximum scrollable offset.
func (v *Viewport) MaxOffset() Vec {
	if v == nil {
		return Vec{}
	}
	return Vec{
		X: max(v.contentSize.X-v.viewSize.X, 0),
		Y: max(v.contentSize.Y-v.viewSize.Y, 0),
	}
}

// Event snapshots the viewport as a scroll event.
func (v *Viewport) Event() ScrollEvent {
	if v == nil {
		return ScrollEvent{}
	}
	return ScrollEvent{
		Top:          v.offset.Y,
		Left:         v.offset.X,
		ClientWidth:  v.viewSize.X,
		ClientHeight: v.viewSize.Y,
		ScrollWidth:  max(v.contentSize.X, v.viewSize.X),
		ScrollHeight: max(v.contentSize.Y, v.viewSize.Y),
	}
}

func clampOffset(offset Vec, content Vec, view Vec) Vec {
	maxX := max(content.X-view.X, 0)
	maxY := max(content.Y-view.Y, 0)
	offset.X = min(max(offset.X, 0), maxX)
	offset.Y = min(max(offset.Y, 0), maxY)
	return offset
}

var _ Scroller = (*Viewport)(nil)
