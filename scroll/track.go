package scroll

import (
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-virtual/pointer"
)

// DefaultMinThumbSize is the smallest thumb length a track draws.
const DefaultMinThumbSize = 20.0

// ThumbState is the rendered geometry of a thumb along its track.
type ThumbState struct {
	Size    float64
	Offset  float64
	Visible bool
}

// Track computes thumb geometry for one scroll axis.
type Track struct {
	orientation Orientation
	minThumb    float64
	trackSize   float64
	contentSize float64
	thumb       ThumbState
	lastScroll  float64
	drag        *DragSession
}

// NewTrack creates a track for the given orientation.
func NewTrack(orientation Orientation) *Track {
	return &Track{orientation: orientation, minThumb: DefaultMinThumbSize}
}

// Orientation returns the axis of the track.
func (t *Track) Orientation() Orientation {
	if t == nil {
		return Vertical
	}
	return t.orientation
}

// SetMinThumbSize overrides the minimum thumb length.
func (t *Track) SetMinThumbSize(size float64) {
	if t == nil || size < 0 {
		return
	}
	t.minThumb = size
	t.UpdateGeometry(t.trackSize, t.contentSize)
}

// MinThumbSize returns the minimum thumb length.
func (t *Track) MinThumbSize() float64 {
	if t == nil {
		return 0
	}
	return t.minThumb
}

// Thumb returns the current thumb geometry.
func (t *Track) Thumb() ThumbState {
	if t == nil {
		return ThumbState{}
	}
	return t.thumb
}

// TrackSize returns the visible length of the axis.
func (t *Track) TrackSize() float64 {
	if t == nil {
		return 0
	}
	return t.trackSize
}

// ContentSize returns the scrollable length of the axis.
func (t *Track) ContentSize() float64 {
	if t == nil {
		return 0
	}
	return t.contentSize
}

// UpdateGeometry recomputes thumb size and overflow for new sizes.
func (t *Track) UpdateGeometry(viewport, content float64) {
	if t == nil {
		return
	}
	t.trackSize = viewport
	t.contentSize = content
	if viewport <= 0 || content <= 0 {
		t.thumb.Visible = false
		t.thumb.Size = 0
		t.thumb.Offset = 0
		return
	}
	t.thumb.Visible = viewport < content
	t.thumb.Size = max(viewport*viewport/content, t.minThumb)
	t.thumb.Offset = t.clamp(t.thumb.Offset)
}

// ScrollFor maps a thumb offset to a content scroll offset.
func (t *Track) ScrollFor(offset float64) float64 {
	if t == nil || t.trackSize <= 0 {
		return 0
	}
	return t.contentSize * offset / t.trackSize
}

// Jump centers the thumb on a track position and returns the scroll
// offset to apply. It reports false when the axis cannot scroll.
func (t *Track) Jump(pos float64) (float64, bool) {
	if t == nil || t.trackSize <= 0 || t.contentSize <= 0 {
		return 0, false
	}
	t.thumb.Offset = t.clamp(pos - t.thumb.Size/2)
	return t.ScrollFor(t.thumb.Offset), true
}

// OnNativeScroll projects a content scroll offset onto the track.
// Offsets equal to the previously observed one are ignored.
func (t *Track) OnNativeScroll(scroll float64) bool {
	if t == nil || scroll == t.lastScroll {
		return false
	}
	t.lastScroll = scroll
	t.project(scroll)
	return true
}

// Resync re-projects scroll even if it has been observed before.
// Used when the content size changed under an unchanged offset.
func (t *Track) Resync(scroll float64) {
	if t == nil {
		return
	}
	t.lastScroll = scroll
	t.project(scroll)
}

func (t *Track) project(scroll float64) {
	if t.contentSize <= 0 {
		t.thumb.Offset = 0
		return
	}
	t.thumb.Offset = t.clamp(scroll * t.trackSize / t.contentSize)
}

// Dragging reports whether a drag session is active.
func (t *Track) Dragging() bool {
	return t != nil && t.drag != nil
}

func (t *Track) clamp(offset float64) float64 {
	limit := t.trackSize - t.thumb.Size
	if offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (t *Track) axis(ev pointer.Event) float64 {
	if t.orientation == Horizontal {
		return ev.X
	}
	return ev.Y
}

// DragSession follows the pointer after the thumb was pressed.
type DragSession struct {
	track        *Track
	doc          *pointer.Document
	moveID       ulid.ULID
	upID         ulid.ULID
	startOffset  float64
	startPointer float64
	allowSelect  func()
	scrollTo     func(float64)
	onEnd        func()
	ended        bool
}

// BeginDrag starts a drag at ev. Move and release are tracked through doc
// until the pointer is released; scrollTo receives every new scroll offset.
func (t *Track) BeginDrag(ev pointer.Event, doc *pointer.Document, scrollTo func(float64)) *DragSession {
	if t == nil || doc == nil {
		return nil
	}
	if t.drag != nil {
		t.drag.End()
	}
	s := &DragSession{
		track:        t,
		doc:          doc,
		startOffset:  t.thumb.Offset,
		startPointer: t.axis(ev),
		scrollTo:     scrollTo,
	}
	s.moveID = doc.AddListener(pointer.Move, s.move)
	s.upID = doc.AddListener(pointer.Up, s.release)
	s.allowSelect = doc.SuppressSelection()
	t.drag = s
	return s
}

// OnEnd registers fn to run once when the session ends.
func (s *DragSession) OnEnd(fn func()) {
	if s == nil {
		return
	}
	s.onEnd = fn
}

// Ended reports whether the session has released its listeners.
func (s *DragSession) Ended() bool {
	return s == nil || s.ended
}

func (s *DragSession) move(ev pointer.Event) {
	if s.ended {
		return
	}
	t := s.track
	t.thumb.Offset = t.clamp(s.startOffset + (t.axis(ev) - s.startPointer))
	if s.scrollTo != nil {
		s.scrollTo(t.ScrollFor(t.thumb.Offset))
	}
}

func (s *DragSession) release(pointer.Event) {
	s.End()
}

// End detaches the session listeners and releases its hold on text
// selection. It is safe to call more than once.
func (s *DragSession) End() {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	s.doc.RemoveListener(pointer.Move, s.moveID)
	s.doc.RemoveListener(pointer.Up, s.upID)
	s.allowSelect()
	if s.track.drag == s {
		s.track.drag = nil
	}
	if s.onEnd != nil {
		s.onEnd()
	}
}
