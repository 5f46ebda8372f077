package scroll

import (
	"sync"
	"time"

	"github.com/odvcencio/furry-virtual/pointer"
	"github.com/odvcencio/furry-virtual/state"
)

// DefaultHideDelay is how long the bars stay up after the pointer leaves.
const DefaultHideDelay = 300 * time.Millisecond

// Scroller receives imperative scroll-to commands.
type Scroller interface {
	ScrollTo(o Orientation, offset float64)
}

// ScrollerFunc adapts a function into a Scroller.
type ScrollerFunc func(o Orientation, offset float64)

// ScrollTo calls f.
func (f ScrollerFunc) ScrollTo(o Orientation, offset float64) {
	if f != nil {
		f(o, offset)
	}
}

// TimerFunc runs fn after delay. The returned cancel stops a pending run.
type TimerFunc func(delay time.Duration, fn func()) (cancel func())

// AfterFunc is a TimerFunc backed by time.AfterFunc.
func AfterFunc(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// ThumbTarget names the thumb element of an axis.
func ThumbTarget(o Orientation) pointer.Target {
	return pointer.Target("thumb-" + o.String())
}

// TrackTarget names the track element of an axis.
func TrackTarget(o Orientation) pointer.Target {
	return pointer.Target("track-" + o.String())
}

// RegionConfig configures a Region.
type RegionConfig struct {
	MinThumbSize float64
	HideDelay    time.Duration
	Timer        TimerFunc
	Document     *pointer.Document
}

// PointerResult describes what a press on a track did.
type PointerResult struct {
	Handled bool
	Drag    *DragSession
	Scroll  float64
}

// Region is a scrollable area with a custom bar on each axis.
type Region struct {
	x, y      *Track
	doc       *pointer.Document
	scroller  Scroller
	hideDelay time.Duration
	timer     TimerFunc

	hover     *state.Signal[bool]
	overflowX *state.Signal[bool]
	overflowY *state.Signal[bool]
	showX     *state.Computed[bool]
	showY     *state.Computed[bool]

	mu         sync.Mutex
	cancelHide func()
	hideGen    uint64
}

// NewRegion creates a region that sends scroll commands to scroller.
func NewRegion(scroller Scroller, cfg RegionConfig) *Region {
	doc := cfg.Document
	if doc == nil {
		doc = pointer.NewDocument()
	}
	timer := cfg.Timer
	if timer == nil {
		timer = AfterFunc
	}
	delay := cfg.HideDelay
	if delay < 0 {
		delay = 0
	}
	r := &Region{
		x:         NewTrack(Horizontal),
		y:         NewTrack(Vertical),
		doc:       doc,
		scroller:  scroller,
		hideDelay: delay,
		timer:     timer,
		hover:     state.NewValue(false),
		overflowX: state.NewValue(false),
		overflowY: state.NewValue(false),
	}
	if cfg.MinThumbSize > 0 {
		r.x.SetMinThumbSize(cfg.MinThumbSize)
		r.y.SetMinThumbSize(cfg.MinThumbSize)
	}
	r.showX = state.NewComputedValue(func() bool {
		return r.hover.Get() && r.overflowX.Get()
	}, r.hover, r.overflowX)
	r.showY = state.NewComputedValue(func() bool {
		return r.hover.Get() && r.overflowY.Get()
	}, r.hover, r.overflowY)
	return r
}

// Track returns the track for an axis.
func (r *Region) Track(o Orientation) *Track {
	if r == nil {
		return nil
	}
	if o == Horizontal {
		return r.x
	}
	return r.y
}

// Document returns the document drag sessions listen on.
func (r *Region) Document() *pointer.Document {
	if r == nil {
		return nil
	}
	return r.doc
}

// SetDocument moves future drag sessions to doc. It is ignored while a
// drag is active.
func (r *Region) SetDocument(doc *pointer.Document) {
	if r == nil || doc == nil || r.Dragging() {
		return
	}
	r.doc = doc
}

// SetTimer replaces the timer used for delayed hides.
func (r *Region) SetTimer(timer TimerFunc) {
	if r == nil || timer == nil {
		return
	}
	r.stopHide()
	r.timer = timer
}

// UpdateGeometry refreshes both tracks from the sizes in ev.
func (r *Region) UpdateGeometry(ev ScrollEvent) {
	if r == nil {
		return
	}
	r.x.UpdateGeometry(ev.ClientWidth, ev.ScrollWidth)
	r.y.UpdateGeometry(ev.ClientHeight, ev.ScrollHeight)
	r.overflowX.Set(r.x.Thumb().Visible)
	r.overflowY.Set(r.y.Thumb().Visible)
}

// PointerDown handles a press at trackPos along the track of axis o.
// Pressing the thumb starts a drag; pressing elsewhere on the track jumps.
func (r *Region) PointerDown(o Orientation, trackPos float64, ev pointer.Event) PointerResult {
	if r == nil {
		return PointerResult{}
	}
	track := r.Track(o)
	if ev.Target != ThumbTarget(o) {
		scroll, ok := track.Jump(trackPos)
		if !ok {
			return PointerResult{}
		}
		r.scrollTo(o, scroll)
		return PointerResult{Handled: true, Scroll: scroll}
	}
	drag := track.BeginDrag(ev, r.doc, func(offset float64) {
		r.scrollTo(o, offset)
	})
	return PointerResult{Handled: drag != nil, Drag: drag}
}

func (r *Region) scrollTo(o Orientation, offset float64) {
	if r.scroller != nil {
		r.scroller.ScrollTo(o, offset)
	}
}

// Dragging reports whether either axis has an active drag.
func (r *Region) Dragging() bool {
	return r != nil && (r.x.Dragging() || r.y.Dragging())
}

// Enter marks the pointer as over the region and cancels a pending hide.
func (r *Region) Enter() {
	if r == nil {
		return
	}
	r.stopHide()
	r.hover.Set(true)
}

// Leave hides the bars once HideDelay has passed without a new Enter.
func (r *Region) Leave() {
	if r == nil {
		return
	}
	r.stopHide()
	if r.hideDelay <= 0 {
		r.hover.Set(false)
		return
	}
	r.mu.Lock()
	r.hideGen++
	gen := r.hideGen
	r.mu.Unlock()
	cancel := r.timer(r.hideDelay, func() {
		r.mu.Lock()
		if gen != r.hideGen || r.cancelHide == nil {
			r.mu.Unlock()
			return
		}
		r.cancelHide = nil
		r.mu.Unlock()
		r.hover.Set(false)
	})
	r.mu.Lock()
	if gen == r.hideGen {
		r.cancelHide = cancel
	}
	r.mu.Unlock()
}

// HidePending reports whether a hide is scheduled.
func (r *Region) HidePending() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelHide != nil
}

func (r *Region) stopHide() {
	r.mu.Lock()
	r.hideGen++
	cancel := r.cancelHide
	r.cancelHide = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Hovered reports whether the pointer is over the region.
func (r *Region) Hovered() state.Readable[bool] {
	if r == nil {
		return nil
	}
	return r.hover
}

// Shown reports whether the bar of axis o should be drawn.
func (r *Region) Shown(o Orientation) state.Readable[bool] {
	if r == nil {
		return nil
	}
	if o == Horizontal {
		return r.showX
	}
	return r.showY
}

// Release ends drags, cancels a pending hide and clears hover. The
// region stays usable.
func (r *Region) Release() {
	if r == nil {
		return
	}
	if r.x.drag != nil {
		r.x.drag.End()
	}
	if r.y.drag != nil {
		r.y.drag.End()
	}
	r.stopHide()
	r.hover.Set(false)
}

// Close releases the region and stops derived state.
func (r *Region) Close() {
	if r == nil {
		return
	}
	r.Release()
	r.showX.Stop()
	r.showY.Stop()
}
