package widgets

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/pointer"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/scroll"
	"github.com/odvcencio/furry-virtual/terminal"
)

// ContentPainter draws content that is already scrolled by offset into
// ctx.Bounds.
type ContentPainter interface {
	PaintContent(ctx runtime.RenderContext, offset scroll.Vec)
}

// ScrollViewConfig configures a ScrollView.
type ScrollViewConfig struct {
	Behavior   scroll.ScrollBehavior
	Vertical   scroll.BarStyle
	Horizontal scroll.BarStyle
	// MinThumbSize is the smallest thumb in cells. Zero means one cell.
	MinThumbSize float64
	// HideDelay is how long bars linger after the pointer leaves. Zero
	// means scroll.DefaultHideDelay; negative hides immediately.
	HideDelay time.Duration
	// Timer and Document override the app services, mostly for tests.
	Timer    scroll.TimerFunc
	Document *pointer.Document
	// KeyScroll lets arrow and paging keys move the viewport.
	KeyScroll bool
}

// DefaultScrollViewConfig returns the configuration NewScrollView uses
// when given a zero config.
func DefaultScrollViewConfig() ScrollViewConfig {
	horizontal := scroll.DefaultBarStyle()
	horizontal.Chars.Track = '-'
	return ScrollViewConfig{
		Behavior: scroll.ScrollBehavior{
			Vertical:   scroll.ScrollAuto,
			Horizontal: scroll.ScrollAuto,
			MouseWheel: 3,
			PageSize:   1,
		},
		Vertical:     scroll.DefaultBarStyle(),
		Horizontal:   horizontal,
		MinThumbSize: 1,
		HideDelay:    scroll.DefaultHideDelay,
		KeyScroll:    true,
	}
}

func (c ScrollViewConfig) withDefaults() ScrollViewConfig {
	def := DefaultScrollViewConfig()
	if c.Behavior == (scroll.ScrollBehavior{}) {
		c.Behavior = def.Behavior
	}
	if c.Behavior.MouseWheel <= 0 {
		c.Behavior.MouseWheel = def.Behavior.MouseWheel
	}
	if c.Vertical.Chars == (scroll.ScrollbarChars{}) {
		c.Vertical = def.Vertical
	}
	if c.Horizontal.Chars == (scroll.ScrollbarChars{}) {
		c.Horizontal = def.Horizontal
	}
	if c.MinThumbSize <= 0 {
		c.MinThumbSize = def.MinThumbSize
	}
	if c.HideDelay == 0 {
		c.HideDelay = def.HideDelay
	}
	return c
}

// ScrollView is a scrollable container with a custom scrollbar on each
// axis. The bars appear while the pointer is over the view and the axis
// overflows; pressing a track jumps and pressing a thumb drags.
type ScrollView struct {
	Component
	content  runtime.Widget
	painter  ContentPainter
	viewport *scroll.Viewport
	region   *scroll.Region
	sync     *scroll.Sync
	cfg      ScrollViewConfig
	style    backend.Style
	childBuf *runtime.Buffer

	listeners []func(scroll.ScrollEvent)
	hovered   bool
	log       zerolog.Logger
}

// NewScrollView creates a scroll view around content. Content is laid out
// at its measured size and clipped to the view.
func NewScrollView(content runtime.Widget, cfg ScrollViewConfig) *ScrollView {
	return newScrollView(content, nil, cfg)
}

func newScrollView(content runtime.Widget, painter ContentPainter, cfg ScrollViewConfig) *ScrollView {
	cfg = cfg.withDefaults()
	s := &ScrollView{
		content:  content,
		painter:  painter,
		viewport: scroll.NewViewport(),
		cfg:      cfg,
		style:    backend.DefaultStyle(),
		log:      zerolog.Nop(),
	}
	s.region = scroll.NewRegion(s.viewport, scroll.RegionConfig{
		MinThumbSize: cfg.MinThumbSize,
		HideDelay:    cfg.HideDelay,
		Timer:        cfg.Timer,
		Document:     cfg.Document,
	})
	s.sync = scroll.NewSync(s.region, nil)
	s.sync.SetOnUpdate(s.onScroll)
	s.viewport.SetOnScroll(s.sync.OnScroll)
	return s
}

// Viewport returns the native scroll element.
func (s *ScrollView) Viewport() *scroll.Viewport {
	return s.viewport
}

// Region returns the scrollbar region.
func (s *ScrollView) Region() *scroll.Region {
	return s.region
}

// Sync returns the scroll router.
func (s *ScrollView) Sync() *scroll.Sync {
	return s.sync
}

// OnScroll registers fn for every routed scroll event.
func (s *ScrollView) OnScroll(fn func(scroll.ScrollEvent)) {
	if s == nil || fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// SetContentSize sets the scrollable size and refreshes the bars.
func (s *ScrollView) SetContentSize(size scroll.Vec) {
	if s == nil {
		return
	}
	s.viewport.SetContentSize(size)
	s.Refresh()
}

// Refresh recomputes bar geometry from the current viewport state.
func (s *ScrollView) Refresh() {
	if s == nil {
		return
	}
	s.sync.Refresh(s.viewport.Event())
}

func (s *ScrollView) onScroll(ev scroll.ScrollEvent) {
	for _, fn := range s.listeners {
		fn(ev)
	}
	s.Invalidate()
}

// Bind attaches app services and routes timers and drags through them.
func (s *ScrollView) Bind(services runtime.Services) {
	s.Component.Bind(services)
	s.log = s.Logger("scrollview")
	if s.cfg.Document == nil {
		s.region.SetDocument(services.Document())
	}
	if s.cfg.Timer == nil {
		s.region.SetTimer(services.AfterFunc)
	}
}

// Mount redraws when bar visibility flips.
func (s *ScrollView) Mount() {
	s.Observe(s.region.Shown(scroll.Vertical), s.Invalidate)
	s.Observe(s.region.Shown(scroll.Horizontal), s.Invalidate)
}

// Unmount ends drags and pending hides.
func (s *ScrollView) Unmount() {
	s.Subs.Clear()
	s.hovered = false
	s.region.Release()
}

// Close releases the view for good.
func (s *ScrollView) Close() {
	s.Unmount()
	s.region.Close()
}

// Measure fills the available space.
func (s *ScrollView) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout sizes the viewport and the content.
func (s *ScrollView) Layout(bounds runtime.Rect) {
	s.Component.Layout(bounds)
	s.viewport.SetViewSize(scroll.Vec{X: float64(bounds.Width), Y: float64(bounds.Height)})
	if s.content != nil {
		size := s.content.Measure(runtime.Constraints{
			MinWidth:  bounds.Width,
			MaxWidth:  bounds.Width,
			MaxHeight: math.MaxInt32,
		})
		size.Width = max(size.Width, bounds.Width)
		size.Height = max(size.Height, 0)
		s.content.Layout(runtime.Rect{Width: size.Width, Height: size.Height})
		s.viewport.SetContentSize(scroll.Vec{X: float64(size.Width), Y: float64(size.Height)})
	}
	s.Refresh()
}

// Render draws the visible content and the bars.
func (s *ScrollView) Render(ctx runtime.RenderContext) {
	bounds := s.bounds
	if bounds.Empty() || ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', s.style)
	offset := s.viewport.Offset()
	switch {
	case s.painter != nil:
		s.painter.PaintContent(ctx.Sub(bounds), offset)
	case s.content != nil:
		s.blitContent(ctx, offset)
	}
	s.drawBar(ctx, scroll.Vertical)
	s.drawBar(ctx, scroll.Horizontal)
	s.ClearInvalidation()
}

func (s *ScrollView) blitContent(ctx runtime.RenderContext, offset scroll.Vec) {
	size := s.viewport.ContentSize()
	w, h := int(size.X), int(size.Y)
	if w <= 0 || h <= 0 {
		return
	}
	if s.childBuf == nil {
		s.childBuf = runtime.NewBuffer(w, h)
	} else {
		s.childBuf.Resize(w, h)
	}
	s.childBuf.Fill(runtime.Rect{Width: w, Height: h}, ' ', s.style)
	s.content.Render(runtime.RenderContext{
		Buffer:  s.childBuf,
		Focused: ctx.Focused,
		Bounds:  runtime.Rect{Width: w, Height: h},
	})
	ox, oy := int(offset.X), int(offset.Y)
	bounds := s.bounds
	for y := 0; y < bounds.Height; y++ {
		for x := 0; x < bounds.Width; x++ {
			if x+ox >= w || y+oy >= h {
				continue
			}
			cell := s.childBuf.Get(x+ox, y+oy)
			ctx.Buffer.Set(bounds.X+x, bounds.Y+y, cell.Rune, cell.Style)
		}
	}
}

// BarVisible reports whether the bar of axis o is drawn.
func (s *ScrollView) BarVisible(o scroll.Orientation) bool {
	if s == nil {
		return false
	}
	policy := s.cfg.Behavior.Vertical
	if o == scroll.Horizontal {
		policy = s.cfg.Behavior.Horizontal
	}
	switch policy {
	case scroll.ScrollNever:
		return false
	case scroll.ScrollAlways:
		return s.region.Track(o).TrackSize() > 0
	default:
		return s.region.Shown(o).Get()
	}
}

func (s *ScrollView) drawBar(ctx runtime.RenderContext, o scroll.Orientation) {
	if !s.BarVisible(o) {
		return
	}
	style := s.cfg.Vertical
	if o == scroll.Horizontal {
		style = s.cfg.Horizontal
	}
	thumb := s.region.Track(o).Thumb()
	start, end := -1, -1
	if thumb.Visible {
		start = int(math.Floor(thumb.Offset))
		end = max(int(math.Ceil(thumb.Offset+thumb.Size)), start+1)
	}
	b := s.bounds
	length := b.Height
	if o == scroll.Horizontal {
		length = b.Width
	}
	for i := 0; i < length; i++ {
		ch, st := style.Chars.Track, style.Track
		if i >= start && i < end {
			ch, st = style.Chars.Thumb, style.Thumb
		}
		if o == scroll.Horizontal {
			ctx.Buffer.Set(b.X+i, b.Y+b.Height-1, ch, st)
		} else {
			ctx.Buffer.Set(b.X+b.Width-1, b.Y+i, ch, st)
		}
	}
}

// barAt reports which bar, if any, covers (x, y), with the position
// along the track measured at the cell centre.
func (s *ScrollView) barAt(x, y int) (scroll.Orientation, float64, bool) {
	b := s.bounds
	if !b.Contains(x, y) {
		return 0, 0, false
	}
	if x == b.X+b.Width-1 && s.BarVisible(scroll.Vertical) {
		return scroll.Vertical, float64(y-b.Y) + 0.5, true
	}
	if y == b.Y+b.Height-1 && s.BarVisible(scroll.Horizontal) {
		return scroll.Horizontal, float64(x-b.X) + 0.5, true
	}
	return 0, 0, false
}

// HandleMessage handles wheel, bar presses and scrolling keys.
func (s *ScrollView) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch ev := msg.(type) {
	case runtime.MouseMsg:
		return s.handleMouse(ev)
	case runtime.KeyMsg:
		if s.content != nil {
			if result := s.content.HandleMessage(msg); result.Handled {
				return result
			}
		}
		if s.cfg.KeyScroll && s.handleKey(ev) {
			return runtime.Handled()
		}
	default:
		if s.content != nil {
			return s.content.HandleMessage(msg)
		}
	}
	return runtime.Unhandled()
}

func (s *ScrollView) handleMouse(ev runtime.MouseMsg) runtime.HandleResult {
	step := float64(s.cfg.Behavior.MouseWheel)
	switch ev.Button {
	case terminal.MouseWheelUp:
		step = -step
		fallthrough
	case terminal.MouseWheelDown:
		if ev.Shift {
			s.viewport.ScrollBy(step, 0)
		} else {
			s.viewport.ScrollBy(0, step)
		}
		return runtime.Handled()
	}
	if ev.Action == terminal.MousePress && ev.Button == terminal.MouseLeft {
		if o, pos, ok := s.barAt(ev.X, ev.Y); ok {
			s.pressBar(o, pos, ev)
			return runtime.Handled()
		}
	}
	if s.content != nil {
		offset := s.viewport.Offset()
		ev.X = ev.X - s.bounds.X + int(offset.X)
		ev.Y = ev.Y - s.bounds.Y + int(offset.Y)
		return s.content.HandleMessage(ev)
	}
	return runtime.Unhandled()
}

func (s *ScrollView) pressBar(o scroll.Orientation, pos float64, ev runtime.MouseMsg) {
	thumb := s.region.Track(o).Thumb()
	target := scroll.TrackTarget(o)
	if thumb.Visible && pos >= thumb.Offset && pos < thumb.Offset+max(thumb.Size, 1) {
		target = scroll.ThumbTarget(o)
	}
	res := s.region.PointerDown(o, pos, pointer.Event{X: float64(ev.X), Y: float64(ev.Y), Target: target})
	switch {
	case res.Drag != nil:
		res.Drag.OnEnd(s.dragEnded)
		s.log.Debug().Str("axis", o.String()).Float64("thumb", thumb.Offset).Msg("thumb drag started")
	case res.Handled:
		s.log.Debug().Str("axis", o.String()).Float64("scroll", res.Scroll).Msg("track jump")
	}
	s.Invalidate()
}

func (s *ScrollView) dragEnded() {
	s.log.Debug().Msg("thumb drag ended")
	if !s.hovered {
		s.region.Leave()
	}
	s.Invalidate()
}

func (s *ScrollView) handleKey(ev runtime.KeyMsg) bool {
	switch ev.Key {
	case terminal.KeyUp:
		s.ScrollBy(0, -1)
	case terminal.KeyDown:
		s.ScrollBy(0, 1)
	case terminal.KeyLeft:
		s.ScrollBy(-1, 0)
	case terminal.KeyRight:
		s.ScrollBy(1, 0)
	case terminal.KeyPageUp:
		s.PageBy(-1)
	case terminal.KeyPageDown:
		s.PageBy(1)
	case terminal.KeyHome:
		s.ScrollToStart()
	case terminal.KeyEnd:
		s.ScrollToEnd()
	default:
		return false
	}
	return true
}

// PointerEnter reveals the bars.
func (s *ScrollView) PointerEnter() {
	s.hovered = true
	s.region.Enter()
}

// PointerLeave schedules hiding the bars. A running drag keeps them up
// until it ends.
func (s *ScrollView) PointerLeave() {
	s.hovered = false
	if !s.region.Dragging() {
		s.region.Leave()
	}
}

// HitOpaque keeps hit testing out of the content, which lives in content
// coordinates.
func (s *ScrollView) HitOpaque() bool {
	return true
}

// ChildWidgets returns the content widget.
func (s *ScrollView) ChildWidgets() []runtime.Widget {
	if s == nil || s.content == nil {
		return nil
	}
	return []runtime.Widget{s.content}
}

// ScrollBy scrolls the view by delta cells.
func (s *ScrollView) ScrollBy(dx, dy int) {
	s.viewport.ScrollBy(float64(dx), float64(dy))
}

// ScrollTo scrolls to an absolute offset.
func (s *ScrollView) ScrollTo(x, y int) {
	s.viewport.SetOffset(float64(x), float64(y))
}

// PageBy scrolls by whole pages.
func (s *ScrollView) PageBy(pages int) {
	page := float64(s.bounds.Height)
	if s.cfg.Behavior.PageSize > 0 {
		page *= s.cfg.Behavior.PageSize
	}
	s.viewport.ScrollBy(0, max(page, 1)*float64(pages))
}

// ScrollToStart scrolls to the top-left.
func (s *ScrollView) ScrollToStart() {
	s.viewport.SetOffset(0, 0)
}

// ScrollToEnd scrolls to the bottom.
func (s *ScrollView) ScrollToEnd() {
	s.viewport.SetOffset(s.viewport.Offset().X, s.viewport.MaxOffset().Y)
}

var (
	_ scroll.Controller = (*ScrollView)(nil)
	_ runtime.Hoverable = (*ScrollView)(nil)
	_ runtime.HitOpaque = (*ScrollView)(nil)
)
