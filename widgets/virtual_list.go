package widgets

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/scroll"
	"github.com/odvcencio/furry-virtual/state"
	"github.com/odvcencio/furry-virtual/terminal"
)

// VirtualListConfig configures a VirtualList.
type VirtualListConfig struct {
	// Height is the container height used to size the window. Zero uses
	// the laid out height.
	Height float64
	// EstimatedItemHeight is the row height assumed before a row has been
	// painted. It is required.
	EstimatedItemHeight float64
	Scroll              ScrollViewConfig
}

type rowHit struct {
	index       int
	top, bottom int
}

// VirtualList renders only the rows around the scroll offset. Rows start
// at an estimated height and are corrected with their painted height
// once the frame reaches the terminal.
type VirtualList[T any] struct {
	Component
	adapter  ListAdapter[T]
	renderer ItemRenderer[T]
	view     *ScrollView
	table    *scroll.PositionTable
	window   *scroll.Window
	cfg      VirtualListConfig

	count      int
	height     int
	selected   int
	style      backend.Style
	pending    []scroll.Measurement
	hits       []rowHit
	queued     bool
	onSelect   func(index int, item T)
	onActivate func(index int, item T)
	log        zerolog.Logger
}

// NewVirtualList creates a list over adapter. Items are drawn with
// renderer, or with a TextRenderer when renderer is nil.
func NewVirtualList[T any](adapter ListAdapter[T], renderer ItemRenderer[T], cfg VirtualListConfig) (*VirtualList[T], error) {
	if adapter == nil {
		adapter = NewSliceAdapter[T](nil)
	}
	if renderer == nil {
		renderer = NewTextRenderer[T]()
	}
	table, err := scroll.NewPositionTable(adapter.Count(), cfg.EstimatedItemHeight)
	if err != nil {
		return nil, fmt.Errorf("virtual list: %w", err)
	}
	l := &VirtualList[T]{
		adapter:  adapter,
		renderer: renderer,
		table:    table,
		window:   scroll.NewWindow(table),
		cfg:      cfg,
		count:    adapter.Count(),
		selected: -1,
		style:    backend.DefaultStyle(),
		log:      zerolog.Nop(),
	}
	if cfg.Scroll.Behavior == (scroll.ScrollBehavior{}) {
		cfg.Scroll.Behavior = DefaultScrollViewConfig().Behavior
		cfg.Scroll.Behavior.Horizontal = scroll.ScrollNever
	}
	cfg.Scroll.KeyScroll = false
	l.view = newScrollView(nil, l, cfg.Scroll)
	l.view.Sync().SetWindow(l.window)
	if cfg.Height > 0 {
		if err := l.window.Configure(cfg.Height, cfg.EstimatedItemHeight); err != nil {
			return nil, fmt.Errorf("virtual list: %w", err)
		}
	}
	return l, nil
}

// View returns the scroll view hosting the rows.
func (l *VirtualList[T]) View() *ScrollView {
	return l.view
}

// Table returns the row position table.
func (l *VirtualList[T]) Table() *scroll.PositionTable {
	return l.table
}

// Window returns the materialized row window.
func (l *VirtualList[T]) Window() *scroll.Window {
	return l.window
}

// Selected returns the selected index, or -1.
func (l *VirtualList[T]) Selected() int {
	return l.selected
}

// SetStyle sets the row style.
func (l *VirtualList[T]) SetStyle(style backend.Style) {
	l.style = style
}

// OnSelect registers a selection callback.
func (l *VirtualList[T]) OnSelect(fn func(index int, item T)) {
	l.onSelect = fn
}

// OnActivate registers a callback for Enter on the selected row.
func (l *VirtualList[T]) OnActivate(fn func(index int, item T)) {
	l.onActivate = fn
}

// Bind attaches app services.
func (l *VirtualList[T]) Bind(services runtime.Services) {
	l.Component.Bind(services)
	l.log = l.Logger("virtuallist")
}

// Mount follows the adapter when it can notify about changes.
func (l *VirtualList[T]) Mount() {
	if sub, ok := l.adapter.(state.Subscribable); ok {
		l.Observe(sub, l.itemsChanged)
	}
}

// Unmount drops subscriptions and unreconciled measurements.
func (l *VirtualList[T]) Unmount() {
	l.Subs.Clear()
	l.pending = nil
	l.queued = false
}

func (l *VirtualList[T]) itemsChanged() {
	if l.syncCount() {
		l.Invalidate()
	}
}

// syncCount rebuilds the table when the adapter count moved.
func (l *VirtualList[T]) syncCount() bool {
	count := l.adapter.Count()
	if count == l.count {
		return false
	}
	table, err := scroll.NewPositionTable(count, l.cfg.EstimatedItemHeight)
	if err != nil {
		l.log.Error().Err(err).Msg("rebuild position table")
		return false
	}
	l.log.Debug().Int("from", l.count).Int("to", count).Msg("item count changed")
	l.count = count
	l.table = table
	l.pending = nil
	l.window.SetTable(table)
	if l.selected >= count {
		l.selected = count - 1
	}
	l.updateContentSize()
	return true
}

func (l *VirtualList[T]) updateContentSize() {
	l.view.SetContentSize(scroll.Vec{X: float64(l.bounds.Width), Y: l.table.TotalHeight()})
}

// Measure fills the available space.
func (l *VirtualList[T]) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout sizes the view. Without a configured height the window follows
// the laid out height.
func (l *VirtualList[T]) Layout(bounds runtime.Rect) {
	l.Component.Layout(bounds)
	l.syncCount()
	l.view.Layout(bounds)
	if l.cfg.Height <= 0 && bounds.Height != l.height {
		l.height = bounds.Height
		if err := l.window.Configure(float64(bounds.Height), l.cfg.EstimatedItemHeight); err == nil {
			l.window.OnScroll(l.view.Viewport().Offset().Y)
		}
	}
	l.updateContentSize()
}

// Render draws the view, which calls back into PaintContent.
func (l *VirtualList[T]) Render(ctx runtime.RenderContext) {
	l.syncCount()
	l.view.Render(ctx)
	l.ClearInvalidation()
}

func (l *VirtualList[T]) rowWidth(bounds runtime.Rect) int {
	width := bounds.Width
	if l.view.cfg.Behavior.Vertical != scroll.ScrollNever {
		width--
	}
	return max(width, 1)
}

// PaintContent draws the materialized rows at the window's translate and
// records their painted heights.
func (l *VirtualList[T]) PaintContent(ctx runtime.RenderContext, offset scroll.Vec) {
	bounds := ctx.Bounds
	l.hits = l.hits[:0]
	l.pending = l.pending[:0]
	start, end := l.window.Range(l.count)
	if start >= end {
		return
	}
	width := l.rowWidth(bounds)
	y := bounds.Y + int(math.Round(l.window.Translate()-offset.Y))
	for i := start; i < end; i++ {
		lines := l.renderer.Lines(l.adapter.Item(i), i, width)
		height := max(len(lines), 1)
		l.pending = append(l.pending, scroll.Measurement{Index: i, Height: float64(height)})
		l.hits = append(l.hits, rowHit{index: i, top: y, bottom: y + height})
		var restyle func(backend.Style) backend.Style
		if i == l.selected {
			restyle = func(s backend.Style) backend.Style { return s.Reverse(true) }
			for row := max(y, bounds.Y); row < min(y+height, bounds.Y+bounds.Height); row++ {
				ctx.Buffer.Fill(runtime.Rect{X: bounds.X, Y: row, Width: width, Height: 1}, ' ', l.style.Reverse(true))
			}
		}
		for j, line := range lines {
			row := y + j
			if row < bounds.Y || row >= bounds.Y+bounds.Height {
				continue
			}
			drawLine(ctx.Buffer, bounds.X, row, width, line, restyle)
		}
		y += height
	}
	if !l.queued {
		l.queued = true
		l.Services.AfterRender(l.afterRender)
	}
}

func (l *VirtualList[T]) afterRender() {
	l.Reconcile()
}

// Reconcile applies the heights recorded by the last paint. It reports
// whether any row changed height; a change schedules another frame.
func (l *VirtualList[T]) Reconcile() bool {
	l.queued = false
	if len(l.pending) == 0 {
		return false
	}
	measurements := append([]scroll.Measurement(nil), l.pending...)
	l.pending = l.pending[:0]
	changed := l.window.Reconcile(measurements)
	if !changed {
		return false
	}
	l.updateContentSize()
	l.log.Debug().
		Int("start", l.window.Start()).
		Float64("translate", l.window.Translate()).
		Float64("total", l.table.TotalHeight()).
		Bool("shifted_ahead", l.window.ShiftedAhead()).
		Msg("reconciled row heights")
	l.Invalidate()
	return true
}

// SetSelected selects index and scrolls it into view.
func (l *VirtualList[T]) SetSelected(index int) {
	if l.count == 0 {
		l.selected = -1
		return
	}
	index = min(max(index, 0), l.count-1)
	if index != l.selected {
		l.selected = index
		if l.onSelect != nil {
			l.onSelect(index, l.adapter.Item(index))
		}
	}
	l.ScrollToIndex(index)
	l.Invalidate()
}

// ScrollToIndex scrolls the least distance that shows row index.
func (l *VirtualList[T]) ScrollToIndex(index int) {
	row, ok := l.table.Row(index)
	if !ok {
		return
	}
	vp := l.view.Viewport()
	top := vp.Offset().Y
	view := vp.ViewSize().Y
	switch {
	case row.Top < top:
		vp.ScrollTo(scroll.Vertical, row.Top)
	case row.Bottom > top+view:
		vp.ScrollTo(scroll.Vertical, min(row.Bottom-view, row.Top))
	}
}

// HandleMessage handles selection keys and row clicks.
func (l *VirtualList[T]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch ev := msg.(type) {
	case runtime.KeyMsg:
		if l.handleKey(ev) {
			return runtime.Handled()
		}
	case runtime.MouseMsg:
		if result := l.view.HandleMessage(ev); result.Handled {
			return result
		}
		if ev.Action == terminal.MousePress && ev.Button == terminal.MouseLeft {
			if index, ok := l.rowAt(ev.Y); ok {
				l.SetSelected(index)
				return runtime.Handled()
			}
		}
	}
	return runtime.Unhandled()
}

func (l *VirtualList[T]) rowAt(y int) (int, bool) {
	if !l.bounds.Contains(l.bounds.X, y) {
		return 0, false
	}
	for _, hit := range l.hits {
		if y >= hit.top && y < hit.bottom {
			return hit.index, true
		}
	}
	return 0, false
}

func (l *VirtualList[T]) handleKey(ev runtime.KeyMsg) bool {
	if l.count == 0 {
		return false
	}
	page := max(l.window.Step(), 1)
	switch ev.Key {
	case terminal.KeyUp:
		l.SetSelected(l.selected - 1)
	case terminal.KeyDown:
		l.SetSelected(l.selected + 1)
	case terminal.KeyPageUp:
		l.SetSelected(l.selected - page)
	case terminal.KeyPageDown:
		l.SetSelected(l.selected + page)
	case terminal.KeyHome:
		l.SetSelected(0)
	case terminal.KeyEnd:
		l.SetSelected(l.count - 1)
	case terminal.KeyEnter:
		if l.selected < 0 || l.onActivate == nil {
			return false
		}
		l.onActivate(l.selected, l.adapter.Item(l.selected))
	default:
		return false
	}
	return true
}

// ChildWidgets returns the scroll view.
func (l *VirtualList[T]) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{l.view}
}

// ScrollBy scrolls by whole rows.
func (l *VirtualList[T]) ScrollBy(dx, dy int) {
	l.view.ScrollBy(dx, dy)
}

// ScrollTo scrolls to a cell offset.
func (l *VirtualList[T]) ScrollTo(x, y int) {
	l.view.ScrollTo(x, y)
}

// PageBy scrolls by pages.
func (l *VirtualList[T]) PageBy(pages int) {
	l.view.PageBy(pages)
}

// ScrollToStart scrolls to the first row.
func (l *VirtualList[T]) ScrollToStart() {
	l.view.ScrollToStart()
}

// ScrollToEnd scrolls to the last row.
func (l *VirtualList[T]) ScrollToEnd() {
	l.view.ScrollToEnd()
}

// IndexForOffset maps a content offset to a row.
func (l *VirtualList[T]) IndexForOffset(offset int) int {
	return l.table.IndexForOffset(offset)
}

// OffsetForIndex returns the top of row index.
func (l *VirtualList[T]) OffsetForIndex(index int) int {
	return l.table.OffsetForIndex(index)
}

var (
	_ runtime.Widget        = (*VirtualList[string])(nil)
	_ runtime.ChildProvider = (*VirtualList[string])(nil)
	_ scroll.Controller     = (*VirtualList[string])(nil)
	_ scroll.VirtualIndexer = (*VirtualList[string])(nil)
	_ ContentPainter        = (*VirtualList[string])(nil)
)
