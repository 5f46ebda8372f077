package scroll

import (
	"fmt"
	"math"
)

// Phase describes where a window is in its lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseMeasuring
	PhaseSteady
)

func (p Phase) String() string {
	switch p {
	case PhaseMeasuring:
		return "measuring"
	case PhaseSteady:
		return "steady"
	default:
		return "uninitialized"
	}
}

// Window selects which rows of a PositionTable are materialized for a
// scroll offset and where the materialized block is placed.
type Window struct {
	table     *PositionTable
	step      int
	start     int
	end       int
	translate float64
	offset    float64
	phase     Phase
	// corrections before start seen by the last Reconcile
	shiftedAhead bool
}

// NewWindow creates a window over table.
func NewWindow(table *PositionTable) *Window {
	return &Window{table: table}
}

// Configure sizes the window for a container of containerHeight.
func (w *Window) Configure(containerHeight, estimatedHeight float64) error {
	if w == nil {
		return nil
	}
	if math.IsNaN(estimatedHeight) || estimatedHeight <= 0 {
		return fmt.Errorf("%w: got %v", ErrEstimatedHeight, estimatedHeight)
	}
	if containerHeight < 0 {
		containerHeight = 0
	}
	w.step = int(math.Ceil(containerHeight / estimatedHeight))
	w.start = 0
	w.end = w.step
	w.offset = 0
	w.translate = 0
	w.phase = PhaseMeasuring
	return nil
}

// SetTable swaps the table after a rebuild and re-applies the last offset.
func (w *Window) SetTable(table *PositionTable) {
	if w == nil {
		return
	}
	w.table = table
	if w.phase == PhaseUninitialized {
		return
	}
	w.OnScroll(w.offset)
}

// Table returns the current position table.
func (w *Window) Table() *PositionTable {
	if w == nil {
		return nil
	}
	return w.table
}

// OnScroll moves the window to the row containing offset.
func (w *Window) OnScroll(offset float64) {
	if w == nil {
		return
	}
	if offset < 0 {
		offset = 0
	}
	w.offset = offset
	start, ok := w.table.Locate(offset)
	if !ok {
		start = max(w.table.Len()-1, 0)
	}
	w.start = start
	w.end = start + w.step
	w.UpdateTranslate()
}

// UpdateTranslate aligns the materialized block with the top of its first row.
func (w *Window) UpdateTranslate() {
	if w == nil {
		return
	}
	w.translate = 0
	if w.start < 1 {
		return
	}
	if prev, ok := w.table.Row(w.start - 1); ok {
		w.translate = prev.Bottom
	}
}

// Reconcile applies post-paint measurements and realigns the block.
// It reports whether any row changed height.
func (w *Window) Reconcile(measurements []Measurement) bool {
	if w == nil {
		return false
	}
	w.shiftedAhead = false
	for _, m := range measurements {
		if m.Index >= w.start {
			continue
		}
		if row, ok := w.table.Row(m.Index); ok && row.Height != m.Height {
			w.shiftedAhead = true
			break
		}
	}
	changed := w.table.CorrectAll(measurements) > 0
	w.UpdateTranslate()
	if w.phase == PhaseMeasuring {
		w.phase = PhaseSteady
	}
	return changed
}

// ShiftedAhead reports whether the last Reconcile corrected rows above
// the window, which moves the block without any scroll.
func (w *Window) ShiftedAhead() bool {
	if w == nil {
		return false
	}
	return w.shiftedAhead
}

// Start returns the first materialized index.
func (w *Window) Start() int {
	if w == nil {
		return 0
	}
	return w.start
}

// End returns the exclusive end index before clamping.
func (w *Window) End() int {
	if w == nil {
		return 0
	}
	return w.end
}

// Step returns the number of rows materialized per window.
func (w *Window) Step() int {
	if w == nil {
		return 0
	}
	return w.step
}

// Translate returns the offset of the materialized block.
func (w *Window) Translate() float64 {
	if w == nil {
		return 0
	}
	return w.translate
}

// Offset returns the last scroll offset seen.
func (w *Window) Offset() float64 {
	if w == nil {
		return 0
	}
	return w.offset
}

// Phase returns the lifecycle phase.
func (w *Window) Phase() Phase {
	if w == nil {
		return PhaseUninitialized
	}
	return w.phase
}

// Range returns the materialized indices clamped to count rows.
func (w *Window) Range(count int) (start, end int) {
	if w == nil || count <= 0 {
		return 0, 0
	}
	start = w.start
	end = w.end
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}
	if end < start {
		end = start
	}
	return start, end
}
