package scroll

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrEstimatedHeight reports a missing or non-positive estimated row height.
var ErrEstimatedHeight = errors.New("estimated item height must be positive")

// Row is the layout box for one logical list row.
type Row struct {
	Index  int
	Top    float64
	Height float64
	Bottom float64
}

// Measurement is a rendered height reported for a row after a paint.
type Measurement struct {
	Index  int
	Height float64
}

// PositionTable tracks estimated and measured row positions.
// Rows stay contiguous: row[0].Top is 0 and every row starts where the
// previous one ends.
type PositionTable struct {
	rows      []Row
	estimated float64
	total     float64
}

// NewPositionTable builds itemCount rows of estimatedHeight each.
func NewPositionTable(itemCount int, estimatedHeight float64) (*PositionTable, error) {
	if math.IsNaN(estimatedHeight) || estimatedHeight <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrEstimatedHeight, estimatedHeight)
	}
	if itemCount < 0 {
		return nil, fmt.Errorf("item count must be >= 0, got %d", itemCount)
	}
	rows := make([]Row, itemCount)
	for i := range rows {
		rows[i] = Row{
			Index:  i,
			Top:    estimatedHeight * float64(i),
			Height: estimatedHeight,
			Bottom: estimatedHeight * float64(i+1),
		}
	}
	return &PositionTable{
		rows:      rows,
		estimated: estimatedHeight,
		total:     estimatedHeight * float64(itemCount),
	}, nil
}

// Len returns the number of rows.
func (p *PositionTable) Len() int {
	if p == nil {
		return 0
	}
	return len(p.rows)
}

// EstimatedHeight returns the height new rows were built with.
func (p *PositionTable) EstimatedHeight() float64 {
	if p == nil {
		return 0
	}
	return p.estimated
}

// TotalHeight returns the bottom edge of the last row.
func (p *PositionTable) TotalHeight() float64 {
	if p == nil {
		return 0
	}
	return p.total
}

// Row returns the row at index.
func (p *PositionTable) Row(index int) (Row, bool) {
	if p == nil || index < 0 || index >= len(p.rows) {
		return Row{}, false
	}
	return p.rows[index], true
}

// Correct replaces the stored height of a row with a measured one and
// shifts every following row. It reports whether anything changed.
func (p *PositionTable) Correct(index int, measured float64) bool {
	if p == nil || index < 0 || index >= len(p.rows) {
		return false
	}
	if math.IsNaN(measured) || measured < 0 {
		return false
	}
	diff := p.rows[index].Height - measured
	if diff == 0 {
		return false
	}
	p.rows[index].Height = measured
	p.rows[index].Bottom -= diff
	for j := index + 1; j < len(p.rows); j++ {
		p.rows[j].Top = p.rows[j-1].Bottom
		p.rows[j].Bottom -= diff
	}
	p.total = p.rows[len(p.rows)-1].Bottom
	return true
}

// CorrectAll applies measurements in ascending index order and returns the
// number of rows whose height changed.
func (p *PositionTable) CorrectAll(measurements []Measurement) int {
	if p == nil || len(measurements) == 0 {
		return 0
	}
	ordered := make([]Measurement, len(measurements))
	copy(ordered, measurements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})
	changed := 0
	for _, m := range ordered {
		if p.Correct(m.Index, m.Height) {
			changed++
		}
	}
	return changed
}

// Locate returns the first row whose bottom lies past offset.
// It returns false when offset is at or beyond the total height.
func (p *PositionTable) Locate(offset float64) (int, bool) {
	if p == nil || len(p.rows) == 0 {
		return 0, false
	}
	if offset >= p.total {
		return 0, false
	}
	index := sort.Search(len(p.rows), func(i int) bool {
		return p.rows[i].Bottom > offset
	})
	if index >= len(p.rows) {
		return 0, false
	}
	return index, true
}

// IndexForOffset maps an offset to a row index, clamping past the end.
func (p *PositionTable) IndexForOffset(offset int) int {
	if p == nil || len(p.rows) == 0 {
		return 0
	}
	if index, ok := p.Locate(float64(offset)); ok {
		return index
	}
	if offset < 0 {
		return 0
	}
	return len(p.rows) - 1
}

// OffsetForIndex returns the top edge of a row, clamping the index.
func (p *PositionTable) OffsetForIndex(index int) int {
	if p == nil || len(p.rows) == 0 || index <= 0 {
		return 0
	}
	if index >= len(p.rows) {
		index = len(p.rows) - 1
	}
	return int(p.rows[index].Top)
}

var _ VirtualIndexer = (*PositionTable)(nil)
