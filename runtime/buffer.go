package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-virtual/backend"
)

// Cell represents a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is the cell grid widgets render into before it is flushed to
// the backend. Changed cells are stamped with the current generation so
// a flush only touches what moved since the last ClearDirty.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	stamps     []uint32
	gen        uint32
	all        bool
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.alloc(max(w, 0), max(h, 0))
	return b
}

func (b *Buffer) alloc(w, h int) {
	b.width = w
	b.height = h
	b.cells = make([]Cell, w*h)
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	b.stamps = make([]uint32, w*h)
	b.gen = 1
	b.MarkAllDirty()
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize reallocates the grid. The whole buffer is dirty afterwards.
func (b *Buffer) Resize(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	b.alloc(max(w, 0), max(h, 0))
}

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at (x, y). Out of bounds writes are dropped.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.mark(x, y, idx)
}

// SetString writes s starting at (x, y), advancing by each rune's cell
// width. It returns the number of columns consumed.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(x+col, y, r, style)
		for i := 1; i < w; i++ {
			b.Set(x+col+i, y, 0, style)
		}
		col += w
	}
	return col
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	clip := r.Intersection(Rect{Width: b.width, Height: b.height})
	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		for x := clip.X; x < clip.X+clip.Width; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// ClearRect blanks a region with the default style.
func (b *Buffer) ClearRect(r Rect) {
	b.Fill(r, ' ', backend.DefaultStyle())
}

func (b *Buffer) mark(x, y, idx int) {
	if b.all || b.stamps[idx] == b.gen {
		return
	}
	b.stamps[idx] = b.gen
	b.dirtyCount++
	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	x0 := min(b.dirtyRect.X, x)
	y0 := min(b.dirtyRect.Y, y)
	x1 := max(b.dirtyRect.X+b.dirtyRect.Width, x+1)
	y1 := max(b.dirtyRect.Y+b.dirtyRect.Height, y+1)
	b.dirtyRect = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	b.all = true
	b.dirtyCount = b.width * b.height
	b.dirtyRect = Rect{Width: b.width, Height: b.height}
}

// ClearDirty resets dirty tracking after a flush.
func (b *Buffer) ClearDirty() {
	b.all = false
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
	b.gen++
	if b.gen == 0 {
		clear(b.stamps)
		b.gen = 1
	}
}

// IsDirty reports whether any cell changed since the last flush.
func (b *Buffer) IsDirty() bool {
	return b.all || b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// IsCellDirty reports whether (x, y) changed since the last flush.
func (b *Buffer) IsCellDirty(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.all || b.stamps[y*b.width+x] == b.gen
}

// ForEachDirtySpan calls fn for each contiguous run of dirty cells in a
// row, with endX exclusive.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	if !b.IsDirty() {
		return
	}
	rect := b.dirtyRect
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		if b.all {
			fn(y, 0, b.width)
			continue
		}
		row := y * b.width
		x := rect.X
		end := rect.X + rect.Width
		for x < end {
			if b.stamps[row+x] != b.gen {
				x++
				continue
			}
			start := x
			for x < end && b.stamps[row+x] == b.gen {
				x++
			}
			fn(y, start, x)
		}
	}
}

// Row returns the cells of row y.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width : (y+1)*b.width]
}

// SubBuffer is a clipped, translated view of a Buffer.
type SubBuffer struct {
	parent *Buffer
	bounds Rect
}

// Sub creates a SubBuffer for the given region.
func (b *Buffer) Sub(r Rect) *SubBuffer {
	return &SubBuffer{parent: b, bounds: r}
}

// Size returns the sub-buffer dimensions.
func (s *SubBuffer) Size() (w, h int) {
	return s.bounds.Width, s.bounds.Height
}

// Set writes a rune relative to the sub-buffer origin.
func (s *SubBuffer) Set(x, y int, r rune, style backend.Style) {
	if x < 0 || x >= s.bounds.Width || y < 0 || y >= s.bounds.Height {
		return
	}
	s.parent.Set(s.bounds.X+x, s.bounds.Y+y, r, style)
}

// SetString writes a string relative to the sub-buffer origin, clipped
// to its width. It returns the columns consumed.
func (s *SubBuffer) SetString(x, y int, str string, style backend.Style) int {
	col := 0
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+col+w > s.bounds.Width {
			break
		}
		s.Set(x+col, y, r, style)
		for i := 1; i < w; i++ {
			s.Set(x+col+i, y, 0, style)
		}
		col += w
	}
	return col
}

// Fill fills a region relative to the sub-buffer.
func (s *SubBuffer) Fill(r Rect, ch rune, style backend.Style) {
	clip := r.Intersection(Rect{Width: s.bounds.Width, Height: s.bounds.Height})
	if clip.Empty() {
		return
	}
	clip.X += s.bounds.X
	clip.Y += s.bounds.Y
	s.parent.Fill(clip, ch, style)
}
