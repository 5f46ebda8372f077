package widgets

import (
	"fmt"

	"github.com/odvcencio/furry-virtual/backend"
)

// ItemRenderer turns a list item into terminal lines. The number of lines
// returned is the item's measured height.
type ItemRenderer[T any] interface {
	Lines(item T, index int, width int) []Line
}

// RendererFunc adapts a function into an ItemRenderer.
type RendererFunc[T any] func(item T, index int, width int) []Line

// Lines calls f.
func (f RendererFunc[T]) Lines(item T, index int, width int) []Line {
	if f == nil {
		return nil
	}
	return f(item, index, width)
}

// TextRenderer renders items as wrapped plain text.
type TextRenderer[T any] struct {
	// Format converts an item to text. fmt.Sprint is used when nil.
	Format func(item T) string
	Style  backend.Style
	// Wrap breaks long items over several rows instead of truncating.
	Wrap bool
}

// NewTextRenderer returns a wrapping text renderer using fmt.Sprint.
func NewTextRenderer[T any]() *TextRenderer[T] {
	return &TextRenderer[T]{Style: backend.DefaultStyle(), Wrap: true}
}

// Lines renders item.
func (r *TextRenderer[T]) Lines(item T, index int, width int) []Line {
	var text string
	if r.Format != nil {
		text = r.Format(item)
	} else {
		text = fmt.Sprint(item)
	}
	spans := []Span{{Text: text, Style: r.Style}}
	if r.Wrap {
		return WrapSpans(spans, width)
	}
	lines := WrapSpans(spans, 0)
	for i, line := range lines {
		lines[i] = PlainLine(truncateString(line.String(), width), r.Style)
	}
	return lines
}

var (
	_ ItemRenderer[string] = (*TextRenderer[string])(nil)
	_ ItemRenderer[string] = RendererFunc[string](nil)
)
