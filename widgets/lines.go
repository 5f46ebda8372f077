package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/runtime"
)

// Span is a run of text with one style.
type Span struct {
	Text  string
	Style backend.Style
}

// Line is one terminal row of styled spans.
type Line []Span

// Width returns the line's width in cells.
func (l Line) Width() int {
	w := 0
	for _, span := range l {
		w += runewidth.StringWidth(span.Text)
	}
	return w
}

// String returns the line's text without styling.
func (l Line) String() string {
	var sb strings.Builder
	for _, span := range l {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// PlainLine returns a single-span line.
func PlainLine(text string, style backend.Style) Line {
	return Line{{Text: text, Style: style}}
}

// WrapSpans lays spans out into lines no wider than width. Newlines in
// span text force a break. A width <= 0 disables wrapping.
func WrapSpans(spans []Span, width int) []Line {
	lines := []Line{nil}
	col := 0
	appendRune := func(r rune, style backend.Style) {
		cur := &lines[len(lines)-1]
		if n := len(*cur); n > 0 && (*cur)[n-1].Style == style {
			(*cur)[n-1].Text += string(r)
			return
		}
		*cur = append(*cur, Span{Text: string(r), Style: style})
	}
	for _, span := range spans {
		for _, r := range span.Text {
			if r == '\n' {
				lines = append(lines, nil)
				col = 0
				continue
			}
			w := runewidth.RuneWidth(r)
			if width > 0 && col > 0 && col+w > width {
				lines = append(lines, nil)
				col = 0
			}
			appendRune(r, span.Style)
			col += w
		}
	}
	return lines
}

// drawLine writes a line at (x, y) clipped to width and returns the
// columns used.
func drawLine(buf *runtime.Buffer, x, y, width int, line Line, restyle func(backend.Style) backend.Style) int {
	if buf == nil || width <= 0 {
		return 0
	}
	sub := buf.Sub(runtime.Rect{X: x, Y: y, Width: width, Height: 1})
	col := 0
	for _, span := range line {
		style := span.Style
		if restyle != nil {
			style = restyle(style)
		}
		col += sub.SetString(col, 0, span.Text, style)
		if col >= width {
			break
		}
	}
	return col
}

// truncateString truncates a string to fit within maxWidth.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
