package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/state"
)

// Alignment positions text within its bounds.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// SignalLabel is a one-line label bound to a signal. It subscribes on
// Mount and lets go on Unmount.
type SignalLabel struct {
	Component
	source    state.Readable[string]
	text      string
	style     backend.Style
	alignment Alignment
	mounted   bool
}

// NewSignalLabel creates a new signal-backed label.
func NewSignalLabel(source state.Readable[string]) *SignalLabel {
	label := &SignalLabel{
		source: source,
		style:  backend.DefaultStyle(),
	}
	if source != nil {
		label.text = source.Get()
	}
	return label
}

// Text returns the current label text.
func (s *SignalLabel) Text() string {
	return s.text
}

// SetStyle sets the label style.
func (s *SignalLabel) SetStyle(style backend.Style) {
	s.style = style
}

// SetAlignment sets text alignment.
func (s *SignalLabel) SetAlignment(align Alignment) {
	s.alignment = align
}

// Measure returns the size needed for the label.
func (s *SignalLabel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(s.text),
		Height: 1,
	})
}

// Render draws the label.
func (s *SignalLabel) Render(ctx runtime.RenderContext) {
	bounds := s.bounds
	if bounds.Empty() {
		return
	}
	ctx.Buffer.Fill(runtime.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: 1}, ' ', s.style)
	text := truncateString(s.text, bounds.Width)
	width := runewidth.StringWidth(text)

	x := bounds.X
	switch s.alignment {
	case AlignCenter:
		x += (bounds.Width - width) / 2
	case AlignRight:
		x += bounds.Width - width
	}
	ctx.Buffer.SetString(x, bounds.Y, text, s.style)
}

// Mount subscribes to signal changes.
func (s *SignalLabel) Mount() {
	s.mounted = true
	s.Subs.Clear()
	if s.source == nil {
		s.text = ""
		return
	}
	s.text = s.source.Get()
	s.Observe(s.source, s.onSignal)
}

// Unmount unsubscribes from signal changes.
func (s *SignalLabel) Unmount() {
	s.mounted = false
	s.Subs.Clear()
}

func (s *SignalLabel) onSignal() {
	if !s.mounted || s.source == nil {
		return
	}
	s.text = s.source.Get()
	s.Invalidate()
}
