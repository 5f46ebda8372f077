// Package scroll provides viewport windowing and custom scrollbar geometry.
//
// A PositionTable keeps estimated row boxes for a virtual list, a Window
// picks the rows to materialize for a scroll offset, Tracks turn the same
// offset into thumb geometry and Sync keeps them in step with the native
// scroll position held by a Viewport.
package scroll

import "github.com/odvcencio/furry-virtual/backend"

// ScrollPolicy configures when scrollbars appear.
type ScrollPolicy int

const (
	ScrollAuto ScrollPolicy = iota
	ScrollAlways
	ScrollNever
)

// Orientation describes scrollbar orientation.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "x"
	}
	return "y"
}

// ScrollBehavior controls scroll policies and interactions.
type ScrollBehavior struct {
	Horizontal ScrollPolicy
	Vertical   ScrollPolicy
	MouseWheel int
	PageSize   float64
}

// Controller provides scroll control for widgets.
type Controller interface {
	ScrollBy(dx, dy int)
	ScrollTo(x, y int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// VirtualSizer optionally provides total height for virtual content.
type VirtualSizer interface {
	TotalHeight() float64
}

// VirtualIndexer provides offset/index mapping for virtual content.
type VirtualIndexer interface {
	IndexForOffset(offset int) int
	OffsetForIndex(index int) int
}

// BarStyle configures how a scrollbar is drawn.
type BarStyle struct {
	Track backend.Style
	Thumb backend.Style
	Chars ScrollbarChars
}

// ScrollbarChars defines characters used to render the scrollbar.
type ScrollbarChars struct {
	Track rune
	Thumb rune
}

// DefaultScrollbarChars returns ASCII defaults.
func DefaultScrollbarChars() ScrollbarChars {
	return ScrollbarChars{
		Track: '|',
		Thumb: '#',
	}
}

// DefaultBarStyle returns the default vertical bar style.
func DefaultBarStyle() BarStyle {
	return BarStyle{
		Track: backend.DefaultStyle(),
		Thumb: backend.DefaultStyle().Reverse(true),
		Chars: DefaultScrollbarChars(),
	}
}

var _ VirtualSizer = (*PositionTable)(nil)
