package runtime

// Rect is a cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersection returns the overlap of r and other.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Constraints bound the size a widget may take during Measure.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that only admit size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth: size.Width, MaxWidth: size.Width,
		MinHeight: size.Height, MaxHeight: size.Height,
	}
}

// Constrain clamps size into c.
func (c Constraints) Constrain(size Size) Size {
	size.Width = min(max(size.Width, c.MinWidth), c.MaxWidth)
	size.Height = min(max(size.Height, c.MinHeight), c.MaxHeight)
	return size
}

// Widget is a node of the retained widget tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider exposes child widgets for tree walks.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes the last layout bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// HitOpaque widgets keep hit testing from descending into their
// children. Scroll containers use it because their children live in
// content coordinates.
type HitOpaque interface {
	HitOpaque() bool
}

// Hoverable widgets are told when the pointer enters or leaves them.
type Hoverable interface {
	PointerEnter()
	PointerLeave()
}

// HandleResult reports whether a message was consumed and which
// commands it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a consumed result.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result that lets the message continue.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand returns a consumed result carrying cmd.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}
