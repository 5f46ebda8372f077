package runtime

import "github.com/odvcencio/furry-virtual/backend"

// Layer is one widget tree in the screen stack.
type Layer struct {
	Root  Widget
	Modal bool // blocks input to layers below
}

// Screen manages the layer stack, hit testing and rendering.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
	hovered       []Hoverable
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays out every layer.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(s.bounds())
		}
	}
}

func (s *Screen) bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot replaces the root widget of the base layer.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{})
	}
	base := s.layers[0]
	if base.Root != nil {
		s.release(base.Root)
		detach(base.Root)
	}
	base.Root = root
	if root != nil {
		attach(root, s.services)
		root.Layout(s.bounds())
	}
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds a layer on top of the stack.
func (s *Screen) PushLayer(root Widget, modal bool) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{})
	}
	s.layers = append(s.layers, &Layer{Root: root, Modal: modal})
	if root != nil {
		attach(root, s.services)
		root.Layout(s.bounds())
	}
	s.buffer.MarkAllDirty()
}

// PopLayer removes the top layer. The base layer cannot be popped.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	return s.RemoveLayer(s.layers[len(s.layers)-1].Root)
}

// RemoveLayer removes the overlay layer whose root is root.
func (s *Screen) RemoveLayer(root Widget) bool {
	for i := len(s.layers) - 1; i >= 1; i-- {
		if s.layers[i].Root != root {
			continue
		}
		if root != nil {
			s.release(root)
			detach(root)
		}
		s.layers = append(s.layers[:i], s.layers[i+1:]...)
		s.buffer.MarkAllDirty()
		return true
	}
	return false
}

// TopLayer returns the topmost layer.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// Render draws all layers to the buffer, bottom to top.
func (s *Screen) Render() {
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		layer.Root.Render(RenderContext{
			Buffer:  s.buffer,
			Focused: i == len(s.layers)-1,
			Bounds:  s.bounds(),
		})
	}
}

// HandleMessage dispatches a message. Mouse messages go to the deepest
// widget under the pointer and bubble to its ancestors; everything else
// goes to the layers from the top down until a modal layer stops it.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if mouse, ok := msg.(MouseMsg); ok {
		return s.handleMouse(mouse)
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := s.deliver(layer.Root, msg)
		if result.Handled || layer.Modal {
			return result
		}
	}
	return Unhandled()
}

func (s *Screen) handleMouse(msg MouseMsg) HandleResult {
	path := s.PathAt(msg.X, msg.Y)
	s.updateHover(path)
	for i := len(path) - 1; i >= 0; i-- {
		if result := s.deliver(path[i], msg); result.Handled {
			return result
		}
	}
	return Unhandled()
}

func (s *Screen) deliver(w Widget, msg Message) HandleResult {
	result := w.HandleMessage(msg)
	rest := result.Commands[:0:0]
	for _, cmd := range result.Commands {
		switch c := cmd.(type) {
		case PushOverlay:
			s.PushLayer(c.Widget, c.Modal)
		case PopOverlay:
			s.PopLayer()
		default:
			rest = append(rest, cmd)
		}
	}
	result.Commands = rest
	return result
}

// PathAt returns the widgets under (x, y) from the layer root down to the
// deepest hit. Only the topmost layer that contains the point is used;
// a modal layer hides everything beneath it.
func (s *Screen) PathAt(x, y int) []Widget {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root != nil {
			if path := hitPath(layer.Root, x, y, nil); len(path) > 0 {
				return path
			}
		}
		if layer.Modal {
			return nil
		}
	}
	return nil
}

func hitPath(w Widget, x, y int, path []Widget) []Widget {
	if bp, ok := w.(BoundsProvider); ok && !bp.Bounds().Contains(x, y) {
		return path
	}
	path = append(path, w)
	if ho, ok := w.(HitOpaque); ok && ho.HitOpaque() {
		return path
	}
	if cp, ok := w.(ChildProvider); ok {
		children := cp.ChildWidgets()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] == nil {
				continue
			}
			if next := hitPath(children[i], x, y, path); len(next) > len(path) {
				return next
			}
		}
	}
	return path
}

// updateHover sends PointerLeave to hoverables no longer under the
// pointer and PointerEnter to new ones.
func (s *Screen) updateHover(path []Widget) {
	var next []Hoverable
	for _, w := range path {
		if h, ok := w.(Hoverable); ok {
			next = append(next, h)
		}
	}
	for _, prev := range s.hovered {
		if !containsHoverable(next, prev) {
			prev.PointerLeave()
		}
	}
	for _, h := range next {
		if !containsHoverable(s.hovered, h) {
			h.PointerEnter()
		}
	}
	s.hovered = next
}

// release sends PointerLeave to hovered widgets under root.
func (s *Screen) release(root Widget) {
	walk(root, func(w Widget) {
		if h, ok := w.(Hoverable); ok && containsHoverable(s.hovered, h) {
			h.PointerLeave()
			s.hovered = removeHoverable(s.hovered, h)
		}
	}, nil)
}

func containsHoverable(list []Hoverable, h Hoverable) bool {
	for _, item := range list {
		if item == h {
			return true
		}
	}
	return false
}

func removeHoverable(list []Hoverable, h Hoverable) []Hoverable {
	out := list[:0]
	for _, item := range list {
		if item != h {
			out = append(out, item)
		}
	}
	return out
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool // Is the containing layer on top?
	Bounds  Rect // Widget's allocated bounds
}

// Sub creates a context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}

// SubBuffer returns a buffer view clipped to the context bounds.
func (ctx RenderContext) SubBuffer() *SubBuffer {
	return ctx.Buffer.Sub(ctx.Bounds)
}

// TrackHover updates hover state for a pointer at (x, y) without
// delivering a message.
func (s *Screen) TrackHover(x, y int) {
	s.updateHover(s.PathAt(x, y))
}
