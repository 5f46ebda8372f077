package runtime

// LayerScope owns at most one overlay layer on behalf of a single owner.
// The layer is pushed on the first Show and removed by Close, so nothing
// outlives the owner and no two owners share a container.
type LayerScope struct {
	screen func() *Screen
	root   Widget
	modal  bool
}

// NewLayerScope creates a scope over screen.
func NewLayerScope(screen *Screen) *LayerScope {
	return &LayerScope{screen: func() *Screen { return screen }}
}

// Show places w in the scope's layer, replacing whatever it held.
func (l *LayerScope) Show(w Widget, modal bool) bool {
	if l == nil || w == nil {
		return false
	}
	screen := l.screen()
	if screen == nil {
		return false
	}
	if l.root == w && l.modal == modal {
		return true
	}
	if l.root != nil {
		screen.RemoveLayer(l.root)
	}
	screen.PushLayer(w, modal)
	l.root = w
	l.modal = modal
	return true
}

// Root returns the widget currently shown, if any.
func (l *LayerScope) Root() Widget {
	if l == nil {
		return nil
	}
	return l.root
}

// Active reports whether the scope holds a layer.
func (l *LayerScope) Active() bool {
	return l != nil && l.root != nil
}

// Close removes the layer. The scope can be shown again afterwards.
func (l *LayerScope) Close() {
	if l == nil || l.root == nil {
		return
	}
	if screen := l.screen(); screen != nil {
		screen.RemoveLayer(l.root)
	}
	l.root = nil
}
