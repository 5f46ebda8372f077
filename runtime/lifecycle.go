package runtime

// Lifecycle is implemented by widgets that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Bindable widgets receive app services when attached to a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when removed.
type Unbindable interface {
	Unbind()
}

// attach binds then mounts a subtree, parents first.
func attach(root Widget, services Services) {
	walk(root, func(w Widget) {
		if b, ok := w.(Bindable); ok && !services.isZero() {
			b.Bind(services)
		}
	}, nil)
	MountTree(root)
}

// detach unmounts then unbinds a subtree, children first.
func detach(root Widget) {
	UnmountTree(root)
	walk(root, nil, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

// MountTree calls Mount on widgets that implement Lifecycle.
func MountTree(root Widget) {
	walk(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	}, nil)
}

// UnmountTree calls Unmount on widgets that implement Lifecycle.
func UnmountTree(root Widget) {
	walk(root, nil, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}

// walk visits w depth first, calling pre before and post after children.
func walk(w Widget, pre, post func(Widget)) {
	if w == nil {
		return
	}
	if pre != nil {
		pre(w)
	}
	if children, ok := w.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walk(child, pre, post)
		}
	}
	if post != nil {
		post(w)
	}
}
