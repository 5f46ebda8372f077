// Package widgets provides the scrollable widgets: ScrollView with a
// hover-revealed custom scrollbar, and VirtualList which only materializes
// the rows in view.
package widgets

import (
	"github.com/rs/zerolog"

	"github.com/odvcencio/furry-virtual/runtime"
	"github.com/odvcencio/furry-virtual/state"
)

// Base provides bounds bookkeeping for widgets.
type Base struct {
	bounds      runtime.Rect
	needsRender bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b == nil {
		return
	}
	if b.bounds != bounds {
		b.bounds = bounds
		b.needsRender = true
	}
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// NeedsRender reports whether the widget changed since its last render.
func (b *Base) NeedsRender() bool {
	return b != nil && b.needsRender
}

// ClearInvalidation clears the render-needed flag.
func (b *Base) ClearInvalidation() {
	if b == nil {
		return
	}
	b.needsRender = false
}

// Component is a base widget with bound services and subscriptions.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions
}

// Bind attaches app services to the component.
func (c *Component) Bind(services runtime.Services) {
	c.Services = services
	c.Subs.SetScheduler(services.Scheduler())
}

// Unbind releases app services and subscriptions.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Invalidate marks the component dirty and requests a render pass.
func (c *Component) Invalidate() {
	c.needsRender = true
	c.Services.Invalidate()
}

// Observe registers a subscription using the bound scheduler.
func (c *Component) Observe(sub state.Subscribable, fn func()) {
	c.Subs.Observe(sub, fn)
}

// Logger returns the bound logger tagged with the widget name.
func (c *Component) Logger(widget string) zerolog.Logger {
	return c.Services.Logger().With().Str("widget", widget).Logger()
}
