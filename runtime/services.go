package runtime

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/odvcencio/furry-virtual/pointer"
	"github.com/odvcencio/furry-virtual/state"
)

// Services exposes app-level scheduling and messaging helpers.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Logger returns the app logger, or a no-op logger when unbound.
func (s Services) Logger() zerolog.Logger {
	if s.app == nil {
		return zerolog.Nop()
	}
	return s.app.logger
}

// Document returns the app pointer document that drag sessions listen on.
func (s Services) Document() *pointer.Document {
	if s.app == nil {
		return nil
	}
	return s.app.document
}

// Scheduler returns the app state scheduler.
func (s Services) Scheduler() state.Scheduler {
	if s.app == nil {
		return nil
	}
	return s.app.StateScheduler()
}

// InvalidateScheduler returns the app invalidation scheduler.
func (s Services) InvalidateScheduler() state.Scheduler {
	if s.app == nil {
		return nil
	}
	return s.app.InvalidateScheduler()
}

// Invalidate requests a render pass.
func (s Services) Invalidate() {
	if s.app == nil {
		return
	}
	s.app.Invalidate()
}

// AfterRender runs fn once, right after the next frame has been flushed
// to the backend.
func (s Services) AfterRender(fn func()) {
	if s.app == nil {
		return
	}
	s.app.AfterRender(fn)
}

// AfterFunc runs fn on the loop after delay. The returned func cancels
// a run that has not been posted yet.
func (s Services) AfterFunc(delay time.Duration, fn func()) func() {
	if s.app == nil {
		return func() {}
	}
	effect, cancel := Timer(delay, fn)
	s.app.Spawn(effect)
	return cancel
}

// NewLayerScope creates a layer scope on the app screen.
func (s Services) NewLayerScope() *LayerScope {
	if s.app == nil {
		return nil
	}
	app := s.app
	return &LayerScope{screen: app.Screen}
}

// Post sends a message into the app loop.
func (s Services) Post(msg Message) bool {
	if s.app == nil {
		return false
	}
	return s.app.tryPost(msg)
}

// Spawn starts an effect using the app task context.
func (s Services) Spawn(effect Effect) {
	if s.app == nil {
		return
	}
	s.app.Spawn(effect)
}

// After schedules a delayed message.
func (s Services) After(delay time.Duration, msg Message) {
	if s.app == nil {
		return
	}
	s.app.After(delay, msg)
}
