package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/odvcencio/furry-virtual/backend"
	"github.com/odvcencio/furry-virtual/pointer"
	"github.com/odvcencio/furry-virtual/state"
	"github.com/odvcencio/furry-virtual/terminal"
)

// ErrNoBackend is returned by Run when the app has no backend.
var ErrNoBackend = errors.New("backend is required")

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    QueueFlushPolicy
	Logger         *zerolog.Logger
	Document       *pointer.Document
}

// App runs a widget tree against a terminal backend.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    QueueFlushPolicy
	invalidator    *Invalidator
	logger         zerolog.Logger
	document       *pointer.Document
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingMu      sync.Mutex
	pendingEffects []Effect

	hooksMu     sync.Mutex
	afterRender []func()

	running bool
	dirty   bool
	frame   int64
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	doc := cfg.Document
	if doc == nil {
		doc = pointer.NewDocument()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
		logger:         logger.With().Str("component", "runtime").Logger(),
		document:       doc,
	}
	app.queueScheduler = NewQueueScheduler(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	if a == nil {
		return nil
	}
	return a.screen
}

// Document returns the pointer document for global listeners.
func (a *App) Document() *pointer.Document {
	if a == nil {
		return nil
	}
	return a.document
}

// StateQueue returns the app's state queue.
func (a *App) StateQueue() *state.Queue {
	if a == nil {
		return nil
	}
	return a.stateQueue
}

// StateScheduler returns a scheduler that wakes the app to flush.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// InvalidateScheduler returns a scheduler that invalidates the render pass.
func (a *App) InvalidateScheduler() state.Scheduler {
	if a == nil || a.invalidator == nil {
		return nil
	}
	return a.invalidator
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// AfterRender queues fn to run once after the next frame is flushed.
func (a *App) AfterRender(fn func()) {
	if a == nil || fn == nil {
		return
	}
	a.hooksMu.Lock()
	a.afterRender = append(a.afterRender, fn)
	a.hooksMu.Unlock()
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.pendingMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.pendingMu.Unlock()
		return
	}
	ctx := a.taskCtx
	a.pendingMu.Unlock()
	go effect.Run(ctx, a.tryPost)
}

// After schedules a delayed message using the app task context.
func (a *App) After(delay time.Duration, msg Message) {
	a.Spawn(After(delay, msg))
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the event loop.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	a.pendingMu.Lock()
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	a.pendingMu.Unlock()
	defer func() {
		taskCancel()
		a.pendingMu.Lock()
		a.taskCtx = nil
		a.taskCancel = nil
		a.pendingMu.Unlock()
	}()
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	if a.update == nil {
		a.update = DefaultUpdate
	}
	a.logger.Debug().Int("width", w).Int("height", h).Msg("app started")

	a.running = true
	a.dirty = true
	a.startPendingEffects()

	go a.pollEvents(taskCtx)

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running {
		if a.dirty {
			a.render()
			a.dirty = false
		}
		var msg Message
		select {
		case <-ctx.Done():
			a.stop()
			continue
		case msg = <-a.messages:
		case now := <-ticks:
			msg = TickMsg{Time: now}
		}
		a.step(msg)
	}
	a.logger.Debug().Int64("frames", a.frame).Msg("app stopped")
	return ctx.Err()
}

// step applies one message and the queue flush that follows it.
func (a *App) step(msg Message) {
	if _, ok := msg.(InvalidateMsg); ok {
		a.invalidator.resetPending()
	}
	if a.update(a, msg) {
		a.dirty = true
	}
	if a.running && a.flushQueueIfNeeded(msg) {
		a.dirty = true
	}
}

// DefaultUpdate handles input messages and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case MouseMsg:
		return app.dispatchPointer(m)
	case CallMsg:
		if m.Fn != nil {
			m.Fn()
		}
		return true
	case KeyMsg:
		if app.dispatchMessage(msg) {
			return true
		}
		if m.Key == terminal.KeyCtrlC {
			app.stop()
		}
		return false
	case QueueFlushMsg:
		return false
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

// dispatchPointer feeds moves and releases to document listeners first.
// While any listener is attached the event belongs to it; otherwise the
// event is hit tested through the screen.
func (a *App) dispatchPointer(m MouseMsg) bool {
	ev := pointer.Event{X: float64(m.X), Y: float64(m.Y)}
	var kind pointer.Kind
	switch m.Action {
	case terminal.MouseMove:
		kind = pointer.Move
	case terminal.MouseRelease:
		kind = pointer.Up
	default:
		return a.dispatchMessage(m)
	}
	if a.document.Dispatch(kind, ev) > 0 {
		a.screen.TrackHover(m.X, m.Y)
		return true
	}
	return a.dispatchMessage(m)
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.stop()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		a.Post(c.Message)
		return false
	case Effect:
		a.Spawn(c)
		return false
	case PushOverlay:
		if a.screen != nil {
			a.screen.PushLayer(c.Widget, c.Modal)
		}
		return true
	case PopOverlay:
		return a.screen != nil && a.screen.PopLayer()
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents(ctx context.Context) {
	for ctx.Err() == nil {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		if msg := messageFor(ev); msg != nil {
			a.Post(msg)
		}
	}
}

func messageFor(ev terminal.Event) Message {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
	case terminal.ResizeEvent:
		return ResizeMsg{Width: e.Width, Height: e.Height}
	case terminal.MouseEvent:
		return MouseMsg{
			X:      e.X,
			Y:      e.Y,
			Button: e.Button,
			Action: e.Action,
			Alt:    e.Alt,
			Ctrl:   e.Ctrl,
			Shift:  e.Shift,
		}
	}
	return nil
}

// render paints the screen, flushes dirty cells and then runs the
// post-render hooks queued for this frame.
func (a *App) render() {
	if a.screen == nil {
		return
	}
	a.frame++
	a.screen.Render()
	buf := a.screen.Buffer()
	flushed := 0
	if buf.IsDirty() {
		flushed = a.flush(buf)
		buf.ClearDirty()
	}
	a.backend.Show()
	a.logger.Trace().Int64("frame", a.frame).Int("cells", flushed).Msg("render")
	a.runAfterRender()
}

func (a *App) flush(buf *Buffer) int {
	rowWriter, hasRowWriter := a.backend.(backend.RowWriter)
	flushed := 0
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		row := buf.Row(y)[startX:endX]
		flushed += len(row)
		if hasRowWriter {
			rowWriter.SetRow(y, startX, row)
			return
		}
		for i, cell := range row {
			if cell.Rune == 0 {
				continue
			}
			a.backend.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
		}
	})
	return flushed
}

func (a *App) runAfterRender() {
	a.hooksMu.Lock()
	hooks := a.afterRender
	a.afterRender = nil
	a.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

func (a *App) stop() {
	a.running = false
	a.pendingMu.Lock()
	cancel := a.taskCancel
	a.pendingMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) startPendingEffects() {
	a.pendingMu.Lock()
	effects := a.pendingEffects
	a.pendingEffects = nil
	ctx := a.taskCtx
	a.pendingMu.Unlock()
	for _, effect := range effects {
		go effect.Run(ctx, a.tryPost)
	}
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a.stateQueue == nil || !shouldFlushQueue(a.flushPolicy, msg) {
		return false
	}
	a.queueScheduler.resetPending()
	return a.stateQueue.Flush() > 0
}
