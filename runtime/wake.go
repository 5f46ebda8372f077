package runtime

import (
	"sync/atomic"

	"github.com/odvcencio/furry-virtual/state"
)

// waker posts one wake-up message at a time. Further wake calls are
// coalesced until the loop consumes the message and calls reset.
type waker struct {
	post    PostFunc
	msg     Message
	pending atomic.Bool
}

func (w *waker) wake() {
	if w.post == nil {
		return
	}
	if w.pending.CompareAndSwap(false, true) {
		if !w.post(w.msg) {
			w.pending.Store(false)
		}
	}
}

func (w *waker) reset() {
	w.pending.Store(false)
}

// Invalidator posts an InvalidateMsg with coalescing.
type Invalidator struct {
	waker waker
}

// NewInvalidator creates an invalidator wired to a post function.
func NewInvalidator(post PostFunc) *Invalidator {
	return &Invalidator{waker: waker{post: post, msg: InvalidateMsg{}}}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i == nil {
		return
	}
	i.waker.wake()
}

// Schedule runs fn and requests a render pass.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

func (i *Invalidator) resetPending() {
	if i == nil {
		return
	}
	i.waker.reset()
}

// QueueScheduler enqueues callbacks and wakes the app to flush them.
type QueueScheduler struct {
	queue *state.Queue
	waker waker
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *state.Queue, post PostFunc) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{queue: queue, waker: waker{post: post, msg: QueueFlushMsg{}}}
}

// Schedule enqueues the callback and posts a flush message.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.waker.wake()
}

func (s *QueueScheduler) resetPending() {
	if s == nil {
		return
	}
	s.waker.reset()
}

var (
	_ state.Scheduler = (*Invalidator)(nil)
	_ state.Scheduler = (*QueueScheduler)(nil)
)
