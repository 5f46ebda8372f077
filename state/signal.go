// Package state provides the reactive values widgets re-render from.
package state

import "sync"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Subscribable
	Get() T
}

type subscriber struct {
	fn        func()
	scheduler Scheduler
}

// Signal holds a value and notifies subscribers on change.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]subscriber
	next  int
	equal EqualFunc[T]
}

// NewSignal creates a new signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// NewValue creates a signal that ignores sets of an equal value.
func NewValue[T comparable](initial T) *Signal[T] {
	return &Signal[T]{value: initial, equal: EqualComparable[T]}
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	subs := make([]subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.scheduler == nil {
			sub.fn()
			continue
		}
		sub.scheduler.Schedule(sub.fn)
	}
	return true
}

// Update replaces the value using fn.
// fn runs outside the signal lock; Update is not atomic across goroutines.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// Subscribe registers a listener that runs synchronously on change.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
// If scheduler is nil, callbacks run synchronously.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]subscriber)
	}
	id := s.next
	s.next++
	s.subs[id] = subscriber{fn: fn, scheduler: scheduler}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
