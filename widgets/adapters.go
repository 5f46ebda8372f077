package widgets

import "github.com/odvcencio/furry-virtual/state"

// ListAdapter provides items to a VirtualList.
type ListAdapter[T any] interface {
	Count() int
	Item(index int) T
}

// SliceAdapter adapts a slice to a ListAdapter.
type SliceAdapter[T any] struct {
	items []T
}

// NewSliceAdapter creates a slice adapter.
func NewSliceAdapter[T any](items []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{items: items}
}

// Count returns the item count.
func (s *SliceAdapter[T]) Count() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Item returns the item at index.
func (s *SliceAdapter[T]) Item(index int) T {
	var zero T
	if s == nil || index < 0 || index >= len(s.items) {
		return zero
	}
	return s.items[index]
}

// SignalAdapter adapts a signal slice to a ListAdapter. Lists observe the
// signal and rebuild their position table when the item count changes.
type SignalAdapter[T any] struct {
	items *state.Signal[[]T]
}

// NewSignalAdapter creates a signal adapter.
func NewSignalAdapter[T any](items *state.Signal[[]T]) *SignalAdapter[T] {
	return &SignalAdapter[T]{items: items}
}

// Count returns the item count.
func (s *SignalAdapter[T]) Count() int {
	if s == nil || s.items == nil {
		return 0
	}
	return len(s.items.Get())
}

// Item returns an item.
func (s *SignalAdapter[T]) Item(index int) T {
	var zero T
	if s == nil || s.items == nil {
		return zero
	}
	items := s.items.Get()
	if index < 0 || index >= len(items) {
		return zero
	}
	return items[index]
}

// Subscribe registers fn for item changes.
func (s *SignalAdapter[T]) Subscribe(fn func()) func() {
	if s == nil || s.items == nil {
		return func() {}
	}
	return s.items.Subscribe(fn)
}

// SubscribeWithScheduler registers fn for item changes via scheduler.
func (s *SignalAdapter[T]) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if s == nil || s.items == nil {
		return func() {}
	}
	return s.items.SubscribeWithScheduler(scheduler, fn)
}

var (
	_ ListAdapter[int]   = (*SliceAdapter[int])(nil)
	_ ListAdapter[int]   = (*SignalAdapter[int])(nil)
	_ state.Subscribable = (*SignalAdapter[int])(nil)
)
