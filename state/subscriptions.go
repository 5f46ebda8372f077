package state

import "sync"

// Subscriptions tracks and clears multiple unsubscribe callbacks.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
	sched  Scheduler
}

// SetScheduler updates the scheduler used by Observe.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Add registers an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Observe registers fn on sub using the configured scheduler and tracks
// the unsubscribe.
func (s *Subscriptions) Observe(sub Subscribable, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()
	var unsub func()
	if sched, ok := sub.(interface {
		SubscribeWithScheduler(Scheduler, func()) func()
	}); ok && scheduler != nil {
		unsub = sched.SubscribeWithScheduler(scheduler, fn)
	} else {
		unsub = sub.Subscribe(fn)
	}
	s.Add(unsub)
}

// Clear unsubscribes all tracked callbacks.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}
