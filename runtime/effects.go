package runtime

import (
	"context"
	"sync"
	"time"
)

// After posts a message after a delay.
func After(delay time.Duration, msg Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if msg == nil || post == nil {
				return
			}
			if delay <= 0 {
				post(msg)
				return
			}
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
				post(msg)
			}
		},
	}
}

// Every posts messages on a fixed interval.
// Returning nil from fn skips posting.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if interval <= 0 || fn == nil || post == nil {
				return
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					if msg := fn(now); msg != nil {
						post(msg)
					}
				}
			}
		},
	}
}

// Timer returns an effect that runs fn on the loop after delay, together
// with a cancel func. Cancelling before the delay elapses drops the call;
// a call already posted still runs, so callers that need exactness keep
// their own generation check.
func Timer(delay time.Duration, fn func()) (Effect, func()) {
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() { close(stop) })
	}
	effect := Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if fn == nil || post == nil {
				return
			}
			timer := time.NewTimer(max(delay, 0))
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-stop:
			case <-timer.C:
				post(CallMsg{Fn: fn})
			}
		},
	}
	return effect, cancel
}
