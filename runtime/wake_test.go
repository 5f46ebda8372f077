package runtime

import (
	"testing"

	"github.com/odvcencio/furry-virtual/state"
)

func countPosts[T Message](n *int) PostFunc {
	return func(msg Message) bool {
		if _, ok := msg.(T); ok {
			*n++
			return true
		}
		return false
	}
}

func TestInvalidator_Coalesces(t *testing.T) {
	posted := 0
	invalidator := NewInvalidator(countPosts[InvalidateMsg](&posted))

	invalidator.Invalidate()
	invalidator.Invalidate()
	if posted != 1 {
		t.Fatalf("expected 1 invalidate post, got %d", posted)
	}

	invalidator.resetPending()
	invalidator.Invalidate()
	if posted != 2 {
		t.Fatalf("expected 2 invalidate posts after reset, got %d", posted)
	}
}

func TestInvalidator_RepostsOnFailedSend(t *testing.T) {
	attempts := 0
	invalidator := NewInvalidator(func(Message) bool {
		attempts++
		return false
	})

	invalidator.Invalidate()
	invalidator.Invalidate()
	if attempts != 2 {
		t.Fatalf("expected 2 post attempts, got %d", attempts)
	}
}

func TestQueueScheduler_CoalescesFlushes(t *testing.T) {
	queue := state.NewQueue()
	posted := 0
	scheduler := NewQueueScheduler(queue, countPosts[QueueFlushMsg](&posted))

	scheduler.Schedule(func() {})
	scheduler.Schedule(func() {})
	if posted != 1 {
		t.Fatalf("expected 1 flush post, got %d", posted)
	}
	if queue.Len() != 2 {
		t.Fatalf("queue len = %d, want 2", queue.Len())
	}

	scheduler.resetPending()
	scheduler.Schedule(func() {})
	if posted != 2 {
		t.Fatalf("expected 2 flush posts after reset, got %d", posted)
	}
}

func TestShouldFlushQueue(t *testing.T) {
	cases := []struct {
		policy QueueFlushPolicy
		msg    Message
		want   bool
	}{
		{FlushManual, ResizeMsg{Width: 1, Height: 1}, false},
		{FlushManual, QueueFlushMsg{}, true},
		{FlushOnTick, TickMsg{}, true},
		{FlushOnTick, ResizeMsg{Width: 1, Height: 1}, false},
		{FlushOnMessage, TickMsg{}, false},
		{FlushOnMessage, CallMsg{}, true},
		{FlushOnMessageAndTick, TickMsg{}, true},
	}

	for i, tc := range cases {
		if got := shouldFlushQueue(tc.policy, tc.msg); got != tc.want {
			t.Fatalf("case %d policy=%d msg=%T got %v want %v", i, tc.policy, tc.msg, got, tc.want)
		}
	}
}
