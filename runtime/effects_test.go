package runtime

import (
	"context"
	"testing"
	"time"
)

func TestAfter_Immediate(t *testing.T) {
	calls := 0
	effect := After(0, ResizeMsg{Width: 1, Height: 1})
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected immediate post, got %d", calls)
	}
}

func TestEvery_Invalid(t *testing.T) {
	calls := 0
	effect := Every(0, func(time.Time) Message { return ResizeMsg{Width: 1, Height: 1} })
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Fatalf("expected no posts for invalid interval, got %d", calls)
	}
}

func TestTimer_PostsCall(t *testing.T) {
	effect, _ := Timer(time.Millisecond, func() {})
	var got Message
	effect.Run(context.Background(), func(msg Message) bool {
		got = msg
		return true
	})
	if _, ok := got.(CallMsg); !ok {
		t.Fatalf("posted %T, want CallMsg", got)
	}
}

func TestTimer_CancelDropsCall(t *testing.T) {
	effect, cancel := Timer(time.Hour, func() {})
	cancel()
	cancel()
	posted := false
	effect.Run(context.Background(), func(Message) bool {
		posted = true
		return true
	})
	if posted {
		t.Fatal("cancelled timer posted a call")
	}
}
