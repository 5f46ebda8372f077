package widgets

import (
	"strings"
	"time"

	"github.com/odvcencio/furry-virtual/runtime"
)

func rowText(buf *runtime.Buffer, y int) string {
	var sb strings.Builder
	for _, cell := range buf.Row(y) {
		if cell.Rune == 0 {
			continue
		}
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.String()
	}
	return out
}

// fakeTimer records delayed calls so tests can fire them by hand.
type fakeTimer struct {
	pending []*fakeCall
}

type fakeCall struct {
	fn       func()
	canceled bool
}

func (f *fakeTimer) after(_ time.Duration, fn func()) func() {
	call := &fakeCall{fn: fn}
	f.pending = append(f.pending, call)
	return func() { call.canceled = true }
}

func (f *fakeTimer) fire() {
	pending := f.pending
	f.pending = nil
	for _, call := range pending {
		if !call.canceled {
			call.fn()
		}
	}
}
