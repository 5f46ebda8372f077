// Package pointer models document-level pointer listeners for drag gestures.
//
// Widgets receive pointer input only while the pointer is over them. A drag
// has to keep tracking the pointer after it leaves the widget, so drag
// sessions attach their move and release handlers to a Document instead.
package pointer

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// Kind identifies a document-level pointer event.
type Kind int

const (
	Move Kind = iota
	Up
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Target identifies the element a pointer event landed on.
type Target string

// NoTarget is used when the event did not land on a named element.
const NoTarget Target = ""

// Event is a pointer position in screen coordinates.
type Event struct {
	X, Y   float64
	Target Target
}

// Handler receives pointer events.
type Handler func(Event)

// SelectGuard decides whether text selection may start.
// A nil guard allows selection.
type SelectGuard func() bool

type listener struct {
	id ulid.ULID
	fn Handler
}

// Document dispatches pointer events to global listeners.
type Document struct {
	mu          sync.Mutex
	listeners   map[Kind][]listener
	selectStart SelectGuard
	suppressed  int
	saved       SelectGuard
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{listeners: make(map[Kind][]listener)}
}

// AddListener registers fn for kind and returns its handle.
func (d *Document) AddListener(kind Kind, fn Handler) ulid.ULID {
	if d == nil || fn == nil {
		return ulid.ULID{}
	}
	id := ulid.Make()
	d.mu.Lock()
	if d.listeners == nil {
		d.listeners = make(map[Kind][]listener)
	}
	d.listeners[kind] = append(d.listeners[kind], listener{id: id, fn: fn})
	d.mu.Unlock()
	return id
}

// RemoveListener detaches a listener. It reports false when the listener
// was not attached.
func (d *Document) RemoveListener(kind Kind, id ulid.ULID) bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.listeners[kind]
	for i, l := range list {
		if l.id != id {
			continue
		}
		d.listeners[kind] = append(list[:i:i], list[i+1:]...)
		return true
	}
	return false
}

// ListenerCount returns how many listeners are attached for kind.
func (d *Document) ListenerCount(kind Kind) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[kind])
}

// Dispatch delivers ev to every listener of kind attached at call time and
// returns the number of listeners invoked.
func (d *Document) Dispatch(kind Kind, ev Event) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	list := append([]listener(nil), d.listeners[kind]...)
	d.mu.Unlock()
	for _, l := range list {
		l.fn(ev)
	}
	return len(list)
}

// SelectStart returns the current selection guard.
func (d *Document) SelectStart() SelectGuard {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectStart
}

// SetSelectStart replaces the selection guard.
func (d *Document) SetSelectStart(guard SelectGuard) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.selectStart = guard
	d.mu.Unlock()
}

// SelectionAllowed evaluates the current guard.
func (d *Document) SelectionAllowed() bool {
	guard := d.SelectStart()
	if guard == nil {
		return true
	}
	return guard()
}

// SuppressSelection blocks text selection until the returned release is
// called. Nested suppressions share one saved guard, which is restored
// when the last release runs. Release is safe to call more than once.
func (d *Document) SuppressSelection() (release func()) {
	if d == nil {
		return func() {}
	}
	d.mu.Lock()
	if d.suppressed == 0 {
		d.saved = d.selectStart
		d.selectStart = func() bool { return false }
	}
	d.suppressed++
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.suppressed--
			if d.suppressed == 0 {
				d.selectStart = d.saved
				d.saved = nil
			}
		})
	}
}
