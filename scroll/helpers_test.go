package scroll

import "github.com/odvcencio/furry-virtual/pointer"

const (
	pointerMove = pointer.Move
	pointerUp   = pointer.Up
)

func dragAt(y float64) pointer.Event {
	return pointer.Event{Y: y, Target: ThumbTarget(Vertical)}
}
