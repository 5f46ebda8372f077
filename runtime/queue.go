package runtime

// QueueFlushPolicy configures when the app flushes its state queue.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes on any message or tick.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes on messages except TickMsg.
	FlushOnMessage
	// FlushOnTick flushes only on TickMsg.
	FlushOnTick
	// FlushManual flushes only on QueueFlushMsg.
	FlushManual
)

func shouldFlushQueue(policy QueueFlushPolicy, msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, isTick := msg.(TickMsg)
	switch policy {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !isTick
	case FlushOnTick:
		return isTick
	default:
		return true
	}
}
