package halcyon

// ============================================================================
// Event Queue
// ============================================================================

// queuedEvent is one pending delivery. The event's positional fields are in
// window space; translation into the destination's local space happens at
// delivery time, so a relayout between queue and delivery is observed rather
// than smeared over.
type queuedEvent struct {
	dest  WidgetID
	event WidgetEvent

	// bubbleSource, when non-empty, is the ident path from dest down to the
	// widget the event was originally delivered to.
	bubbleSource []Ident

	// clearHover marks the MouseExit generated by the cursor leaving the
	// window: after delivery the hover widget is forgotten, unless a held
	// button keeps the implicit grab alive.
	clearHover bool
}

// eventQueue is the dispatcher's FIFO. Deliveries may enqueue further events
// (enter/move descent, bubbling, focus notifications); those are processed in
// the same drain, after everything queued before them.
type eventQueue struct {
	events []queuedEvent
	head   int
}

func (q *eventQueue) push(e queuedEvent) {
	q.events = append(q.events, e)
}

func (q *eventQueue) pop() (queuedEvent, bool) {
	if q.head >= len(q.events) {
		q.events = q.events[:0]
		q.head = 0
		return queuedEvent{}, false
	}
	e := q.events[q.head]
	q.head++
	return e, true
}

func (q *eventQueue) len() int { return len(q.events) - q.head }
