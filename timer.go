package halcyon

import (
	"sync/atomic"
	"time"
)

// TimerID identifies a timer registered on a widget tag.
type TimerID uint32

var nextTimerID atomic.Uint32

// NewTimerID allocates a fresh timer ID.
func NewTimerID() TimerID {
	return TimerID(nextTimerID.Add(1))
}

// Timer is a recurring per-widget timer. The driver delivers a TimerTick
// event each time Interval elapses; the core performs no background
// scheduling of its own; the embedding loop decides when ProcessTimers runs.
type Timer struct {
	Interval      time.Duration
	LastTriggered time.Time
	Times         uint32
}

// ready reports whether the timer is due at now.
func (t Timer) ready(now time.Time) bool {
	return now.Sub(t.LastTriggered) >= t.Interval
}

// RegisterTimer adds a recurring timer to the widget and returns its ID.
func (t *WidgetTag) RegisterTimer(interval time.Duration) TimerID {
	if t.timers == nil {
		t.timers = make(map[TimerID]Timer)
	}
	id := NewTimerID()
	t.timers[id] = Timer{Interval: interval}
	if t.shared != nil {
		t.shared.requestUpdateTimers(t.id)
	}
	return id
}

// RemoveTimer deletes a registered timer. Unknown IDs are ignored.
func (t *WidgetTag) RemoveTimer(id TimerID) {
	delete(t.timers, id)
	if t.shared != nil {
		t.shared.requestUpdateTimers(t.id)
	}
}

// Timers returns the widget's registered timers.
func (t *WidgetTag) Timers() map[TimerID]Timer {
	return t.timers
}
