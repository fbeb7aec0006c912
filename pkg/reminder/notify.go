package reminder

import (
	"sync"
	"time"
)

// NotificationLead is how far ahead of its time an event may fire a
// notification.
const NotificationLead = 30 * time.Minute

// Notifier delivers a due-event notification to the user.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Dedup fires each event at most once per process lifetime. Events fire only
// while still ahead of now and within NotificationLead; stale events that
// were already past when first seen stay silent and live in the overdue
// bucket of the feed instead.
type Dedup struct {
	mu    sync.Mutex
	fired map[string]bool
}

// NewDedup returns an empty notification guard.
func NewDedup() *Dedup {
	return &Dedup{fired: map[string]bool{}}
}

// Sweep fires every due, not-yet-fired event and records it. Safe for
// concurrent use.
func (d *Dedup) Sweep(events []Event, now time.Time, n Notifier) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range events {
		left := e.At.Sub(now)
		if left <= 0 || left > NotificationLead {
			continue
		}
		key := e.Key()
		if d.fired[key] {
			continue
		}
		d.fired[key] = true
		n.Notify(e)
	}
}
