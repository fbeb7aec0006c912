package reminder

import (
	"sort"
	"time"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
)

// DefaultLookback is how far into the past the feed reaches. Events older
// than this are considered stale and dropped rather than shown as overdue.
const DefaultLookback = 24 * time.Hour

// DefaultEventHour is the local hour all-day calendar items resolve to.
const DefaultEventHour = 9

// Source identifies where a feed event came from.
type Source string

const (
	SourceReminder Source = "reminder"
	SourceCalendar Source = "calendar"
)

// Event is one entry in the upcoming feed.
type Event struct {
	PageID    string
	PageTitle string
	BlockID   string
	ItemID    string // calendar item id; empty for reminders
	Title     string
	At        time.Time
	Source    Source
}

// Key identifies the event for deduplication. Calendar items key on the item
// id so edits to the title do not renotify, reminders on block and time.
func (e Event) Key() string {
	if e.Source == SourceCalendar {
		return e.PageID + "-" + e.BlockID + "-" + e.ItemID
	}
	return e.PageID + "-" + e.BlockID + "-" + e.At.UTC().Format(time.RFC3339)
}

// CollectEvents gathers reminder metadata and calendar items from the given
// pages into one feed, keeping events from lookback before now onward,
// sorted by time ascending. Trashed pages contribute nothing. Calendar items
// resolve to DefaultEventHour in loc.
func CollectEvents(pages []page.Page, now time.Time, lookback time.Duration, loc *time.Location) []Event {
	if loc == nil {
		loc = time.Local
	}
	cutoff := now.Add(-lookback)
	var out []Event
	for _, p := range pages {
		if p.Deleted() {
			continue
		}
		for _, b := range p.Blocks {
			switch {
			case b.HasReminder():
				r := b.Meta.Reminder
				if r.Timestamp.Before(cutoff) {
					continue
				}
				out = append(out, Event{
					PageID:    p.ID,
					PageTitle: p.DisplayTitle(),
					BlockID:   b.ID,
					Title:     r.Title,
					At:        r.Timestamp.Time,
					Source:    SourceReminder,
				})
			case b.Type == block.Calendar:
				for _, item := range block.ParseCalendar(b.Content) {
					day, ok := item.Day(loc)
					if !ok {
						continue
					}
					at := time.Date(day.Year(), day.Month(), day.Day(), DefaultEventHour, 0, 0, 0, loc)
					if at.Before(cutoff) {
						continue
					}
					out = append(out, Event{
						PageID:    p.ID,
						PageTitle: p.DisplayTitle(),
						BlockID:   b.ID,
						ItemID:    item.ID,
						Title:     item.Title,
						At:        at,
						Source:    SourceCalendar,
					})
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// Buckets splits a feed for display.
type Buckets struct {
	Overdue  []Event
	Today    []Event
	Upcoming []Event
}

// Partition buckets events relative to now: already past, later today, and
// beyond. Events keep their feed order within each bucket.
func Partition(events []Event, now time.Time) Buckets {
	var b Buckets
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	for _, e := range events {
		switch {
		case e.At.Before(now):
			b.Overdue = append(b.Overdue, e)
		case !e.At.After(endOfDay):
			b.Today = append(b.Today, e)
		default:
			b.Upcoming = append(b.Upcoming, e)
		}
	}
	return b
}
