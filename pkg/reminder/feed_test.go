package reminder

import (
	"testing"
	"time"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
)

func reminderPage(title string, at time.Time) page.Page {
	b := block.NewWithMeta(block.Text, "note", &block.Meta{
		Reminder: &block.Reminder{Title: title, Timestamp: block.Timestamp{Time: at}},
	})
	p := page.New("", at)
	p.Title = title + " page"
	p.Blocks = []block.Block{b}
	return p
}

func calendarPage(items ...block.CalendarItem) page.Page {
	p := page.New("", time.Now())
	p.Title = "calendar page"
	p.Blocks = []block.Block{block.New(block.Calendar, block.EncodeCalendar(items))}
	return p
}

func TestCollectEventsSortsAscending(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	pages := []page.Page{
		reminderPage("later", now.Add(2*time.Hour)),
		reminderPage("sooner", now.Add(1*time.Hour)),
	}
	events := CollectEvents(pages, now, DefaultLookback, time.UTC)
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Title != "sooner" || events[1].Title != "later" {
		t.Fatalf("order = %s, %s", events[0].Title, events[1].Title)
	}
}

func TestCollectEventsDropsStale(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	pages := []page.Page{
		reminderPage("stale", now.Add(-25*time.Hour)),
		reminderPage("recent", now.Add(-1*time.Hour)),
	}
	events := CollectEvents(pages, now, DefaultLookback, time.UTC)
	if len(events) != 1 || events[0].Title != "recent" {
		t.Fatalf("events = %+v, want only recent", events)
	}
}

func TestCollectEventsSkipsTrashedPages(t *testing.T) {
	now := time.Now()
	p := reminderPage("gone", now.Add(time.Hour))
	ts := block.Timestamp{Time: now}
	p.DeletedAt = &ts
	events := CollectEvents([]page.Page{p}, now, DefaultLookback, time.UTC)
	if len(events) != 0 {
		t.Fatalf("events = %+v, want none", events)
	}
}

func TestCalendarItemsResolveToMorning(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	p := calendarPage(block.CalendarItem{ID: "c1", Date: "2026-09-02", Title: "standup"})
	events := CollectEvents([]page.Page{p}, now, DefaultLookback, time.UTC)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	want := time.Date(2026, 9, 2, DefaultEventHour, 0, 0, 0, time.UTC)
	if !e.At.Equal(want) {
		t.Fatalf("at = %v, want %v", e.At, want)
	}
	if e.Source != SourceCalendar || e.ItemID != "c1" {
		t.Fatalf("event = %+v", e)
	}
}

func TestCalendarMalformedDateIgnored(t *testing.T) {
	now := time.Now()
	p := calendarPage(block.CalendarItem{ID: "bad", Date: "soon", Title: "x"})
	if events := CollectEvents([]page.Page{p}, now, DefaultLookback, time.UTC); len(events) != 0 {
		t.Fatalf("events = %+v, want none", events)
	}
}

func TestPartition(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{Title: "past", At: now.Add(-time.Hour)},
		{Title: "tonight", At: now.Add(6 * time.Hour)},
		{Title: "nextweek", At: now.Add(90 * time.Hour)},
	}
	b := Partition(events, now)
	if len(b.Overdue) != 1 || b.Overdue[0].Title != "past" {
		t.Fatalf("overdue = %+v", b.Overdue)
	}
	if len(b.Today) != 1 || b.Today[0].Title != "tonight" {
		t.Fatalf("today = %+v", b.Today)
	}
	if len(b.Upcoming) != 1 || b.Upcoming[0].Title != "nextweek" {
		t.Fatalf("upcoming = %+v", b.Upcoming)
	}
}

func TestEventKeyDistinguishesSources(t *testing.T) {
	at := time.Now()
	r := Event{PageID: "p", BlockID: "b", At: at, Source: SourceReminder}
	c := Event{PageID: "p", BlockID: "b", ItemID: "i", At: at, Source: SourceCalendar}
	if r.Key() == c.Key() {
		t.Fatal("reminder and calendar keys should differ")
	}
}
