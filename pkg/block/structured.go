package block

import (
	"encoding/json"
	"time"
)

// TableData is the structured value serialized into a table block's content.
// The first row is the header row.
type TableData [][]string

// DefaultTable is the fallback shown when table content cannot be parsed.
func DefaultTable() TableData {
	return TableData{
		{"Header 1", "Header 2"},
		{"Cell 1", "Cell 2"},
		{"Cell 3", "Cell 4"},
	}
}

// ParseTable decodes table content. Malformed content yields the default
// structure; rendering must never fail on bad content.
func ParseTable(content string) TableData {
	var data TableData
	if err := json.Unmarshal([]byte(content), &data); err != nil || len(data) == 0 {
		return DefaultTable()
	}
	return data
}

// Encode serializes the table back into block content.
func (d TableData) Encode() string {
	out, err := json.Marshal(d)
	if err != nil {
		return "[]"
	}
	return string(out)
}

// CalendarItem is one entry of a calendar block's structured content.
// Date is a plain YYYY-MM-DD day; time of day is not stored.
type CalendarItem struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Title string `json:"title"`
}

const calendarDateLayout = "2006-01-02"

// ParseCalendar decodes calendar content. Malformed JSON contributes zero
// items rather than an error.
func ParseCalendar(content string) []CalendarItem {
	var items []CalendarItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil
	}
	return items
}

// Day resolves the item's date in the given location, or false when the date
// does not parse.
func (c CalendarItem) Day(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(calendarDateLayout, c.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EncodeCalendar serializes calendar items into block content.
func EncodeCalendar(items []CalendarItem) string {
	out, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(out)
}
