// Package reminder extracts dated events from page content and decides when
// to surface them. Detection runs in two stages: a cheap heuristic gate over
// the raw text, then an analyzer (usually AI backed) that produces the
// structured reminder.
package reminder

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// datetimePattern is the heuristic gate. It looks for English and Russian
// calendar words, numeric dates, clock times, and common scheduling phrases.
var datetimePattern = regexp.MustCompile(strings.Join([]string{
	`(?i)\b(today|tomorrow|tonight|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`,
	`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`,
	`(?i)(сегодня|завтра|послезавтра|понедельник|вторник|среду?|четверг|пятниц[ау]|суббот[ау]|воскресенье)`,
	`(?i)(январ|феврал|март|апрел|ма[йя]|июн|июл|август|сентябр|октябр|ноябр|декабр)`,
	`\d{1,2}[./-]\d{1,2}`,
	`\d{1,2}:\d{2}`,
	`(?i)\b(at \d|in \d|next )`,
	`(?i)\b(remind)`,
	// Cyrillic alternatives stay outside \b groups; RE2 word boundaries are
	// ASCII-only and never match before a Cyrillic letter.
	`(?i)(напомни)`,
	`(?i)(в \d|через \d)`,
}, "|"))

// LooksDated reports whether the text plausibly mentions a date or time and
// is worth sending to the analyzer. Very short strings never qualify.
func LooksDated(text string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 3 {
		return false
	}
	return datetimePattern.MatchString(text)
}
