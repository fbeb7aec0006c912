package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
)

// Analyzer turns free text into a structured reminder. Implementations
// return ok=false when the text is not actually a reminder.
type Analyzer interface {
	ParseReminder(ctx context.Context, text string, now time.Time) (block.Reminder, bool, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, text string, now time.Time) (block.Reminder, bool, error)

func (f AnalyzerFunc) ParseReminder(ctx context.Context, text string, now time.Time) (block.Reminder, bool, error) {
	return f(ctx, text, now)
}

// Pipeline walks a page and keeps reminder metadata in sync with block
// content.
type Pipeline struct {
	Analyzer Analyzer
}

// Analyze returns the page with reminder metadata refreshed, plus whether
// anything changed. Blocks are only re-analyzed when their content differs
// from the text the existing reminder was derived from; blocks that stop
// looking dated lose their reminder. Analyzer failures leave existing
// metadata untouched.
func (pl Pipeline) Analyze(ctx context.Context, p page.Page, now time.Time) (page.Page, bool) {
	changed := false
	for _, b := range p.Blocks {
		if !b.Type.AllowsReminder() {
			continue
		}
		existing := b.Meta.GetReminder()
		if existing != nil && existing.OriginalText == b.Content {
			continue
		}
		if !LooksDated(b.Content) {
			if existing != nil {
				p = page.UpdateBlock(p, b.ID, page.Patch{Meta: withReminder(b.Meta, nil)})
				changed = true
			}
			continue
		}
		r, ok, err := pl.Analyzer.ParseReminder(ctx, b.Content, now)
		if err != nil {
			log.Debug().Err(err).Str("block", b.ID).Msg("reminder analysis failed")
			continue
		}
		if !ok {
			if existing != nil {
				p = page.UpdateBlock(p, b.ID, page.Patch{Meta: withReminder(b.Meta, nil)})
				changed = true
			}
			continue
		}
		r.OriginalText = b.Content
		p = page.UpdateBlock(p, b.ID, page.Patch{Meta: withReminder(b.Meta, &r)})
		changed = true
	}
	return p, changed
}

// ApplyAnalysis merges the reminder results of an analyzed snapshot into the
// current page. Only reminder metadata moves, and only onto blocks whose
// content has not changed since the snapshot was taken, so keystrokes made
// while the analyzer ran are never reverted.
func ApplyAnalysis(current, analyzed page.Page) (page.Page, bool) {
	changed := false
	for _, ab := range analyzed.Blocks {
		i := current.FindBlock(ab.ID)
		if i < 0 {
			continue
		}
		cb := current.Blocks[i]
		cr := cb.Meta.GetReminder()
		if ar := ab.Meta.GetReminder(); ar != nil {
			if cb.Content != ar.OriginalText {
				continue
			}
			if cr != nil && *cr == *ar {
				continue
			}
			r := *ar
			current = page.UpdateBlock(current, cb.ID, page.Patch{Meta: withReminder(cb.Meta, &r)})
			changed = true
			continue
		}
		if cr != nil && cb.Content == ab.Content {
			current = page.UpdateBlock(current, cb.ID, page.Patch{Meta: withReminder(cb.Meta, nil)})
			changed = true
		}
	}
	return current, changed
}

func withReminder(m *block.Meta, r *block.Reminder) *block.Meta {
	out := m.Clone()
	out.Reminder = r
	return out
}
