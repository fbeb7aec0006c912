package workspace

import (
	"time"

	"github.com/ateliernotes/atelier/pkg/block"
)

// TemplateKind names the starter layouts offered on an empty page.
type TemplateKind string

const (
	TemplateMeeting TemplateKind = "meeting"
	TemplateProject TemplateKind = "project"
	TemplateJournal TemplateKind = "journal"
)

// Template returns the block sequence for a starter layout. Unknown kinds
// yield nil so callers can ignore them.
func Template(kind TemplateKind, now time.Time) []block.Block {
	switch kind {
	case TemplateMeeting:
		return []block.Block{
			block.New(block.H1, "Meeting Notes"),
			block.New(block.Text, "Date: "+now.Format("January 2, 2006")),
			block.New(block.H2, "Agenda"),
			block.New(block.Todo, "Topic 1"),
		}
	case TemplateProject:
		return []block.Block{
			block.New(block.H1, "Project Plan"),
			block.New(block.Text, "Overview..."),
			block.New(block.H2, "Tasks"),
			block.New(block.Todo, "Phase 1"),
		}
	case TemplateJournal:
		return []block.Block{
			block.New(block.H1, "Daily Journal"),
			block.New(block.Quote, "Write a quote here."),
		}
	}
	return nil
}
