// Package block defines the atomic content unit of a page: a typed block
// with indentation, optional check state, and typed per-block metadata.
package block

import (
	"github.com/google/uuid"
)

// Type identifies how a block renders and behaves.
type Type string

const (
	Text        Type = "text"
	H1          Type = "h1"
	H2          Type = "h2"
	H3          Type = "h3"
	Bullet      Type = "bullet"
	Number      Type = "number"
	Todo        Type = "todo"
	Quote       Type = "quote"
	Divider     Type = "divider"
	Table       Type = "table"
	Board       Type = "board"
	Calendar    Type = "calendar"
	Placeholder Type = "placeholder"
	Callout     Type = "callout"
	Code        Type = "code"
	Image       Type = "image"
	Toggle      Type = "toggle"
	Video       Type = "video"
	PageLink    Type = "page_link"
	Map         Type = "map"
)

// MaxIndent bounds nesting depth for list-like blocks.
const MaxIndent = 8

// AllTypes returns the supported block types in display order.
func AllTypes() []Type {
	return []Type{
		Text, H1, H2, H3, Bullet, Number, Todo, Quote, Divider,
		Table, Board, Calendar, Placeholder, Callout, Code, Image,
		Toggle, Video, PageLink, Map,
	}
}

// IsList reports whether the type continues as a list when Enter is pressed.
func (t Type) IsList() bool {
	switch t {
	case Bullet, Number, Todo, Toggle:
		return true
	}
	return false
}

// AllowsReminder reports whether free text in this block type may be scanned
// for schedulable items.
func (t Type) AllowsReminder() bool {
	switch t {
	case Text, Todo, Bullet, Toggle:
		return true
	}
	return false
}

// Editable reports whether the block carries free text the caret can sit in.
// Structured and embed blocks manage their own content.
func (t Type) Editable() bool {
	switch t {
	case Table, Board, Calendar, Placeholder, Image, Video, PageLink, Map, Divider:
		return false
	}
	return true
}

// Reminder is a schedulable item extracted from block text.
type Reminder struct {
	Title        string    `json:"title"`
	Timestamp    Timestamp `json:"timestamp"`
	OriginalText string    `json:"originalText,omitempty"`
}

// Meta carries the typed per-block auxiliary data. The open dictionary of the
// browser original is narrowed to one field per concern; a nil Meta means no
// auxiliary data at all. Meta values are replaced wholesale on update, never
// merged, so callers that extend an existing Meta must copy it first.
type Meta struct {
	Reminder        *Reminder `json:"reminder,omitempty"`
	Collapsed       bool      `json:"collapsed,omitempty"`
	Color           string    `json:"color,omitempty"`
	PageID          string    `json:"pageId,omitempty"`
	Language        string    `json:"language,omitempty"`
	Caption         string    `json:"caption,omitempty"`
	PlaceholderKind string    `json:"placeholderType,omitempty"`
	Label           string    `json:"label,omitempty"`
}

// Clone returns a copy of the metadata suitable for spread-and-patch updates.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return &Meta{}
	}
	out := *m
	if m.Reminder != nil {
		r := *m.Reminder
		out.Reminder = &r
	}
	return &out
}

// GetReminder returns the attached reminder, tolerating nil metadata.
func (m *Meta) GetReminder() *Reminder {
	if m == nil {
		return nil
	}
	return m.Reminder
}

// Block is a single content unit. Content holds prose for text-like types and
// a serialized structured value for table/calendar types.
type Block struct {
	ID      string `json:"id"`
	Type    Type   `json:"type"`
	Content string `json:"content"`
	Checked bool   `json:"checked,omitempty"`
	Indent  int    `json:"indent,omitempty"`
	Meta    *Meta  `json:"metadata,omitempty"`
}

// New creates a block of the given type with a fresh id at indent 0.
func New(t Type, content string) Block {
	return Block{
		ID:      uuid.NewString(),
		Type:    t,
		Content: content,
	}
}

// NewWithMeta creates a block carrying initial metadata.
func NewWithMeta(t Type, content string, meta *Meta) Block {
	b := New(t, content)
	b.Meta = meta
	return b
}

// Collapsed reports whether this block is a collapsed toggle, i.e. whether
// deeper-indented successors should be hidden.
func (b Block) Collapsed() bool {
	return b.Type == Toggle && b.Meta != nil && b.Meta.Collapsed
}

// HasReminder reports whether a reminder has been attached to this block.
func (b Block) HasReminder() bool {
	return b.Meta != nil && b.Meta.Reminder != nil
}
