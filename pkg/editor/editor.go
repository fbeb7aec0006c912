// Package editor implements the keystroke state machine for a page. All
// transitions are pure: Handle takes a state and an input event and returns
// the next state plus any effects the caller must run (page creation, AI
// prompts). The caller owns persistence and rendering.
package editor

import (
	"github.com/google/uuid"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/fold"
	"github.com/ateliernotes/atelier/pkg/page"
)

// Mode is the editor's input mode.
type Mode int

const (
	// ModeEdit routes keys to the active block's content.
	ModeEdit Mode = iota
	// ModePalette routes navigation keys to the slash command list.
	ModePalette
	// ModeDrag is an in-progress block reorder.
	ModeDrag
)

// State is the complete editing state for one page.
type State struct {
	Page   page.Page
	Active int // index into Page.Blocks
	Mode   Mode

	// palette state, valid while Mode == ModePalette
	PaletteIndex int
	slashAt      int // rune offset of the "/" that opened the palette

	// drag state, valid while Mode == ModeDrag
	DragFrom int
}

// NewState opens a page for editing with the first block active.
func NewState(p page.Page) State {
	return State{Page: p}
}

// Event is an input to the state machine.
type Event interface{ isEvent() }

// Rune is a printable character typed into the active block.
type Rune struct{ R rune }

// Enter is the return key.
type Enter struct{}

// Backspace is the delete-backwards key.
type Backspace struct{}

// Tab adjusts the active block's indent.
type Tab struct{ Shift bool }

// Up and Down move block focus, or palette selection while it is open.
type Up struct{}

// Down is the counterpart of Up.
type Down struct{}

// Escape closes the palette or cancels a drag.
type Escape struct{}

// Focus activates the block at the given index directly.
type Focus struct{ Index int }

// ToggleCheck flips the active to-do block's checkbox.
type ToggleCheck struct{}

// ToggleCollapse flips the active toggle block's folded state.
type ToggleCollapse struct{}

// DragStart begins reordering the block at the given index.
type DragStart struct{ Index int }

// Drop completes a reorder onto the given index.
type Drop struct{ Index int }

func (Rune) isEvent()           {}
func (Enter) isEvent()          {}
func (Backspace) isEvent()      {}
func (Tab) isEvent()            {}
func (Up) isEvent()             {}
func (Down) isEvent()           {}
func (Escape) isEvent()         {}
func (Focus) isEvent()          {}
func (ToggleCheck) isEvent()    {}
func (ToggleCollapse) isEvent() {}
func (DragStart) isEvent()      {}
func (Drop) isEvent()           {}

// Effect is work the machine cannot do itself; the caller runs these after
// applying the returned state.
type Effect interface{ isEffect() }

// CreateSubPage asks the caller to create a child page. The machine has
// already converted the block into a link carrying PageID, so the new page
// must be created with exactly that id.
type CreateSubPage struct {
	PageID   string
	ParentID string
	Title    string
}

// PromptAI asks the caller to open the assistant prompt bound to a block.
// The completion lands via ApplyCompletion.
type PromptAI struct{ BlockID string }

func (CreateSubPage) isEffect() {}
func (PromptAI) isEffect()      {}

// Handle applies one event. Unknown or inapplicable events return the state
// unchanged with no effects.
func Handle(s State, ev Event) (State, []Effect) {
	switch s.Mode {
	case ModePalette:
		return handlePalette(s, ev)
	case ModeDrag:
		return handleDrag(s, ev)
	}
	return handleEdit(s, ev)
}

// ActiveBlock returns the active block, or false when the page is empty.
func (s State) ActiveBlock() (block.Block, bool) {
	if s.Active < 0 || s.Active >= len(s.Page.Blocks) {
		return block.Block{}, false
	}
	return s.Page.Blocks[s.Active], true
}

// Filter is the palette query: the active block's content after the slash
// that opened it. Valid only in ModePalette.
func (s State) Filter() string {
	b, ok := s.ActiveBlock()
	if !ok {
		return ""
	}
	runes := []rune(b.Content)
	if s.slashAt+1 >= len(runes) {
		return ""
	}
	return string(runes[s.slashAt+1:])
}

// Matches returns the commands the palette currently shows.
func (s State) Matches() []Command {
	return FilterCommands(s.Filter())
}

func handleEdit(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Rune:
		return typeRune(s, e.R), nil
	case Enter:
		return splitOrConvert(s), nil
	case Backspace:
		return backspace(s), nil
	case Tab:
		return indent(s, e.Shift), nil
	case Up:
		return moveFocus(s, -1), nil
	case Down:
		return moveFocus(s, +1), nil
	case Focus:
		if e.Index >= 0 && e.Index < len(s.Page.Blocks) {
			s.Active = e.Index
		}
		return s, nil
	case ToggleCheck:
		if b, ok := s.ActiveBlock(); ok && b.Type == block.Todo {
			checked := !b.Checked
			s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Checked: &checked})
		}
		return s, nil
	case ToggleCollapse:
		if b, ok := s.ActiveBlock(); ok && b.Type == block.Toggle {
			meta := b.Meta.Clone()
			meta.Collapsed = !meta.Collapsed
			s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Meta: meta})
		}
		return s, nil
	case DragStart:
		if e.Index >= 0 && e.Index < len(s.Page.Blocks) {
			s.Mode = ModeDrag
			s.DragFrom = e.Index
		}
		return s, nil
	}
	return s, nil
}

func handlePalette(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Up:
		s.PaletteIndex = wrap(s.PaletteIndex-1, len(s.Matches()))
		return s, nil
	case Down:
		s.PaletteIndex = wrap(s.PaletteIndex+1, len(s.Matches()))
		return s, nil
	case Enter:
		matches := s.Matches()
		if len(matches) == 0 {
			s.Mode = ModeEdit
			return s, nil
		}
		i := s.PaletteIndex
		if i >= len(matches) {
			i = 0
		}
		return Execute(s, matches[i])
	case Escape:
		s.Mode = ModeEdit
		return s, nil
	case Rune:
		s = typeRune(s, e.R)
		s.PaletteIndex = 0
		return s, nil
	case Backspace:
		b, ok := s.ActiveBlock()
		if !ok {
			s.Mode = ModeEdit
			return s, nil
		}
		runes := []rune(b.Content)
		if len(runes) > 0 {
			content := string(runes[:len(runes)-1])
			s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Content: &content})
		}
		// deleting the slash itself dismisses the palette
		if len(runes)-1 <= s.slashAt {
			s.Mode = ModeEdit
		}
		s.PaletteIndex = 0
		return s, nil
	}
	return s, nil
}

func handleDrag(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Drop:
		s.Page = page.Reorder(s.Page, s.DragFrom, e.Index)
		if e.Index >= 0 && e.Index < len(s.Page.Blocks) {
			s.Active = e.Index
		}
		s.Mode = ModeEdit
		return s, nil
	case Escape:
		s.Mode = ModeEdit
		return s, nil
	}
	return s, nil
}

// typeRune appends a character to the active block. A slash on an editable
// block opens the palette anchored at its position.
func typeRune(s State, r rune) State {
	b, ok := s.ActiveBlock()
	if !ok || !b.Type.Editable() {
		return s
	}
	if r == '/' && s.Mode == ModeEdit {
		s.Mode = ModePalette
		s.PaletteIndex = 0
		s.slashAt = len([]rune(b.Content))
	}
	content := b.Content + string(r)
	s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Content: &content})
	return s
}

// splitOrConvert implements the return key. Empty list blocks step out of the
// list (outdent, then convert to text at the margin); everything else splits
// off a new block below, continuing the list type when there is one.
func splitOrConvert(s State) State {
	b, ok := s.ActiveBlock()
	if !ok {
		return s
	}
	if b.Type.IsList() && b.Content == "" {
		if b.Indent > 0 {
			ind := b.Indent - 1
			s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Indent: &ind})
		} else {
			text := block.Text
			checked := false
			s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Type: &text, Checked: &checked})
		}
		return s
	}
	next := block.Text
	if b.Type.IsList() {
		next = b.Type
	}
	nb := block.New(next, "")
	nb.Indent = b.Indent
	s.Page = page.InsertAfter(s.Page, s.Active, nb)
	s.Active++
	return s
}

// backspace removes the last character; on an already empty block it outdents
// first, then removes the block and focuses the previous one.
func backspace(s State) State {
	b, ok := s.ActiveBlock()
	if !ok {
		return s
	}
	runes := []rune(b.Content)
	if len(runes) > 0 && b.Type.Editable() {
		content := string(runes[:len(runes)-1])
		s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Content: &content})
		return s
	}
	if b.Indent > 0 {
		ind := b.Indent - 1
		s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Indent: &ind})
		return s
	}
	if len(s.Page.Blocks) == 1 {
		return s
	}
	s.Page = page.DeleteBlock(s.Page, b.ID)
	if s.Active > 0 {
		s.Active--
	}
	return s
}

func indent(s State, shift bool) State {
	b, ok := s.ActiveBlock()
	if !ok {
		return s
	}
	ind := b.Indent + 1
	if shift {
		ind = b.Indent - 1
	}
	if ind < 0 {
		ind = 0
	}
	if ind > block.MaxIndent {
		ind = block.MaxIndent
	}
	s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Indent: &ind})
	return s
}

// moveFocus steps focus through the visible blocks only, so a collapsed
// toggle's hidden children are skipped.
func moveFocus(s State, delta int) State {
	visible := fold.Visible(s.Page.Blocks)
	if len(visible) == 0 {
		return s
	}
	at := 0
	for i, item := range visible {
		if item.Index == s.Active {
			at = i
			break
		}
	}
	at += delta
	if at < 0 {
		at = 0
	}
	if at >= len(visible) {
		at = len(visible) - 1
	}
	s.Active = visible[at].Index
	return s
}

// Execute runs a palette command against the active block and closes the
// palette. Exported so pointer-driven UIs can run a command directly.
func Execute(s State, c Command) (State, []Effect) {
	b, ok := s.ActiveBlock()
	if !ok {
		s.Mode = ModeEdit
		return s, nil
	}
	s.Mode = ModeEdit
	switch c.Action {
	case ActionConvert:
		content := defaultContent(c.Target)
		checked := false
		s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Type: &c.Target, Content: &content, Checked: &checked})
		return s, nil
	case ActionColor:
		content := stripQuery(b.Content, s.slashAt)
		meta := b.Meta.Clone()
		meta.Color = c.Color
		s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Content: &content, Meta: meta})
		return s, nil
	case ActionSubPage:
		childID := uuid.NewString()
		link := block.PageLink
		title := "Untitled"
		meta := b.Meta.Clone()
		meta.PageID = childID
		s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Type: &link, Content: &title, Meta: meta})
		return s, []Effect{CreateSubPage{PageID: childID, ParentID: s.Page.ID, Title: title}}
	case ActionAskAI:
		content := stripQuery(b.Content, s.slashAt)
		s.Page = page.UpdateBlock(s.Page, b.ID, page.Patch{Content: &content})
		return s, []Effect{PromptAI{BlockID: b.ID}}
	}
	return s, nil
}

// ApplyCompletion writes an assistant response into the block that asked for
// it. Unknown block ids are a no-op.
func ApplyCompletion(p page.Page, blockID, text string) page.Page {
	return page.UpdateBlock(p, blockID, page.Patch{Content: &text})
}

// defaultContent seeds structured block types so they render immediately.
func defaultContent(t block.Type) string {
	switch t {
	case block.Table:
		return block.DefaultTable().Encode()
	case block.Calendar:
		return "[]"
	}
	return ""
}

// stripQuery drops the slash and everything after it from the content.
func stripQuery(content string, slashAt int) string {
	runes := []rune(content)
	if slashAt < 0 || slashAt > len(runes) {
		return content
	}
	return string(runes[:slashAt])
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
