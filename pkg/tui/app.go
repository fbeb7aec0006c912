// Package tui is the full-screen editor built on Bubble Tea. It drives the
// pure editing machine with key events, persists after each mutation, and
// folds in background reminder analysis and the event feed.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ateliernotes/atelier/pkg/ai"
	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/editor"
	"github.com/ateliernotes/atelier/pkg/fold"
	"github.com/ateliernotes/atelier/pkg/page"
	"github.com/ateliernotes/atelier/pkg/reminder"
	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type pane int

const (
	paneEditor pane = iota
	panePages
	paneFeed
)

// promptKind distinguishes what the single text prompt is collecting.
type promptKind int

const (
	promptAsk promptKind = iota
	promptComment
)

// Model contains UI state.
type Model struct {
	svc      *app.Service
	gen      ai.Generator
	pipeline reminder.Pipeline
	poller   *reminder.Poller
	ctx      context.Context

	session       app.Session
	sessionLoaded bool
	wsIndex       int
	ed            editor.State

	pane      pane
	pageIndex int
	pageRows  []page.Page

	input         textinput.Model
	promptBlockID string
	promptOpen    bool
	promptFor     promptKind

	watch <-chan store.Event

	feed   reminder.Buckets
	status string

	termWidth  int
	termHeight int
}

// New builds the UI model. gen may be nil when no API key is configured;
// assistant features degrade to a status message.
func New(svc *app.Service, gen ai.Generator, interval, lookback time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask the assistant..."
	ti.CharLimit = 256
	ti.Prompt = "✦ "

	m := Model{
		svc:    svc,
		gen:    gen,
		ctx:    context.Background(),
		input:  ti,
		status: "type / for commands, ctrl+p pages, ctrl+f feed, ctrl+n comment, ctrl+q quit",
	}
	if gen != nil {
		m.pipeline = reminder.Pipeline{Analyzer: reminder.AnalyzerFunc(
			func(ctx context.Context, text string, now time.Time) (block.Reminder, bool, error) {
				return ai.ParseReminder(ctx, gen, text, now)
			})}
	}
	m.poller = reminder.NewPoller(func(ctx context.Context) ([]page.Page, error) {
		session, err := svc.Bootstrap(ctx)
		if err != nil {
			return nil, err
		}
		return svc.AllPages(ctx, session.User)
	}, nil)
	if interval > 0 {
		m.poller.Interval = interval
	}
	if lookback > 0 {
		m.poller.Lookback = lookback
	}
	return m
}

// messages
type errMsg struct{ err error }
type sessionMsg struct{ session app.Session }
type savedMsg struct{}
type pollTickMsg struct{}
type pollResultMsg struct {
	diff  reminder.Diff
	fired []reminder.Event
}
type aiMsg struct {
	blockID string
	text    string
}
type analyzedMsg struct {
	pageID string
	page   page.Page
	ok     bool
}
type commentedMsg struct{ page page.Page }
type watchMsg struct{ ch <-chan store.Event }
type watchEventMsg struct{ ok bool }

// Init loads the session, starts the poll loop, and subscribes to store
// changes made outside this process.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSession(), m.pollTick(), m.watchStart())
}

func (m *Model) watchStart() tea.Cmd {
	return func() tea.Msg {
		ch, err := m.svc.Watch(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return watchMsg{ch}
	}
}

// waitWatch blocks on the next store change event.
func waitWatch(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		return watchEventMsg{ok: ok}
	}
}

func (m *Model) loadSession() tea.Cmd {
	return func() tea.Msg {
		session, err := m.svc.Bootstrap(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{session}
	}
}

func (m *Model) pollTick() tea.Cmd {
	return tea.Tick(m.poller.Interval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

func (m *Model) pollScan() tea.Cmd {
	return func() tea.Msg {
		var fired []reminder.Event
		m.poller.Notifier = reminder.NotifierFunc(func(e reminder.Event) {
			fired = append(fired, e)
		})
		diff, err := m.poller.Scan(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return pollResultMsg{diff: diff, fired: fired}
	}
}

func (m *Model) workspace() (workspace.Workspace, bool) {
	if m.wsIndex < 0 || m.wsIndex >= len(m.session.Workspaces) {
		return workspace.Workspace{}, false
	}
	return m.session.Workspaces[m.wsIndex], true
}

// save persists the page under edit and schedules reminder analysis.
func (m *Model) save() tea.Cmd {
	w, ok := m.workspace()
	if !ok {
		return nil
	}
	p := m.ed.Page
	return func() tea.Msg {
		if err := m.svc.SavePage(m.ctx, w.ID, p); err != nil {
			return errMsg{err}
		}
		return savedMsg{}
	}
}

func (m *Model) analyze() tea.Cmd {
	if m.gen == nil {
		return nil
	}
	p := m.ed.Page
	now := m.svc.Now()
	return func() tea.Msg {
		out, changed := m.pipeline.Analyze(m.ctx, p, now)
		return analyzedMsg{pageID: p.ID, page: out, ok: changed}
	}
}

func (m *Model) askAI(blockID, prompt string) tea.Cmd {
	if m.gen == nil {
		return func() tea.Msg { return aiMsg{blockID: blockID, text: ai.Fallback} }
	}
	return func() tea.Msg {
		return aiMsg{blockID: blockID, text: ai.Complete(m.ctx, m.gen, prompt)}
	}
}

// openPage switches the editor to the given page.
func (m *Model) openPage(p page.Page) {
	m.ed = editor.NewState(p)
	m.pane = paneEditor
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case sessionMsg:
		if m.sessionLoaded {
			if toast := sessionToast(m.session, msg.session); toast != "" {
				m.status = toast
			}
		}
		m.sessionLoaded = true
		m.session = msg.session
		if w, ok := m.workspace(); ok {
			m.pageRows = w.ActivePages()
			if p, found := w.FindPage(w.ActivePageID); found && m.ed.Page.ID == "" {
				m.openPage(p)
			}
		}
	case savedMsg:
		// quiet; the status line is for errors and events
	case pollTickMsg:
		cmds = append(cmds, m.pollScan(), m.pollTick())
	case pollResultMsg:
		now := m.svc.Now()
		m.feed = reminder.Partition(msg.diff.Events, now)
		for _, e := range msg.fired {
			m.status = "⏰ " + e.Title + " (" + e.At.Format("15:04") + ")"
		}
		if msg.diff.Changed {
			cmds = append(cmds, m.loadSession())
		}
	case aiMsg:
		m.ed.Page = editor.ApplyCompletion(m.ed.Page, msg.blockID, msg.text)
		cmds = append(cmds, m.save())
	case analyzedMsg:
		// The analysis ran on a snapshot; merge per block so keystrokes
		// typed while it was in flight survive.
		if msg.ok && msg.pageID == m.ed.Page.ID {
			if merged, changed := reminder.ApplyAnalysis(m.ed.Page, msg.page); changed {
				m.ed.Page = merged
				cmds = append(cmds, m.save())
			}
		}
	case commentedMsg:
		if msg.page.ID == m.ed.Page.ID {
			m.ed.Page.Comments = msg.page.Comments
		}
		m.status = "comment added"
	case watchMsg:
		m.watch = msg.ch
		cmds = append(cmds, waitWatch(m.watch))
	case watchEventMsg:
		if msg.ok {
			cmds = append(cmds, m.loadSession(), m.pollScan(), waitWatch(m.watch))
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		return m, tea.Quit
	}

	if m.promptOpen {
		return m.handlePromptKey(msg)
	}

	switch m.pane {
	case panePages:
		return m.handlePagesKey(msg)
	case paneFeed:
		if msg.String() == "esc" || msg.String() == "ctrl+f" {
			m.pane = paneEditor
		}
		return m, nil
	}
	return m.handleEditorKey(msg)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		blockID := m.promptBlockID
		kind := m.promptFor
		m.promptOpen = false
		m.input.Reset()
		m.input.Blur()
		if kind == promptComment {
			if text == "" {
				return m, nil
			}
			return m, m.addComment(text)
		}
		m.status = "thinking..."
		return m, m.askAI(blockID, text)
	case "esc":
		m.promptOpen = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handlePagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, ok := m.workspace()
	if !ok {
		m.pane = paneEditor
		return m, nil
	}
	switch msg.String() {
	case "esc", "ctrl+p":
		m.pane = paneEditor
	case "up", "k":
		if m.pageIndex > 0 {
			m.pageIndex--
		}
	case "down", "j":
		if m.pageIndex < len(m.pageRows)-1 {
			m.pageIndex++
		}
	case "enter":
		if m.pageIndex < len(m.pageRows) {
			p := m.pageRows[m.pageIndex]
			m.openPage(p)
			return m, func() tea.Msg {
				if err := m.svc.SetActivePage(m.ctx, w.ID, p.ID); err != nil {
					return errMsg{err}
				}
				return savedMsg{}
			}
		}
	case "n":
		return m, tea.Sequence(func() tea.Msg {
			if _, err := m.svc.CreatePage(m.ctx, w.ID, ""); err != nil {
				return errMsg{err}
			}
			return savedMsg{}
		}, m.loadSession())
	case "f":
		if m.pageIndex < len(m.pageRows) {
			id := m.pageRows[m.pageIndex].ID
			return m, tea.Sequence(func() tea.Msg {
				if err := m.svc.ToggleFavorite(m.ctx, w.ID, id); err != nil {
					return errMsg{err}
				}
				return savedMsg{}
			}, m.loadSession())
		}
	case "d":
		if m.pageIndex < len(m.pageRows) {
			id := m.pageRows[m.pageIndex].ID
			m.status = "page moved to trash"
			return m, tea.Sequence(func() tea.Msg {
				if err := m.svc.TrashPage(m.ctx, w.ID, id); err != nil {
					return errMsg{err}
				}
				return savedMsg{}
			}, m.loadSession())
		}
	}
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+p":
		if w, ok := m.workspace(); ok {
			m.pageRows = w.ActivePages()
		}
		m.pane = panePages
		return m, m.loadSession()
	case "ctrl+f":
		m.pane = paneFeed
		return m, nil
	case "alt+up":
		return m.moveActive(-1)
	case "alt+down":
		return m.moveActive(+1)
	case "ctrl+n":
		m.promptOpen = true
		m.promptFor = promptComment
		m.input.Placeholder = "Add a comment..."
		m.input.Focus()
		return m, nil
	}

	ev, ok := keyToEvent(msg)
	if !ok {
		return m, nil
	}
	prevMode := m.ed.Mode
	next, effects := editor.Handle(m.ed, ev)
	m.ed = next

	cmds := []tea.Cmd{m.save()}
	for _, eff := range effects {
		switch eff := eff.(type) {
		case editor.CreateSubPage:
			w, found := m.workspace()
			if !found {
				continue
			}
			cmds = append(cmds, tea.Sequence(func() tea.Msg {
				if err := m.svc.CreateSubPage(m.ctx, w.ID, eff.ParentID, eff.PageID, eff.Title); err != nil {
					return errMsg{err}
				}
				return savedMsg{}
			}, m.loadSession()))
		case editor.PromptAI:
			m.promptOpen = true
			m.promptFor = promptAsk
			m.input.Placeholder = "Ask the assistant..."
			m.promptBlockID = eff.BlockID
			m.input.Focus()
		}
	}
	// Reminder analysis is an Enter-time commit, never per keystroke.
	if _, isEnter := ev.(editor.Enter); isEnter && prevMode == editor.ModeEdit {
		cmds = append(cmds, m.analyze())
	}
	return m, tea.Batch(cmds...)
}

// addComment appends a comment by the local user to the page under edit.
func (m *Model) addComment(text string) tea.Cmd {
	w, ok := m.workspace()
	if !ok {
		return nil
	}
	pageID := m.ed.Page.ID
	return func() tea.Msg {
		p, err := m.svc.CommentOnPage(m.ctx, w.ID, pageID, m.session.User, text)
		if err != nil {
			return errMsg{err}
		}
		return commentedMsg{page: p}
	}
}

// sessionToast describes membership changes between two session snapshots.
func sessionToast(prev, next app.Session) string {
	if len(next.Invitations) > len(prev.Invitations) {
		inv := next.Invitations[len(next.Invitations)-1]
		return "📨 " + inv.FromName + " invited you to " + inv.WorkspaceName
	}
	for _, w := range prev.Workspaces {
		found := false
		for _, nw := range next.Workspaces {
			if nw.ID == w.ID {
				found = true
				break
			}
		}
		if !found {
			return "you were removed from " + w.Name
		}
	}
	return ""
}

// moveActive reorders the active block one visible slot up or down by
// running a complete drag through the machine.
func (m Model) moveActive(delta int) (tea.Model, tea.Cmd) {
	visible := m.visibleItems()
	at := -1
	for i, item := range visible {
		if item.Index == m.ed.Active {
			at = i
			break
		}
	}
	if at < 0 || at+delta < 0 || at+delta >= len(visible) {
		return m, nil
	}
	target := visible[at+delta].Index
	next, _ := editor.Handle(m.ed, editor.DragStart{Index: m.ed.Active})
	next, _ = editor.Handle(next, editor.Drop{Index: target})
	m.ed = next
	return m, m.save()
}

// keyToEvent maps a terminal key to a machine event.
func keyToEvent(msg tea.KeyMsg) (editor.Event, bool) {
	switch msg.String() {
	case "enter":
		return editor.Enter{}, true
	case "backspace":
		return editor.Backspace{}, true
	case "tab":
		return editor.Tab{}, true
	case "shift+tab":
		return editor.Tab{Shift: true}, true
	case "up":
		return editor.Up{}, true
	case "down":
		return editor.Down{}, true
	case "esc":
		return editor.Escape{}, true
	case "ctrl+d":
		return editor.ToggleCheck{}, true
	case "ctrl+o":
		return editor.ToggleCollapse{}, true
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return editor.Rune{R: msg.Runes[0]}, true
	}
	if msg.Type == tea.KeySpace {
		return editor.Rune{R: ' '}, true
	}
	return nil, false
}

// Run launches the UI.
func Run(svc *app.Service, gen ai.Generator, interval, lookback time.Duration) error {
	p := tea.NewProgram(New(svc, gen, interval, lookback), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// visibleItems is the fold of the page under edit.
func (m Model) visibleItems() []fold.Item {
	return fold.Visible(m.ed.Page.Blocks)
}
