package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/editor"
	"github.com/ateliernotes/atelier/pkg/reminder"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	h1Style      = lipgloss.NewStyle().Bold(true)
	h2Style      = lipgloss.NewStyle().Bold(true).Faint(true)
	quoteStyle   = lipgloss.NewStyle().Italic(true).Faint(true)
	codeStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	calloutStyle = lipgloss.NewStyle().Background(lipgloss.Color("58"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	paletteBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedRow  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var colorStyles = map[string]lipgloss.Style{
	"red":       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	"blue":      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	"green":     lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	"bg-yellow": lipgloss.NewStyle().Background(lipgloss.Color("226")).Foreground(lipgloss.Color("232")),
	"bg-red":    lipgloss.NewStyle().Background(lipgloss.Color("124")),
}

// View renders the current pane with a status line at the bottom.
func (m Model) View() string {
	var body string
	switch m.pane {
	case panePages:
		body = m.viewPages()
	case paneFeed:
		body = m.viewFeed()
	default:
		body = m.viewEditor()
	}
	return body + "\n" + statusStyle.Render(m.status) + "\n"
}

func (m Model) viewEditor() string {
	var b strings.Builder
	p := m.ed.Page
	b.WriteString(titleStyle.Render(p.Icon+" "+p.DisplayTitle()) + "\n\n")

	number := 0
	for _, item := range m.visibleItems() {
		blk := item.Block
		if blk.Type == block.Number {
			number++
		} else {
			number = 0
		}
		line := renderBlock(blk, number)
		if item.Index == m.ed.Active {
			if blk.Type.Editable() && m.ed.Mode != editor.ModeDrag {
				line += activeStyle.Render("▏")
			}
			line = activeStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		if item.Index == m.ed.Active && m.ed.Mode == editor.ModePalette {
			b.WriteString(m.viewPalette() + "\n")
		}
	}

	if len(p.Comments) > 0 {
		b.WriteString("\n" + h2Style.Render("💬 Comments") + "\n")
		for _, c := range p.Comments {
			b.WriteString("  " + badgeStyle.Render(c.UserInitials) + " " + c.Content +
				"  " + faintStyle.Render(c.Timestamp.Format("Jan 2 15:04")) + "\n")
		}
	}

	if m.promptOpen {
		b.WriteString("\n" + paletteBox.Render(m.input.View()) + "\n")
	}
	return b.String()
}

func renderBlock(b block.Block, number int) string {
	indent := strings.Repeat("  ", b.Indent)
	content := b.Content

	var line string
	switch b.Type {
	case block.H1:
		line = h1Style.Render("# " + content)
	case block.H2:
		line = h2Style.Render("## " + content)
	case block.H3:
		line = h2Style.Render("### " + content)
	case block.Quote:
		line = quoteStyle.Render("│ " + content)
	case block.Todo:
		box := "[ ]"
		if b.Checked {
			box = "[x]"
			content = faintStyle.Render(content)
		}
		line = box + " " + content
	case block.Bullet:
		line = "• " + content
	case block.Number:
		line = fmt.Sprintf("%d. %s", number, content)
	case block.Toggle:
		arrow := "▾"
		if b.Collapsed() {
			arrow = "▸"
		}
		line = arrow + " " + content
	case block.Divider:
		line = faintStyle.Render(strings.Repeat("─", 40))
	case block.Code:
		line = codeStyle.Render(" " + content + " ")
	case block.Callout:
		line = calloutStyle.Render("💡 " + content)
	case block.PageLink:
		line = "📄 " + content
	case block.Image, block.Video, block.Map:
		line = faintStyle.Render("[" + string(b.Type) + "] " + content)
	case block.Table:
		rows := make([]string, 0)
		for _, row := range block.ParseTable(content) {
			rows = append(rows, strings.Join(row, " | "))
		}
		line = faintStyle.Render(strings.Join(rows, " ⏎ "))
	case block.Calendar:
		items := block.ParseCalendar(content)
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, it.Date+" "+it.Title)
		}
		if len(parts) == 0 {
			parts = append(parts, "empty calendar")
		}
		line = faintStyle.Render("🗓 " + strings.Join(parts, ", "))
	default:
		line = content
	}

	if b.Meta != nil && b.Meta.Color != "" {
		if st, ok := colorStyles[b.Meta.Color]; ok {
			line = st.Render(line)
		}
	}
	if r := b.Meta.GetReminder(); r != nil {
		line += " " + badgeStyle.Render("⏰ "+r.Timestamp.Format("Jan 2 15:04"))
	}
	return indent + line
}

func (m Model) viewPalette() string {
	matches := m.ed.Matches()
	var b strings.Builder
	if len(matches) == 0 {
		b.WriteString(faintStyle.Render("no matching commands"))
	}
	for i, c := range matches {
		row := c.Label + "  " + faintStyle.Render(c.Desc)
		if i == m.ed.PaletteIndex {
			row = selectedRow.Render("▸ " + c.Label + "  " + c.Desc)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		if i < len(matches)-1 {
			b.WriteString("\n")
		}
	}
	return paletteBox.Render(b.String())
}

func (m Model) viewPages() string {
	var b strings.Builder
	w, ok := m.workspace()
	if !ok {
		return faintStyle.Render("no workspace")
	}
	b.WriteString(titleStyle.Render(w.Icon+" "+w.Name) + "\n\n")
	for i, p := range m.pageRows {
		label := p.Icon + " " + p.DisplayTitle()
		if p.Favorite {
			label += " ★"
		}
		if i == m.pageIndex {
			b.WriteString(selectedRow.Render("▸ "+label) + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}
	b.WriteString("\n" + faintStyle.Render("enter open · n new · f favorite · d trash · esc back"))
	return b.String()
}

func (m Model) viewFeed() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upcoming") + "\n\n")
	sections := []struct {
		name   string
		events []reminder.Event
	}{
		{"Overdue", m.feed.Overdue},
		{"Today", m.feed.Today},
		{"Upcoming", m.feed.Upcoming},
	}
	empty := true
	for _, s := range sections {
		if len(s.events) == 0 {
			continue
		}
		empty = false
		b.WriteString(h1Style.Render(s.name) + "\n")
		for _, e := range s.events {
			b.WriteString("  " + e.At.Format("Jan 2 15:04") + "  " + e.Title +
				"  " + faintStyle.Render(e.PageTitle) + "\n")
		}
		b.WriteString("\n")
	}
	if empty {
		b.WriteString(faintStyle.Render("nothing scheduled"))
	}
	return b.String()
}
