// Package printers renders workspace data for the terminal commands.
package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
	"github.com/ateliernotes/atelier/pkg/reminder"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Workspace prints a workspace header with its member count.
func (pp *PrettyPrint) Workspace(w workspace.Workspace) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Printf("%s %s", w.Icon, w.Name)
	switch len(w.Members) {
	case 1:
		_, _ = c.Println(" - 1 member")
	default:
		_, _ = c.Printf(" - %d members\n", len(w.Members))
	}
}

// PageTree prints the live pages as an indented tree, favorites starred.
func (pp *PrettyPrint) PageTree(pages []page.Page) {
	if len(pages) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 60
	if pp.ShowID {
		table.AddRow("ID", "PAGE", "EDITED")
	} else {
		table.AddRow("PAGE", "EDITED")
	}
	pp.addTreeRows(table, pages, "", 0)
	fmt.Println(table)
	fmt.Println("")
}

func (pp *PrettyPrint) addTreeRows(table *uitable.Table, pages []page.Page, parentID string, depth int) {
	for _, p := range page.Children(pages, parentID) {
		label := strings.Repeat("  ", depth) + p.Icon + " " + p.DisplayTitle()
		if p.Favorite {
			label += " " + color.YellowString("★")
		}
		edited := p.UpdatedAt.Format("2006-01-02 15:04")
		if pp.ShowID {
			table.AddRow(color.New(color.FgHiYellow, color.Faint).Sprint(p.ID), label, edited)
		} else {
			table.AddRow(label, edited)
		}
		pp.addTreeRows(table, pages, p.ID, depth+1)
	}
}

// Trash prints trashed pages with their time left before collection.
func (pp *PrettyPrint) Trash(pages []page.Page, now time.Time) {
	if len(pages) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" trash is empty\n\n")
		return
	}
	table := uitable.New()
	table.AddRow("PAGE", "DELETED", "EXPIRES IN")
	for _, p := range pages {
		if p.DeletedAt == nil {
			continue
		}
		left := workspace.TrashRetention - now.Sub(p.DeletedAt.Time)
		if left < 0 {
			left = 0
		}
		table.AddRow(p.DisplayTitle(), p.DeletedAt.Format("2006-01-02 15:04"), left.Round(time.Hour).String())
	}
	fmt.Println(table)
	fmt.Println("")
}

// Feed prints the upcoming events bucketed by urgency.
func (pp *PrettyPrint) Feed(b reminder.Buckets) {
	pp.feedSection(color.New(color.FgRed, color.Bold), "Overdue", b.Overdue)
	pp.feedSection(color.New(color.FgGreen, color.Bold), "Today", b.Today)
	pp.feedSection(color.New(color.Bold), "Upcoming", b.Upcoming)
	if len(b.Overdue)+len(b.Today)+len(b.Upcoming) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" nothing scheduled\n\n")
	}
}

func (pp *PrettyPrint) feedSection(header *color.Color, title string, events []reminder.Event) {
	if len(events) == 0 {
		return
	}
	_, _ = header.Println(title)
	table := uitable.New()
	table.MaxColWidth = 50
	for _, e := range events {
		table.AddRow("  "+e.At.Format("Jan 2 15:04"), e.Title, color.New(color.Faint).Sprint(e.PageTitle))
	}
	fmt.Println(table)
	fmt.Println("")
}

// Todos prints open to-do blocks across the given pages, a lightweight
// dashboard next to the event feed.
func (pp *PrettyPrint) Todos(pages []page.Page, limit int) {
	table := uitable.New()
	table.MaxColWidth = 60
	count := 0
	for _, p := range pages {
		for _, b := range p.Blocks {
			if b.Type != block.Todo || b.Checked || b.Content == "" {
				continue
			}
			if count >= limit {
				break
			}
			table.AddRow("  [ ] "+b.Content, color.New(color.Faint).Sprint(p.DisplayTitle()))
			count++
		}
	}
	if count == 0 {
		return
	}
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println("Open to-dos")
	fmt.Println(table)
	fmt.Println("")
}

// Invitations prints pending invitations for the account.
func (pp *PrettyPrint) Invitations(invs []workspace.Invitation) {
	if len(invs) == 0 {
		return
	}
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println("Pending invitations")
	table := uitable.New()
	for _, inv := range invs {
		table.AddRow(inv.WorkspaceIcon+" "+inv.WorkspaceName, "from "+inv.FromName, string(inv.Role))
	}
	fmt.Println(table)
	fmt.Println("")
}

// InvitationsWithIDs prints pending invitations including the ids that the
// accept and decline flags take.
func (pp *PrettyPrint) InvitationsWithIDs(invs []workspace.Invitation) {
	if len(invs) == 0 {
		return
	}
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println("Pending invitations")
	table := uitable.New()
	table.AddRow("ID", "WORKSPACE", "FROM", "ROLE")
	for _, inv := range invs {
		table.AddRow(
			color.New(color.FgHiYellow, color.Faint).Sprint(inv.ID),
			inv.WorkspaceIcon+" "+inv.WorkspaceName,
			inv.FromName,
			string(inv.Role),
		)
	}
	fmt.Println(table)
	fmt.Println("")
}

// Members prints the member roster of a workspace.
func (pp *PrettyPrint) Members(w workspace.Workspace) {
	table := uitable.New()
	table.AddRow("ID", "MEMBER", "EMAIL", "ROLE")
	for _, m := range w.Members {
		table.AddRow(
			color.New(color.FgHiYellow, color.Faint).Sprint(m.ID),
			m.Name,
			m.Email,
			string(m.Role),
		)
	}
	fmt.Println(table)
	fmt.Println("")
}
