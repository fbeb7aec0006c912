// Package workspace models the top-level container: pages, members, and the
// simulated sharing records that live alongside them in the local store.
package workspace

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
)

// AccessLevel is the role a member holds in a workspace. Enforcement is
// UI-level only: anything below CanEdit renders read-only.
type AccessLevel string

const (
	Owner      AccessLevel = "Owner"
	FullAccess AccessLevel = "Full access"
	CanEdit    AccessLevel = "Can edit"
	CanComment AccessLevel = "Can comment"
	CanView    AccessLevel = "Can view"
	NoAccess   AccessLevel = "No access"
)

// Editable reports whether the role allows mutating pages.
func (a AccessLevel) Editable() bool {
	switch a {
	case Owner, FullAccess, CanEdit:
		return true
	}
	return false
}

// User is a simulated account record in the local store.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Initials string `json:"initials,omitempty"`
}

// Member is a user's membership in one workspace.
type Member struct {
	ID     string      `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name,omitempty"`
	Avatar string      `json:"avatar,omitempty"`
	Role   AccessLevel `json:"role"`
}

// InvitationStatus tracks an invitation's lifecycle.
type InvitationStatus string

const (
	InvitePending  InvitationStatus = "pending"
	InviteAccepted InvitationStatus = "accepted"
	InviteDeclined InvitationStatus = "declined"
)

// Invitation is a pending request for a user to join a workspace.
type Invitation struct {
	ID            string           `json:"id"`
	FromName      string           `json:"fromName"`
	FromAvatar    string           `json:"fromAvatar,omitempty"`
	ToEmail       string           `json:"toEmail"`
	WorkspaceID   string           `json:"workspaceId"`
	WorkspaceName string           `json:"workspaceName"`
	WorkspaceIcon string           `json:"workspaceIcon,omitempty"`
	Role          AccessLevel      `json:"role"`
	Timestamp     block.Timestamp  `json:"timestamp"`
	Status        InvitationStatus `json:"status"`
}

// Workspace owns an ordered page collection and a member list, and tracks
// which page is active. A page's parent always belongs to the same workspace.
type Workspace struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Icon         string      `json:"icon,omitempty"`
	Tag          string      `json:"tag,omitempty"`
	Pages        []page.Page `json:"pages"`
	ActivePageID string      `json:"activePageId,omitempty"`
	Members      []Member    `json:"members"`
}

// New creates an empty workspace owned by the given user.
func New(name, icon, tag string, owner User) Workspace {
	return Workspace{
		ID:   uuid.NewString(),
		Name: name,
		Icon: icon,
		Tag:  tag,
		Members: []Member{{
			ID:     owner.ID,
			Email:  owner.Email,
			Name:   owner.Name,
			Avatar: ownerAvatar(owner),
			Role:   Owner,
		}},
	}
}

func ownerAvatar(u User) string {
	if u.Avatar != "" {
		return u.Avatar
	}
	return u.Initials
}

// Default builds the starter workspace a fresh account receives, with a
// welcome page already populated.
func Default(owner User, now time.Time) Workspace {
	ws := New("Atelier", "✒️", "Personal", owner)
	welcome := page.Page{
		ID:    uuid.NewString(),
		Title: "Studio Journal",
		Icon:  "📓",
		Blocks: []block.Block{
			block.New(block.H1, "Welcome to your Atelier"),
			block.New(block.Text, "A space designed for focus and clarity. Your content sits on a clean sheet of paper."),
			block.New(block.Quote, "Simplicity is the ultimate sophistication."),
			block.New(block.H2, "Getting Started"),
			block.New(block.Todo, "Try typing / to see commands"),
			block.New(block.Todo, "Create a new page from the pages list"),
		},
		UpdatedAt: block.Timestamp{Time: now},
		Favorite:  true,
	}
	ws.Pages = []page.Page{welcome}
	ws.ActivePageID = welcome.ID
	return ws
}

// MemberRole returns the role the user holds, defaulting to CanView for
// non-members (read-only gating, not real access control).
func (w Workspace) MemberRole(userID string) AccessLevel {
	for _, m := range w.Members {
		if m.ID == userID {
			return m.Role
		}
	}
	return CanView
}

// HasMember reports membership by user id or email.
func (w Workspace) HasMember(userID, email string) bool {
	for _, m := range w.Members {
		if m.ID == userID || m.Email == email {
			return true
		}
	}
	return false
}

// FindPage returns the page with the given id, trashed or not.
func (w Workspace) FindPage(id string) (page.Page, bool) {
	for _, p := range w.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return page.Page{}, false
}

// ActivePages returns the non-deleted pages in collection order.
func (w Workspace) ActivePages() []page.Page {
	var out []page.Page
	for _, p := range w.Pages {
		if !p.Deleted() {
			out = append(out, p)
		}
	}
	return out
}

// AddPage appends a page and makes it active.
func (w Workspace) AddPage(p page.Page) Workspace {
	pages := make([]page.Page, 0, len(w.Pages)+1)
	pages = append(pages, w.Pages...)
	pages = append(pages, p)
	w.Pages = pages
	w.ActivePageID = p.ID
	return w
}

// UpdatePage replaces the page with the same id, refreshing its update
// timestamp, or appends it when unknown.
func (w Workspace) UpdatePage(p page.Page, now time.Time) Workspace {
	p = p.Touch(now)
	pages := make([]page.Page, len(w.Pages))
	copy(pages, w.Pages)
	for i := range pages {
		if pages[i].ID == p.ID {
			pages[i] = p
			w.Pages = pages
			return w
		}
	}
	w.Pages = append(pages, p)
	return w
}
