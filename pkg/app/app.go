// Package app provides high-level operations over the workspace database so
// the TUI and the CLI runners can share logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ateliernotes/atelier/pkg/page"
	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

const (
	defaultUserName  = "Local User"
	defaultUserEmail = "local@atelier"
)

var errNoPersistence = errors.New("app: no persistence configured")

// ErrWouldCycle is returned when a page move would make it its own ancestor.
var ErrWouldCycle = errors.New("app: move would create a cycle")

// Service wraps persistence with the workspace-level operations.
type Service struct {
	Persistence store.Persistence
	Now         func() time.Time
}

// New wires a service with the wall clock.
func New(p store.Persistence) *Service {
	return &Service{Persistence: p, Now: time.Now}
}

// Session is the resolved account plus its workspaces.
type Session struct {
	User        workspace.User
	Workspaces  []workspace.Workspace
	Invitations []workspace.Invitation
}

// Bootstrap logs the local account in, creating it and a starter workspace
// on first run.
func (s *Service) Bootstrap(ctx context.Context) (Session, error) {
	if s.Persistence == nil {
		return Session{}, errNoPersistence
	}
	u, err := s.Persistence.Login(ctx, defaultUserEmail)
	if errors.Is(err, store.ErrNotFound) {
		u, err = s.Persistence.RegisterUser(ctx, defaultUserName, defaultUserEmail)
		if err != nil {
			return Session{}, err
		}
		ws := workspace.Default(u, s.Now())
		if err := s.Persistence.CreateWorkspace(ctx, ws); err != nil {
			return Session{}, err
		}
	} else if err != nil {
		return Session{}, err
	}
	return s.Resume(ctx, u)
}

// Resume reloads the session for an already known user.
func (s *Service) Resume(ctx context.Context, u workspace.User) (Session, error) {
	wss, err := s.Persistence.GetWorkspacesForUser(ctx, u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}
	invs, err := s.Persistence.GetPendingInvitations(ctx, u.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Workspaces: wss, Invitations: invs}, nil
}

// Pages returns the live pages of a workspace.
func (s *Service) Pages(ctx context.Context, workspaceID string) ([]page.Page, error) {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return w.ActivePages(), nil
}

// AllPages returns the live pages across every workspace the user can see.
func (s *Service) AllPages(ctx context.Context, u workspace.User) ([]page.Page, error) {
	wss, err := s.Persistence.GetWorkspacesForUser(ctx, u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	var out []page.Page
	for _, w := range wss {
		out = append(out, w.ActivePages()...)
	}
	return out, nil
}

// CreatePage adds a fresh page under the given parent and makes it active.
func (s *Service) CreatePage(ctx context.Context, workspaceID, parentID string) (page.Page, error) {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return page.Page{}, err
	}
	if parentID != "" {
		if _, ok := w.FindPage(parentID); !ok {
			return page.Page{}, store.ErrNotFound
		}
	}
	p := page.New(parentID, s.Now())
	if err := s.Persistence.UpdateWorkspace(ctx, w.AddPage(p)); err != nil {
		return page.Page{}, err
	}
	return p, nil
}

// CreateSubPage materializes a child page with a caller-chosen id, as
// produced by the editor's page command.
func (s *Service) CreateSubPage(ctx context.Context, workspaceID, parentID, pageID, title string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	p := page.New(parentID, s.Now())
	p.ID = pageID
	p.Title = title
	return s.Persistence.UpdateWorkspace(ctx, w.AddPage(p))
}

// CreatePageFromTemplate adds a root page seeded with a starter layout.
func (s *Service) CreatePageFromTemplate(ctx context.Context, workspaceID string, kind workspace.TemplateKind) (page.Page, error) {
	blocks := workspace.Template(kind, s.Now())
	if blocks == nil {
		return page.Page{}, fmt.Errorf("app: unknown template %q", kind)
	}
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return page.Page{}, err
	}
	p := page.New("", s.Now())
	p.Blocks = blocks
	if err := s.Persistence.UpdateWorkspace(ctx, w.AddPage(p)); err != nil {
		return page.Page{}, err
	}
	return p, nil
}

// CommentOnPage appends a comment by the user and saves the page.
func (s *Service) CommentOnPage(ctx context.Context, workspaceID, pageID string, u workspace.User, text string) (page.Page, error) {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return page.Page{}, err
	}
	p, ok := w.FindPage(pageID)
	if !ok {
		return page.Page{}, store.ErrNotFound
	}
	p = p.AddComment(u.ID, u.Name, u.Initials, text, s.Now())
	return p, s.Persistence.UpdatePage(ctx, workspaceID, p, s.Now())
}

// SavePage writes the page back, refreshing its update timestamp.
func (s *Service) SavePage(ctx context.Context, workspaceID string, p page.Page) error {
	return s.Persistence.UpdatePage(ctx, workspaceID, p, s.Now())
}

// MovePage reparents a page after checking the move keeps the tree acyclic.
func (s *Service) MovePage(ctx context.Context, workspaceID, pageID, newParentID string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	p, ok := w.FindPage(pageID)
	if !ok {
		return store.ErrNotFound
	}
	if page.WouldCycle(w.Pages, pageID, newParentID) {
		return ErrWouldCycle
	}
	p.ParentID = newParentID
	return s.Persistence.UpdatePage(ctx, workspaceID, p, s.Now())
}

// TrashPage soft-deletes, RestorePage undoes it, DeletePageForever removes it.
func (s *Service) TrashPage(ctx context.Context, workspaceID, pageID string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	return s.Persistence.UpdateWorkspace(ctx, w.SoftDeletePage(pageID, s.Now()))
}

func (s *Service) RestorePage(ctx context.Context, workspaceID, pageID string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	return s.Persistence.UpdateWorkspace(ctx, w.RestorePage(pageID))
}

func (s *Service) DeletePageForever(ctx context.Context, workspaceID, pageID string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	return s.Persistence.UpdateWorkspace(ctx, w.HardDeletePage(pageID))
}

// ToggleFavorite flips the page's favorite flag.
func (s *Service) ToggleFavorite(ctx context.Context, workspaceID, pageID string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	p, ok := w.FindPage(pageID)
	if !ok {
		return store.ErrNotFound
	}
	p.Favorite = !p.Favorite
	return s.Persistence.UpdatePage(ctx, workspaceID, p, s.Now())
}

// SetActivePage records which page the workspace opens on.
func (s *Service) SetActivePage(ctx context.Context, workspaceID, pageID string) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	w.ActivePageID = pageID
	return s.Persistence.UpdateWorkspace(ctx, w)
}

// Invite records a pending invitation from the user to an email address.
func (s *Service) Invite(ctx context.Context, from workspace.User, workspaceID, toEmail string, role workspace.AccessLevel) error {
	w, err := s.Persistence.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	return s.Persistence.CreateInvitation(ctx, workspace.Invitation{
		FromName:      from.Name,
		FromAvatar:    from.Initials,
		ToEmail:       toEmail,
		WorkspaceID:   w.ID,
		WorkspaceName: w.Name,
		WorkspaceIcon: w.Icon,
		Role:          role,
	})
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
