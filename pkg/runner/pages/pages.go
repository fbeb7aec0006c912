package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/printers"
	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type Pages struct {
	ShowID   bool
	Trash    bool
	Restore  string // page id to pull back from the trash
	Remove   string // page id to delete permanently
	Move     string // page id to reparent
	Under    string // new parent id for --move, empty moves to root
	Template string // starter layout for a new page

	Persistence store.Persistence
}

func (n *Pages) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not list pages, no persistence")
	}
	svc := app.New(n.Persistence)
	session, err := svc.Bootstrap(ctx)
	if err != nil {
		return err
	}

	acted, err := n.act(ctx, svc, session)
	if err != nil {
		return err
	}
	if acted {
		// Reload so the listing reflects the change just made.
		if session, err = svc.Resume(ctx, session.User); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	for _, w := range session.Workspaces {
		pp.Workspace(w)
		if n.Trash {
			pp.Trash(w.TrashedPages(), svc.Now())
			continue
		}
		pp.PageTree(w.ActivePages())
	}

	pp.Invitations(session.Invitations)
	return nil
}

func (n *Pages) act(ctx context.Context, svc *app.Service, session app.Session) (bool, error) {
	switch {
	case n.Restore != "":
		wsID, err := workspaceForPage(session, n.Restore)
		if err != nil {
			return false, err
		}
		return true, svc.RestorePage(ctx, wsID, n.Restore)
	case n.Remove != "":
		wsID, err := workspaceForPage(session, n.Remove)
		if err != nil {
			return false, err
		}
		return true, svc.DeletePageForever(ctx, wsID, n.Remove)
	case n.Move != "":
		wsID, err := workspaceForPage(session, n.Move)
		if err != nil {
			return false, err
		}
		return true, svc.MovePage(ctx, wsID, n.Move, n.Under)
	case n.Template != "":
		if len(session.Workspaces) == 0 {
			return false, errors.New("no workspace to add a page to")
		}
		_, err := svc.CreatePageFromTemplate(ctx, session.Workspaces[0].ID, workspace.TemplateKind(n.Template))
		return true, err
	}
	return false, nil
}

// workspaceForPage finds which of the session's workspaces holds the page.
func workspaceForPage(session app.Session, pageID string) (string, error) {
	for _, w := range session.Workspaces {
		if _, ok := w.FindPage(pageID); ok {
			return w.ID, nil
		}
	}
	return "", fmt.Errorf("no page %q in your workspaces", pageID)
}
