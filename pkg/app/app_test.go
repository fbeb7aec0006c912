package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ateliernotes/atelier/pkg/store"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string            { return c.path }
func (c testConfig) GeminiAPIKey() string        { return "" }
func (c testConfig) PollInterval() time.Duration { return time.Second }
func (c testConfig) Lookback() time.Duration     { return 24 * time.Hour }

func testService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(p)
}

func TestBootstrapCreatesDefaultWorkspace(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	session, err := svc.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if session.User.ID == "" {
		t.Fatal("no user created")
	}
	if len(session.Workspaces) != 1 {
		t.Fatalf("workspaces = %d, want 1", len(session.Workspaces))
	}
	if len(session.Workspaces[0].Pages) != 1 {
		t.Fatal("starter workspace should have a welcome page")
	}

	// A second bootstrap resumes the same account.
	again, err := svc.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if again.User.ID != session.User.ID {
		t.Fatal("bootstrap created a second account")
	}
	if len(again.Workspaces) != 1 {
		t.Fatalf("workspaces = %d after resume, want 1", len(again.Workspaces))
	}
}

func TestCreateSubPageUsesGivenID(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]
	parent := ws.Pages[0]

	if err := svc.CreateSubPage(ctx, ws.ID, parent.ID, "child-id", "Untitled"); err != nil {
		t.Fatalf("create sub page: %v", err)
	}
	got, err := svc.Persistence.GetWorkspace(ctx, ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	child, ok := got.FindPage("child-id")
	if !ok {
		t.Fatal("child page missing")
	}
	if child.ParentID != parent.ID {
		t.Fatalf("parent = %q, want %q", child.ParentID, parent.ID)
	}
	if got.ActivePageID != "child-id" {
		t.Fatal("new sub page should become active")
	}
}

func TestMovePageRejectsCycle(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]
	root := ws.Pages[0]

	child, err := svc.CreatePage(ctx, ws.ID, root.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.MovePage(ctx, ws.ID, root.ID, child.ID); !errors.Is(err, ErrWouldCycle) {
		t.Fatalf("err = %v, want ErrWouldCycle", err)
	}
	if err := svc.MovePage(ctx, ws.ID, child.ID, ""); err != nil {
		t.Fatalf("move to root: %v", err)
	}
}

func TestTrashAndRestore(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]
	id := ws.Pages[0].ID

	if err := svc.TrashPage(ctx, ws.ID, id); err != nil {
		t.Fatalf("trash: %v", err)
	}
	pages, _ := svc.Pages(ctx, ws.ID)
	if len(pages) != 0 {
		t.Fatalf("live pages = %d, want 0", len(pages))
	}

	if err := svc.RestorePage(ctx, ws.ID, id); err != nil {
		t.Fatalf("restore: %v", err)
	}
	pages, _ = svc.Pages(ctx, ws.ID)
	if len(pages) != 1 {
		t.Fatalf("live pages = %d, want 1", len(pages))
	}
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]
	id := ws.Pages[0].ID

	was := ws.Pages[0].Favorite
	if err := svc.ToggleFavorite(ctx, ws.ID, id); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	got, _ := svc.Persistence.GetWorkspace(ctx, ws.ID)
	p, _ := got.FindPage(id)
	if p.Favorite == was {
		t.Fatal("favorite flag did not flip")
	}
}

func TestCreatePageFromTemplate(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]

	p, err := svc.CreatePageFromTemplate(ctx, ws.ID, workspace.TemplateMeeting)
	if err != nil {
		t.Fatalf("create from template: %v", err)
	}
	if len(p.Blocks) < 2 {
		t.Fatalf("template page has %d blocks", len(p.Blocks))
	}
	got, _ := svc.Persistence.GetWorkspace(ctx, ws.ID)
	if _, ok := got.FindPage(p.ID); !ok {
		t.Fatal("template page not persisted")
	}

	if _, err := svc.CreatePageFromTemplate(ctx, ws.ID, "bogus"); err == nil {
		t.Fatal("unknown template should error")
	}
}

func TestCommentOnPage(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]
	id := ws.Pages[0].ID

	p, err := svc.CommentOnPage(ctx, ws.ID, id, session.User, "looks good")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(p.Comments) != 1 || p.Comments[0].Content != "looks good" {
		t.Fatalf("comments = %+v", p.Comments)
	}

	got, _ := svc.Persistence.GetWorkspace(ctx, ws.ID)
	stored, _ := got.FindPage(id)
	if len(stored.Comments) != 1 {
		t.Fatal("comment not persisted")
	}
}

func TestInviteAndResume(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)
	session, _ := svc.Bootstrap(ctx)
	ws := session.Workspaces[0]

	guest, err := svc.Persistence.RegisterUser(ctx, "Grace", "grace@example.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Invite(ctx, session.User, ws.ID, guest.Email, workspace.CanEdit); err != nil {
		t.Fatalf("invite: %v", err)
	}

	guestSession, err := svc.Resume(ctx, guest)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if len(guestSession.Invitations) != 1 {
		t.Fatalf("invitations = %d, want 1", len(guestSession.Invitations))
	}
	if len(guestSession.Workspaces) != 0 {
		t.Fatal("guest should not see the workspace before accepting")
	}

	if err := svc.Persistence.AcceptInvitation(ctx, guestSession.Invitations[0].ID, guest); err != nil {
		t.Fatalf("accept: %v", err)
	}
	guestSession, _ = svc.Resume(ctx, guest)
	if len(guestSession.Workspaces) != 1 {
		t.Fatal("guest should see the workspace after accepting")
	}
}
