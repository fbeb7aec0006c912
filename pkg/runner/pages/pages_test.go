package pages

import (
	"context"
	"testing"
	"time"

	"github.com/ateliernotes/atelier/pkg/app"
	"github.com/ateliernotes/atelier/pkg/store"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string            { return c.path }
func (c testConfig) GeminiAPIKey() string        { return "" }
func (c testConfig) PollInterval() time.Duration { return time.Second }
func (c testConfig) Lookback() time.Duration     { return 24 * time.Hour }

func setup(t *testing.T) (*app.Service, app.Session) {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := app.New(p)
	session, err := svc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return svc, session
}

func TestRestoreFlagPullsPageFromTrash(t *testing.T) {
	ctx := context.Background()
	svc, session := setup(t)
	ws := session.Workspaces[0]
	id := ws.Pages[0].ID

	if err := svc.TrashPage(ctx, ws.ID, id); err != nil {
		t.Fatalf("trash: %v", err)
	}
	session, _ = svc.Resume(ctx, session.User)

	n := &Pages{Restore: id, Persistence: svc.Persistence}
	acted, err := n.act(ctx, svc, session)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if !acted {
		t.Fatal("restore flag should act")
	}
	live, _ := svc.Pages(ctx, ws.ID)
	if len(live) != 1 {
		t.Fatalf("live pages = %d, want 1", len(live))
	}
}

func TestRemoveFlagDeletesForever(t *testing.T) {
	ctx := context.Background()
	svc, session := setup(t)
	ws := session.Workspaces[0]
	id := ws.Pages[0].ID

	n := &Pages{Remove: id, Persistence: svc.Persistence}
	if _, err := n.act(ctx, svc, session); err != nil {
		t.Fatalf("act: %v", err)
	}
	got, _ := svc.Persistence.GetWorkspace(ctx, ws.ID)
	if _, found := got.FindPage(id); found {
		t.Fatal("page should be gone")
	}
}

func TestTemplateFlagSeedsNewPage(t *testing.T) {
	ctx := context.Background()
	svc, session := setup(t)

	n := &Pages{Template: "journal", Persistence: svc.Persistence}
	acted, err := n.act(ctx, svc, session)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if !acted {
		t.Fatal("template flag should act")
	}
	live, _ := svc.Pages(ctx, session.Workspaces[0].ID)
	if len(live) != 2 {
		t.Fatalf("live pages = %d, want 2", len(live))
	}
}

func TestActOnUnknownPage(t *testing.T) {
	ctx := context.Background()
	svc, session := setup(t)

	n := &Pages{Move: "missing", Persistence: svc.Persistence}
	if _, err := n.act(ctx, svc, session); err == nil {
		t.Fatal("moving an unknown page should error")
	}
}
