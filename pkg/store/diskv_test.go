package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ateliernotes/atelier/pkg/page"
	"github.com/ateliernotes/atelier/pkg/workspace"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string            { return c.path }
func (c testConfig) GeminiAPIKey() string        { return "" }
func (c testConfig) PollInterval() time.Duration { return time.Second }
func (c testConfig) Lookback() time.Duration     { return 24 * time.Hour }

func testStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	u, err := p.RegisterUser(ctx, "Ada Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Initials != "AL" {
		t.Fatalf("initials = %q, want AL", u.Initials)
	}

	got, err := p.Login(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned %q, want %q", got.ID, u.ID)
	}

	if _, err := p.RegisterUser(ctx, "Other", "ada@example.com"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate register err = %v, want ErrEmailTaken", err)
	}
	if _, err := p.Login(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing login err = %v, want ErrNotFound", err)
	}
}

func TestWorkspaceRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	u, err := p.RegisterUser(ctx, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ws := workspace.Default(u, time.Now())
	if err := p.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := p.GetWorkspace(ctx, ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != ws.Name || len(got.Pages) != 1 {
		t.Fatalf("got %+v", got)
	}

	mine, err := p.GetWorkspacesForUser(ctx, u.ID, u.Email)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("workspaces = %d, want 1", len(mine))
	}
	other, err := p.GetWorkspacesForUser(ctx, "stranger", "s@example.com")
	if err != nil {
		t.Fatalf("for stranger: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("stranger sees %d workspaces", len(other))
	}
}

func TestAddAndUpdatePage(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	u, _ := p.RegisterUser(ctx, "Ada", "ada@example.com")
	ws := workspace.Default(u, time.Now())
	if err := p.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("create: %v", err)
	}

	pg := page.New("", time.Now())
	pg.Title = "Plans"
	if err := p.AddPage(ctx, ws.ID, pg); err != nil {
		t.Fatalf("add page: %v", err)
	}

	pg.Title = "Plans v2"
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if err := p.UpdatePage(ctx, ws.ID, pg, now); err != nil {
		t.Fatalf("update page: %v", err)
	}

	got, _ := p.GetWorkspace(ctx, ws.ID)
	found, ok := got.FindPage(pg.ID)
	if !ok || found.Title != "Plans v2" {
		t.Fatalf("page = %+v", found)
	}
	if !found.UpdatedAt.Equal(now) {
		t.Fatalf("updatedAt = %v, want %v", found.UpdatedAt, now)
	}
}

func TestInvitationLifecycle(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	owner, _ := p.RegisterUser(ctx, "Ada", "ada@example.com")
	guest, _ := p.RegisterUser(ctx, "Grace Hopper", "grace@example.com")
	ws := workspace.Default(owner, time.Now())
	if err := p.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("create: %v", err)
	}

	inv := workspace.Invitation{
		FromName:    owner.Name,
		ToEmail:     guest.Email,
		WorkspaceID: ws.ID,
		Role:        workspace.CanEdit,
	}
	if err := p.CreateInvitation(ctx, inv); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := p.CreateInvitation(ctx, inv); !errors.Is(err, ErrAlreadyInvited) {
		t.Fatalf("second invite err = %v, want ErrAlreadyInvited", err)
	}
	if err := p.CreateInvitation(ctx, workspace.Invitation{ToEmail: owner.Email, WorkspaceID: ws.ID}); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("member invite err = %v, want ErrAlreadyMember", err)
	}

	pending, err := p.GetPendingInvitations(ctx, guest.Email)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %v err = %v", pending, err)
	}

	if err := p.AcceptInvitation(ctx, pending[0].ID, guest); err != nil {
		t.Fatalf("accept: %v", err)
	}
	got, _ := p.GetWorkspace(ctx, ws.ID)
	if got.MemberRole(guest.ID) != workspace.CanEdit {
		t.Fatalf("role = %v, want CanEdit", got.MemberRole(guest.ID))
	}
	pending, _ = p.GetPendingInvitations(ctx, guest.Email)
	if len(pending) != 0 {
		t.Fatalf("pending after accept = %v", pending)
	}
}

func TestMemberManagement(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	owner, _ := p.RegisterUser(ctx, "Ada", "ada@example.com")
	ws := workspace.New("Team", "📁", "Work", owner)
	ws.Members = append(ws.Members, workspace.Member{ID: "m2", Email: "m2@example.com", Role: workspace.CanView})
	if err := p.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := p.UpdateMemberRole(ctx, ws.ID, "m2", workspace.CanEdit); err != nil {
		t.Fatalf("role: %v", err)
	}
	got, _ := p.GetWorkspace(ctx, ws.ID)
	if got.MemberRole("m2") != workspace.CanEdit {
		t.Fatalf("role = %v", got.MemberRole("m2"))
	}

	if err := p.RemoveMember(ctx, ws.ID, "m2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = p.GetWorkspace(ctx, ws.ID)
	if len(got.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(got.Members))
	}

	if err := p.UpdateMemberRole(ctx, ws.ID, "m2", workspace.CanView); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	u, _ := p.RegisterUser(ctx, "Ada", "ada@example.com")
	ws := workspace.Default(u, time.Now())
	if err := p.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("create: %v", err)
	}

	data, err := p.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var d map[string]json.RawMessage
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("export is not json: %v", err)
	}
	for _, key := range []string{"users", "workspaces", "invitations"} {
		if _, ok := d[key]; !ok {
			t.Fatalf("export missing %q", key)
		}
	}

	p2 := testStore(t)
	if err := p2.ImportJSON(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := p2.GetWorkspace(ctx, ws.ID)
	if err != nil || got.Name != ws.Name {
		t.Fatalf("imported workspace = %+v err = %v", got, err)
	}
	if _, err := p2.Login(ctx, u.Email); err != nil {
		t.Fatalf("imported user missing: %v", err)
	}
}

func TestImportRejectsMalformedDump(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	u, _ := p.RegisterUser(ctx, "Ada", "ada@example.com")

	if err := p.ImportJSON(ctx, []byte(`{"workspaces": []}`)); err == nil {
		t.Fatal("expected error for dump without users")
	}
	if err := p.ImportJSON(ctx, []byte(`not json`)); err == nil {
		t.Fatal("expected error for non-json dump")
	}

	// Existing data must survive a rejected import.
	if _, err := p.Login(ctx, u.Email); err != nil {
		t.Fatalf("user lost after failed import: %v", err)
	}
}

func TestGetWorkspacePersistsTrashCollection(t *testing.T) {
	ctx := context.Background()
	p := testStore(t)

	u, err := p.RegisterUser(ctx, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ws := workspace.Default(u, time.Now())
	expired := page.New("", time.Now())
	ws = ws.AddPage(expired)
	ws = ws.SoftDeletePage(expired.ID, time.Now().Add(-workspace.TrashRetention-time.Hour))
	if err := p.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := p.GetWorkspace(ctx, ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, found := got.FindPage(expired.ID); found {
		t.Fatal("expired trashed page survived workspace load")
	}

	// The pruned copy must be what is on disk, not just what was returned.
	raw, err := p.(*persistence).d.Read(key(kindWorkspace, ws.ID))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	var onDisk workspace.Workspace
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, found := onDisk.FindPage(expired.ID); found {
		t.Fatal("expired trashed page still on disk")
	}
}
