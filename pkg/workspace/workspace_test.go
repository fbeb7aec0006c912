package workspace

import (
	"testing"
	"time"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
)

var owner = User{ID: "u1", Name: "Ada", Email: "ada@example.com", Initials: "AL"}

func TestDefaultWorkspaceHasWelcomePage(t *testing.T) {
	ws := Default(owner, time.Now())
	if len(ws.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(ws.Pages))
	}
	if ws.ActivePageID != ws.Pages[0].ID {
		t.Fatal("welcome page should be active")
	}
	if len(ws.Pages[0].Blocks) == 0 {
		t.Fatal("welcome page should be populated")
	}
	if ws.MemberRole(owner.ID) != Owner {
		t.Fatalf("owner role = %v", ws.MemberRole(owner.ID))
	}
}

func TestMemberRoleDefaultsToView(t *testing.T) {
	ws := New("X", "", "", owner)
	if got := ws.MemberRole("stranger"); got != CanView {
		t.Fatalf("role = %v, want CanView", got)
	}
}

func TestAccessLevelEditable(t *testing.T) {
	for _, a := range []AccessLevel{Owner, FullAccess, CanEdit} {
		if !a.Editable() {
			t.Errorf("%v should be editable", a)
		}
	}
	for _, a := range []AccessLevel{CanComment, CanView, NoAccess} {
		if a.Editable() {
			t.Errorf("%v should not be editable", a)
		}
	}
}

func TestUpdatePageTouches(t *testing.T) {
	ws := Default(owner, time.Now())
	p := ws.Pages[0]
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	ws = ws.UpdatePage(p, now)
	if !ws.Pages[0].UpdatedAt.Equal(now) {
		t.Fatalf("updatedAt = %v, want %v", ws.Pages[0].UpdatedAt, now)
	}
}

func TestUpdatePageAppendsUnknown(t *testing.T) {
	ws := Default(owner, time.Now())
	p := page.New("", time.Now())
	ws = ws.UpdatePage(p, time.Now())
	if len(ws.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(ws.Pages))
	}
}

func TestSoftDeleteClearsActivePage(t *testing.T) {
	now := time.Now()
	ws := Default(owner, now)
	id := ws.Pages[0].ID
	ws = ws.SoftDeletePage(id, now)
	if ws.ActivePageID != "" {
		t.Fatalf("activePageId = %q, want cleared", ws.ActivePageID)
	}
	if len(ws.ActivePages()) != 0 {
		t.Fatal("trashed page still listed as active")
	}
	if len(ws.TrashedPages()) != 1 {
		t.Fatal("page missing from trash")
	}
}

func TestRestorePage(t *testing.T) {
	now := time.Now()
	ws := Default(owner, now)
	id := ws.Pages[0].ID
	ws = ws.SoftDeletePage(id, now).RestorePage(id)
	if len(ws.TrashedPages()) != 0 {
		t.Fatal("trash should be empty after restore")
	}
}

func TestCollectTrashDropsExpired(t *testing.T) {
	now := time.Now()
	ws := Default(owner, now)
	keep := page.New("", now)
	ws = ws.AddPage(keep)
	old := ws.Pages[0].ID

	ws = ws.SoftDeletePage(old, now.Add(-TrashRetention-time.Hour))
	ws = ws.SoftDeletePage(keep.ID, now.Add(-time.Hour))

	ws = ws.CollectTrash(now)
	if _, ok := ws.FindPage(old); ok {
		t.Fatal("expired page should be gone")
	}
	if _, ok := ws.FindPage(keep.ID); !ok {
		t.Fatal("recent trash should survive")
	}
}

func TestHardDeletePage(t *testing.T) {
	now := time.Now()
	ws := Default(owner, now)
	id := ws.Pages[0].ID
	ws = ws.HardDeletePage(id)
	if len(ws.Pages) != 0 {
		t.Fatalf("pages = %d, want 0", len(ws.Pages))
	}
	if ws.ActivePageID != "" {
		t.Fatal("active page should be cleared")
	}
}

func TestTemplates(t *testing.T) {
	now := time.Now()
	for _, kind := range []TemplateKind{TemplateMeeting, TemplateProject, TemplateJournal} {
		blocks := Template(kind, now)
		if len(blocks) == 0 {
			t.Errorf("template %q is empty", kind)
		}
		if blocks[0].Type != block.H1 {
			t.Errorf("template %q should start with a heading", kind)
		}
	}
	if Template("bogus", now) != nil {
		t.Fatal("unknown template should be nil")
	}
}
