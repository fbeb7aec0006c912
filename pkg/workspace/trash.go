package workspace

import (
	"time"

	"github.com/ateliernotes/atelier/pkg/block"
	"github.com/ateliernotes/atelier/pkg/page"
)

// TrashRetention is how long a soft-deleted page survives before workspace
// load garbage-collects it.
const TrashRetention = 3 * 24 * time.Hour

// SoftDeletePage marks the page as trashed. When it was active, the active
// page reference is cleared so the UI falls back to the home surface.
func (w Workspace) SoftDeletePage(id string, now time.Time) Workspace {
	pages := make([]page.Page, len(w.Pages))
	copy(pages, w.Pages)
	for i := range pages {
		if pages[i].ID == id {
			ts := block.Timestamp{Time: now}
			pages[i].DeletedAt = &ts
			w.Pages = pages
			if w.ActivePageID == id {
				w.ActivePageID = ""
			}
			return w
		}
	}
	return w
}

// RestorePage clears the trash marker. Unknown ids are a no-op.
func (w Workspace) RestorePage(id string) Workspace {
	pages := make([]page.Page, len(w.Pages))
	copy(pages, w.Pages)
	for i := range pages {
		if pages[i].ID == id {
			pages[i].DeletedAt = nil
			w.Pages = pages
			return w
		}
	}
	return w
}

// HardDeletePage removes the page from the collection entirely.
func (w Workspace) HardDeletePage(id string) Workspace {
	pages := make([]page.Page, 0, len(w.Pages))
	for _, p := range w.Pages {
		if p.ID != id {
			pages = append(pages, p)
		}
	}
	w.Pages = pages
	if w.ActivePageID == id {
		w.ActivePageID = ""
	}
	return w
}

// TrashedPages returns the pages currently in the trash.
func (w Workspace) TrashedPages() []page.Page {
	var out []page.Page
	for _, p := range w.Pages {
		if p.Deleted() {
			out = append(out, p)
		}
	}
	return out
}

// CollectTrash drops pages whose deletion timestamp is older than the
// retention window. Run on workspace load.
func (w Workspace) CollectTrash(now time.Time) Workspace {
	threshold := now.Add(-TrashRetention)
	pages := make([]page.Page, 0, len(w.Pages))
	for _, p := range w.Pages {
		if p.DeletedAt != nil && p.DeletedAt.Before(threshold) {
			continue
		}
		pages = append(pages, p)
	}
	w.Pages = pages
	return w
}
