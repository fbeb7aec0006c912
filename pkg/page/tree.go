package page

// MaxAncestorDepth bounds parent-link walks. The page collection is assumed
// to be acyclic; the cap only guards against corrupted data.
const MaxAncestorDepth = 20

// Children returns the non-deleted pages whose parent is parentID, in
// collection order.
func Children(pages []Page, parentID string) []Page {
	var out []Page
	for _, p := range pages {
		if p.ParentID == parentID && !p.Deleted() {
			out = append(out, p)
		}
	}
	return out
}

// RootPages returns the non-deleted pages without a parent, in collection
// order.
func RootPages(pages []Page) []Page {
	var out []Page
	for _, p := range pages {
		if p.ParentID == "" && !p.Deleted() {
			out = append(out, p)
		}
	}
	return out
}

// AncestorChain walks parent links upward from p and returns the chain
// ordered root first, ending with p itself. The walk stops at a page with no
// parent, a missing or deleted parent, or after MaxAncestorDepth hops.
func AncestorChain(p Page, all []Page) []Page {
	chain := []Page{p}
	current := p
	for depth := 0; current.ParentID != "" && depth < MaxAncestorDepth; depth++ {
		parent, ok := findActive(all, current.ParentID)
		if !ok {
			break
		}
		chain = append([]Page{parent}, chain...)
		current = parent
	}
	return chain
}

// WouldCycle reports whether assigning parentID to the page with the given id
// would create a cycle. Used to reject bad parent assignments up front rather
// than defending against them later.
func WouldCycle(pages []Page, id, parentID string) bool {
	seen := 0
	current := parentID
	for current != "" && seen <= MaxAncestorDepth {
		if current == id {
			return true
		}
		parent, ok := findActive(pages, current)
		if !ok {
			return false
		}
		current = parent.ParentID
		seen++
	}
	return seen > MaxAncestorDepth
}

func findActive(pages []Page, id string) (Page, bool) {
	for _, p := range pages {
		if p.ID == id && !p.Deleted() {
			return p, true
		}
	}
	return Page{}, false
}
