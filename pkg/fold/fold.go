// Package fold computes the rendered subset of a block sequence, hiding
// everything nested under collapsed toggle blocks.
package fold

import (
	"github.com/ateliernotes/atelier/pkg/block"
)

// Item pairs a visible block with its index in the full sequence, so callers
// can route edits back to the right position.
type Item struct {
	Block block.Block
	Index int
}

// Visible walks the sequence once, maintaining a stack of collapse-boundary
// indents. A block deeper than the top boundary is hidden. A visible
// collapsed toggle pushes its own indent, hiding everything deeper until the
// indent returns to or above that level. Toggles nested inside a collapsed
// toggle stay hidden without being tracked separately.
func Visible(blocks []block.Block) []Item {
	out := make([]Item, 0, len(blocks))
	var boundaries []int
	for i, b := range blocks {
		for len(boundaries) > 0 && b.Indent <= boundaries[len(boundaries)-1] {
			boundaries = boundaries[:len(boundaries)-1]
		}
		if len(boundaries) > 0 {
			continue
		}
		if b.Collapsed() {
			boundaries = append(boundaries, b.Indent)
		}
		out = append(out, Item{Block: b, Index: i})
	}
	return out
}
