package page

import (
	"github.com/ateliernotes/atelier/pkg/block"
)

// Patch describes a partial block update. Nil fields keep the prior value.
// Meta, when non-nil, replaces the block's metadata wholesale; callers that
// want to preserve existing keys must Clone the prior Meta and patch that.
type Patch struct {
	Type    *block.Type
	Content *string
	Checked *bool
	Indent  *int
	Meta    *block.Meta
}

// UpdateBlock returns the page with the matching block replaced by its
// patched value. An unknown id is a no-op, not an error.
func UpdateBlock(p Page, id string, patch Patch) Page {
	idx := p.FindBlock(id)
	if idx < 0 {
		return p
	}
	blocks := cloneBlocks(p.Blocks)
	b := blocks[idx]
	if patch.Type != nil {
		b.Type = *patch.Type
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if patch.Checked != nil {
		b.Checked = *patch.Checked
	}
	if patch.Indent != nil {
		b.Indent = clampIndent(*patch.Indent)
	}
	if patch.Meta != nil {
		b.Meta = patch.Meta
	}
	blocks[idx] = b
	p.Blocks = blocks
	return p
}

// InsertAfter returns the page with b inserted immediately after index. The
// inserted block inherits the indent of the block it follows. An out-of-range
// index appends at the end.
func InsertAfter(p Page, index int, b block.Block) Page {
	if index >= 0 && index < len(p.Blocks) {
		b.Indent = p.Blocks[index].Indent
	}
	blocks := make([]block.Block, 0, len(p.Blocks)+1)
	if index < 0 || index >= len(p.Blocks) {
		blocks = append(blocks, p.Blocks...)
		blocks = append(blocks, b)
	} else {
		blocks = append(blocks, p.Blocks[:index+1]...)
		blocks = append(blocks, b)
		blocks = append(blocks, p.Blocks[index+1:]...)
	}
	p.Blocks = blocks
	return p
}

// DeleteBlock returns the page without the matching block. A page never
// shrinks below one block: deleting the sole remaining block resets it to an
// empty text block instead. Unknown ids are a no-op.
func DeleteBlock(p Page, id string) Page {
	idx := p.FindBlock(id)
	if idx < 0 {
		return p
	}
	if len(p.Blocks) <= 1 {
		blocks := cloneBlocks(p.Blocks)
		blocks[0].Content = ""
		blocks[0].Type = block.Text
		blocks[0].Checked = false
		p.Blocks = blocks
		return p
	}
	blocks := make([]block.Block, 0, len(p.Blocks)-1)
	blocks = append(blocks, p.Blocks[:idx]...)
	blocks = append(blocks, p.Blocks[idx+1:]...)
	p.Blocks = blocks
	return p
}

// Reorder moves the block at from to position to via a single
// remove-then-reinsert splice. Equal or out-of-range indices are a no-op.
// The moved block keeps its indent as-is.
func Reorder(p Page, from, to int) Page {
	n := len(p.Blocks)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return p
	}
	blocks := cloneBlocks(p.Blocks)
	moved := blocks[from]
	blocks = append(blocks[:from], blocks[from+1:]...)
	rest := append(blocks[:to:to], moved)
	blocks = append(rest, blocks[to:]...)
	p.Blocks = blocks
	return p
}

func clampIndent(indent int) int {
	if indent < 0 {
		return 0
	}
	if indent > block.MaxIndent {
		return block.MaxIndent
	}
	return indent
}

func cloneBlocks(blocks []block.Block) []block.Block {
	out := make([]block.Block, len(blocks))
	copy(out, blocks)
	return out
}
