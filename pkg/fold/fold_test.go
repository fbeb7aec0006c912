package fold

import (
	"testing"

	"github.com/ateliernotes/atelier/pkg/block"
)

func toggle(content string, indent int, collapsed bool) block.Block {
	b := block.New(block.Toggle, content)
	b.Indent = indent
	b.Meta = &block.Meta{Collapsed: collapsed}
	return b
}

func text(content string, indent int) block.Block {
	b := block.New(block.Text, content)
	b.Indent = indent
	return b
}

func contents(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Block.Content)
	}
	return out
}

func expect(t *testing.T, got []Item, want ...string) {
	t.Helper()
	gotC := contents(got)
	if len(gotC) != len(want) {
		t.Fatalf("visible = %v, want %v", gotC, want)
	}
	for i := range want {
		if gotC[i] != want[i] {
			t.Fatalf("visible = %v, want %v", gotC, want)
		}
	}
}

func TestVisibleNoCollapse(t *testing.T) {
	blocks := []block.Block{
		text("a", 0),
		toggle("b", 0, false),
		text("c", 1),
	}
	expect(t, Visible(blocks), "a", "b", "c")
}

func TestVisibleHidesNestedBlocks(t *testing.T) {
	blocks := []block.Block{
		toggle("head", 0, true),
		text("child", 1),
		text("grandchild", 2),
		text("after", 0),
	}
	got := Visible(blocks)
	expect(t, got, "head", "after")
	if got[1].Index != 3 {
		t.Fatalf("after index = %d, want 3", got[1].Index)
	}
}

func TestVisibleEqualIndentEndsCollapse(t *testing.T) {
	blocks := []block.Block{
		toggle("head", 1, true),
		text("child", 2),
		text("sibling", 1),
	}
	expect(t, Visible(blocks), "head", "sibling")
}

func TestVisibleNestedCollapsedToggle(t *testing.T) {
	// A collapsed toggle hidden inside another collapsed toggle must not
	// extend the hidden region past its parent's boundary.
	blocks := []block.Block{
		toggle("outer", 0, true),
		toggle("inner", 1, true),
		text("deep", 2),
		text("after", 0),
	}
	expect(t, Visible(blocks), "outer", "after")
}

func TestVisibleExpandedToggleHidesNothing(t *testing.T) {
	blocks := []block.Block{
		toggle("head", 0, false),
		text("child", 1),
	}
	expect(t, Visible(blocks), "head", "child")
}

func TestVisibleConsecutiveCollapsedSiblings(t *testing.T) {
	blocks := []block.Block{
		toggle("one", 0, true),
		text("hidden1", 1),
		toggle("two", 0, true),
		text("hidden2", 1),
		text("tail", 0),
	}
	expect(t, Visible(blocks), "one", "two", "tail")
}
