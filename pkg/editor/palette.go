package editor

import (
	"strings"

	"github.com/ateliernotes/atelier/pkg/block"
)

// Action tags what executing a command does beyond a plain type conversion.
type Action int

const (
	// ActionConvert replaces the active block's type and clears its content.
	ActionConvert Action = iota
	// ActionColor sets or clears the block's text color / highlight class.
	ActionColor
	// ActionSubPage creates a child page and links it from the block.
	ActionSubPage
	// ActionAskAI opens the AI prompt surface bound to the block.
	ActionAskAI
)

// Category groups commands for display.
type Category string

const (
	CategoryBasic Category = "basic"
	CategoryMedia Category = "media"
	CategoryColor Category = "color"
)

// Command is one entry of the fixed slash-command catalog.
type Command struct {
	ID       string
	Label    string
	Desc     string
	Category Category
	Action   Action
	Target   block.Type // for ActionConvert
	Color    string     // for ActionColor; empty resets
}

var catalog = []Command{
	{ID: "text", Label: "Text", Desc: "Just start writing with plain text.", Category: CategoryBasic, Target: block.Text},
	{ID: "page", Label: "Page", Desc: "Embed a sub-page inside this page.", Category: CategoryBasic, Action: ActionSubPage},
	{ID: "h1", Label: "Heading 1", Desc: "Big section heading.", Category: CategoryBasic, Target: block.H1},
	{ID: "h2", Label: "Heading 2", Desc: "Medium section heading.", Category: CategoryBasic, Target: block.H2},
	{ID: "h3", Label: "Heading 3", Desc: "Small section heading.", Category: CategoryBasic, Target: block.H3},
	{ID: "todo", Label: "To-do list", Desc: "Track tasks with a checkbox.", Category: CategoryBasic, Target: block.Todo},
	{ID: "bullet", Label: "Bulleted list", Desc: "Create a simple bulleted list.", Category: CategoryBasic, Target: block.Bullet},
	{ID: "number", Label: "Numbered list", Desc: "Create a numbered list.", Category: CategoryBasic, Target: block.Number},
	{ID: "toggle", Label: "Toggle list", Desc: "Toggles can hide and show content inside.", Category: CategoryBasic, Target: block.Toggle},
	{ID: "quote", Label: "Quote", Desc: "Capture a quote.", Category: CategoryBasic, Target: block.Quote},
	{ID: "image", Label: "Image", Desc: "Embed an image by URL.", Category: CategoryMedia, Target: block.Image},
	{ID: "video", Label: "Video", Desc: "Embed from YouTube or a direct URL.", Category: CategoryMedia, Target: block.Video},
	{ID: "map", Label: "Map", Desc: "Embed a map location.", Category: CategoryMedia, Target: block.Map},
	{ID: "table", Label: "Table", Desc: "Insert a simple table.", Category: CategoryBasic, Target: block.Table},
	{ID: "calendar", Label: "Calendar", Desc: "Insert a calendar of dated items.", Category: CategoryBasic, Target: block.Calendar},
	{ID: "code", Label: "Code", Desc: "Capture a code snippet.", Category: CategoryBasic, Target: block.Code},
	{ID: "callout", Label: "Callout", Desc: "Make writing stand out.", Category: CategoryBasic, Target: block.Callout},
	{ID: "divider", Label: "Divider", Desc: "Visually divide blocks.", Category: CategoryBasic, Target: block.Divider},
	{ID: "ask_ai", Label: "Ask AI", Desc: "Let the assistant draft for you.", Category: CategoryMedia, Action: ActionAskAI},
	{ID: "color_red", Label: "Red", Desc: "Color text red.", Category: CategoryColor, Action: ActionColor, Color: "red"},
	{ID: "color_blue", Label: "Blue", Desc: "Color text blue.", Category: CategoryColor, Action: ActionColor, Color: "blue"},
	{ID: "color_green", Label: "Green", Desc: "Color text green.", Category: CategoryColor, Action: ActionColor, Color: "green"},
	{ID: "bg_yellow", Label: "Yellow Background", Desc: "Highlight text yellow.", Category: CategoryColor, Action: ActionColor, Color: "bg-yellow"},
	{ID: "bg_red", Label: "Red Background", Desc: "Highlight text red.", Category: CategoryColor, Action: ActionColor, Color: "bg-red"},
	{ID: "reset_color", Label: "Default Color", Desc: "Remove color.", Category: CategoryColor, Action: ActionColor, Color: ""},
}

// Catalog returns the full command list in fixed display order.
func Catalog() []Command {
	out := make([]Command, len(catalog))
	copy(out, catalog)
	return out
}

// FilterCommands returns catalog entries whose label or id contains the
// filter, case-insensitively. An empty filter returns the whole catalog.
// Matches keep catalog order; there is no fuzzy scoring.
func FilterCommands(filter string) []Command {
	if filter == "" {
		return Catalog()
	}
	needle := strings.ToLower(filter)
	var out []Command
	for _, c := range catalog {
		if strings.Contains(strings.ToLower(c.Label), needle) || strings.Contains(c.ID, needle) {
			out = append(out, c)
		}
	}
	return out
}
