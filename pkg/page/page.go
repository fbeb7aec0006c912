// Package page models a document: an ordered block sequence plus comments,
// display flags, and the weak parent link that forms the page tree.
package page

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernotes/atelier/pkg/block"
)

// Comment is an append-only annotation on a page. Comments are never edited
// or removed once created.
type Comment struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName"`
	UserInitials string          `json:"userInitials"`
	Content      string          `json:"content"`
	Timestamp    block.Timestamp `json:"timestamp"`
}

// Page is a single document owned by a workspace. Block order is significant
// and user-controlled. A non-nil DeletedAt marks the page as trashed.
type Page struct {
	ID         string           `json:"id"`
	ParentID   string           `json:"parentId,omitempty"`
	Title      string           `json:"title"`
	Icon       string           `json:"icon,omitempty"`
	CoverStyle string           `json:"coverStyle,omitempty"`
	FullWidth  bool             `json:"fullWidth,omitempty"`
	SmallText  bool             `json:"smallText,omitempty"`
	Blocks     []block.Block    `json:"blocks"`
	Comments   []Comment        `json:"comments,omitempty"`
	UpdatedAt  block.Timestamp  `json:"updatedAt"`
	DeletedAt  *block.Timestamp `json:"deletedAt,omitempty"`
	Favorite   bool             `json:"favorite,omitempty"`
}

// New creates a page with a single empty text block, optionally parented.
func New(parentID string, now time.Time) Page {
	return Page{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Blocks:    []block.Block{block.New(block.Text, "")},
		UpdatedAt: block.Timestamp{Time: now},
	}
}

// Deleted reports whether the page is in the trash.
func (p Page) Deleted() bool {
	return p.DeletedAt != nil
}

// Empty reports whether the page still holds only its initial empty block,
// which is when template pickers are offered.
func (p Page) Empty() bool {
	return len(p.Blocks) == 1 && p.Blocks[0].Type == block.Text && p.Blocks[0].Content == ""
}

// Touch returns the page with a refreshed update timestamp.
func (p Page) Touch(now time.Time) Page {
	p.UpdatedAt = block.Timestamp{Time: now}
	return p
}

// AddComment appends a comment authored at now.
func (p Page) AddComment(userID, userName, userInitials, content string, now time.Time) Page {
	comments := make([]Comment, 0, len(p.Comments)+1)
	comments = append(comments, p.Comments...)
	comments = append(comments, Comment{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserName:     userName,
		UserInitials: userInitials,
		Content:      content,
		Timestamp:    block.Timestamp{Time: now},
	})
	p.Comments = comments
	return p
}

// FindBlock returns the index of the block with the given id, or -1.
func (p Page) FindBlock(id string) int {
	for i, b := range p.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// DisplayTitle falls back to a stand-in for untitled pages.
func (p Page) DisplayTitle() string {
	if p.Title == "" {
		return "Untitled"
	}
	return p.Title
}
