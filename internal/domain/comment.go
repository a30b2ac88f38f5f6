package domain

import (
	"time"

	"github.com/google/uuid"
)

const defaultCommentAuthor = "User"

// Comment is an immutable note on a task. It is owned by its task and has
// no life of its own in persistence.
type Comment struct {
	id        string
	content   string
	author    string
	createdAt time.Time
}

// NewComment creates a comment. Empty author defaults to "User".
func NewComment(content, author string) Comment {
	if author == "" {
		author = defaultCommentAuthor
	}
	return Comment{
		id:        uuid.NewString(),
		content:   content,
		author:    author,
		createdAt: time.Now().UTC(),
	}
}

func (c Comment) ID() string           { return c.id }
func (c Comment) Content() string      { return c.content }
func (c Comment) Author() string       { return c.author }
func (c Comment) CreatedAt() time.Time { return c.createdAt }

// CommentRecord is the persisted form of a Comment, embedded in its task's
// record.
type CommentRecord struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Comment) Record() CommentRecord {
	return CommentRecord{ID: c.id, Content: c.content, Author: c.author, CreatedAt: c.createdAt}
}

func ReconstituteComment(rec CommentRecord) Comment {
	return Comment{id: rec.ID, content: rec.Content, author: rec.Author, createdAt: rec.CreatedAt}
}
