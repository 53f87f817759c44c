package models

import (
	"time"

	"github.com/google/uuid"
)

// Discussion is a post on the discussion channel
type Discussion struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Symbol       string    `json:"symbol,omitempty"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment is a reply to a discussion
type Comment struct {
	ID           uuid.UUID `json:"id"`
	DiscussionID uuid.UUID `json:"discussion_id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}
