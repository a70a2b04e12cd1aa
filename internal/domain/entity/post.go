package entity

import (
	"time"
)

// PostType discriminates top-level posts from comments. Both live in the
// posts table; a comment additionally carries the parent post id.
type PostType string

const (
	PostTypePost    PostType = "POST"
	PostTypeComment PostType = "COMMENT"
)

type Post struct {
	ID        string
	AuthorID  string
	Content   string
	Images    []string // object keys
	Type      PostType
	ParentID  string // set only for comments
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExtendedPost is a post joined with its author view and derived counters.
type ExtendedPost struct {
	Post
	Author      UserView
	QtyLikes    int
	QtyRetweets int
	QtyComments int
}
