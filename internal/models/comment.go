package models

import "time"

type Comment struct {
	ID       int64     `json:"id"`
	ItemID   int64     `json:"itemId"`
	AuthorID int64     `json:"authorId"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// CommentView is the API shape of a comment with the author name resolved.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}
