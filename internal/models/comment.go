package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"_createdAt"`
	Post      Reference `json:"post"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
}

// VisibleTo reports whether c may be shown on the page of the post with id postID.
func (c Comment) VisibleTo(postID string) bool {
	return c.Approved && c.Post.Ref == postID
}

// VisibleComments keeps the approved comments that reference postID, in their original order.
func VisibleComments(postID string, comments []Comment) []Comment {
	visible := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.VisibleTo(postID) {
			visible = append(visible, c)
		}
	}
	return visible
}
