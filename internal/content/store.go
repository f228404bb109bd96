// Package content reads posts from and writes comments to the headless content store.
package content

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/models"
)

// ErrNotFound is returned when no post matches a slug.
var ErrNotFound = errors.New("content: post not found")

// Store is the contract every content backend fulfils.
type Store interface {
	// Slugs lists the slug of every known post.
	Slugs(ctx context.Context) ([]string, error)
	// Posts lists every post without body or comments, newest first.
	Posts(ctx context.Context) ([]models.Post, error)
	// PostBySlug returns the post with its author and approved comments, or ErrNotFound.
	PostBySlug(ctx context.Context, slug string) (*models.Post, error)
	// CreateComment records an unapproved comment and returns its id.
	CreateComment(ctx context.Context, c NewComment) (string, error)
}

// NewComment is a pending comment submitted by a reader.
type NewComment struct {
	PostID  string
	Name    string
	Email   string
	Comment string
}

// APIError is a non-2xx answer from a remote content API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content api: status %d: %s", e.StatusCode, e.Message)
}
