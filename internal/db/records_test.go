package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
)

func TestPostToModel(t *testing.T) {
	created := time.Date(2023, time.January, 2, 3, 4, 5, 0, time.UTC)
	rec := Post{
		ID:           "p1",
		Slug:         "hello",
		Title:        "Hello",
		Description:  "Intro",
		MainImageRef: "image-abc-10x10-jpg",
		Body:         []models.Block{{Type: "block", Style: "h1"}},
		Author:       Author{ID: "a1", Name: "Jane", ImageRef: "https://example.com/jane.png"},
		CreatedAt:    created,
	}

	post := rec.ToModel([]Comment{{ID: "c1", PostID: "p1", Name: "Ann", Comment: "Hi", Approved: true}})

	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "hello", post.Slug.Current)
	assert.Equal(t, created, post.CreatedAt)
	assert.Equal(t, "image-abc-10x10-jpg", post.MainImage.Asset.Ref)
	assert.Equal(t, "Jane", post.Author.Name)
	assert.Equal(t, "https://example.com/jane.png", post.Author.Image.Asset.Ref)
	require.Len(t, post.Comments, 1)
	assert.True(t, post.Comments[0].VisibleTo("p1"))
}

func TestPostToModel_NoImages(t *testing.T) {
	post := Post{ID: "p1"}.ToModel(nil)
	assert.Equal(t, "", post.MainImage.Asset.Ref)
	assert.Equal(t, "", post.Author.Image.Asset.Ref)
	assert.NotNil(t, post.Comments)
}
