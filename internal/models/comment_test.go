package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisibleComments(t *testing.T) {
	comments := []Comment{
		{ID: "c1", Post: Reference{Ref: "post-1"}, Approved: true, Name: "Ann"},
		{ID: "c2", Post: Reference{Ref: "post-1"}, Approved: false, Name: "Bob"},
		{ID: "c3", Post: Reference{Ref: "post-2"}, Approved: true, Name: "Cid"},
		{ID: "c4", Post: Reference{Ref: "post-1"}, Approved: true, Name: "Dee"},
	}

	visible := VisibleComments("post-1", comments)

	ids := make([]string, len(visible))
	for i, c := range visible {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"c1", "c4"}, ids)
}

func TestVisibleComments_Empty(t *testing.T) {
	assert.Empty(t, VisibleComments("post-1", nil))
	assert.NotNil(t, VisibleComments("post-1", nil))
}

func TestPublishedDate(t *testing.T) {
	p := Post{CreatedAt: time.Date(2022, time.March, 7, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, "3/7/2022", p.PublishedDate())
	assert.Equal(t, "", Post{}.PublishedDate())
}
