package models

import (
	"time"
)

// Post is a read-only snapshot of a post document as the page needs it.
type Post struct {
	ID          string    `json:"_id"`
	CreatedAt   time.Time `json:"_createdAt"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MainImage   Image     `json:"mainImage"`
	Slug        Slug      `json:"slug"`
	Body        []Block   `json:"body"`
	Author      Author    `json:"author"`
	Comments    []Comment `json:"comments"`
}

type Slug struct {
	Current string `json:"current"`
}

type Author struct {
	Name  string `json:"name"`
	Image Image  `json:"image"`
}

// Image holds an asset reference, e.g. "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg".
type Image struct {
	Type  string    `json:"_type,omitempty"`
	Asset Reference `json:"asset"`
	Alt   string    `json:"alt,omitempty"`
}

type Reference struct {
	Type string `json:"_type,omitempty"`
	Ref  string `json:"_ref"`
}

// PublishedDate formats the creation date the way the post byline shows it.
func (p Post) PublishedDate() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.Format("1/2/2006")
}
