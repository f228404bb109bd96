package db

import (
	"time"

	"inkwell/internal/models"
)

type Author struct {
	ID       string `gorm:"primaryKey;size:36"`
	Name     string `gorm:"not null"`
	ImageRef string
}

type Post struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Slug         string         `gorm:"uniqueIndex;not null"`
	Title        string         `gorm:"not null"`
	Description  string         `gorm:"type:text"`
	MainImageRef string
	Body         []models.Block `gorm:"serializer:json;type:jsonb"`
	AuthorID     string         `gorm:"size:36;index"`
	Author       Author         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Comment struct {
	ID        string `gorm:"primaryKey;size:36"`
	PostID    string `gorm:"size:36;not null;index"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Comment   string `gorm:"type:text;not null"`
	Approved  bool   `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

// ToModel converts a post row, its author and the given comments into the page model.
func (p Post) ToModel(comments []Comment) models.Post {
	post := models.Post{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt,
		Title:       p.Title,
		Description: p.Description,
		MainImage:   imageOf(p.MainImageRef),
		Slug:        models.Slug{Current: p.Slug},
		Body:        p.Body,
		Author: models.Author{
			Name:  p.Author.Name,
			Image: imageOf(p.Author.ImageRef),
		},
		Comments: make([]models.Comment, 0, len(comments)),
	}
	for _, c := range comments {
		post.Comments = append(post.Comments, c.ToModel())
	}
	return post
}

func (c Comment) ToModel() models.Comment {
	return models.Comment{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Post:      models.Reference{Type: "reference", Ref: c.PostID},
		Name:      c.Name,
		Email:     c.Email,
		Comment:   c.Comment,
		Approved:  c.Approved,
	}
}

func imageOf(ref string) models.Image {
	if ref == "" {
		return models.Image{}
	}
	return models.Image{Type: "image", Asset: models.Reference{Type: "reference", Ref: ref}}
}
