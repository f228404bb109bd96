package content

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore keeps posts, authors and comments in a SQL database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{db: conn}
}

func (s *GormStore) Slugs(ctx context.Context) ([]string, error) {
	slugs := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&db.Post{}).
		Where("slug <> ''").
		Order("created_at DESC").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	return slugs, nil
}

func (s *GormStore) Posts(ctx context.Context) ([]models.Post, error) {
	var records []db.Post
	err := s.db.WithContext(ctx).Preload("Author").
		Omit("body").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]models.Post, 0, len(records))
	for _, rec := range records {
		posts = append(posts, rec.ToModel(nil))
	}
	return posts, nil
}

func (s *GormStore) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var rec db.Post
	err := s.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch post %q: %w", slug, err)
	}

	var comments []db.Comment
	err = s.db.WithContext(ctx).
		Where("post_id = ? AND approved = ?", rec.ID, true).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("fetch comments of %q: %w", slug, err)
	}

	post := rec.ToModel(comments)
	post.Comments = models.VisibleComments(post.ID, post.Comments)
	return &post, nil
}

func (s *GormStore) CreateComment(ctx context.Context, nc NewComment) (string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).Where("id = ?", nc.PostID).Count(&count).Error; err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}
	if count == 0 {
		return "", fmt.Errorf("create comment for %q: %w", nc.PostID, ErrNotFound)
	}

	rec := db.Comment{
		ID:       uuid.NewString(),
		PostID:   nc.PostID,
		Name:     nc.Name,
		Email:    nc.Email,
		Comment:  nc.Comment,
		Approved: false,
	}
	if err := s.db.WithContext(ctx).Omit("Post").Create(&rec).Error; err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}
	return rec.ID, nil
}
