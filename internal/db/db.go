package db

import (
	"fmt"
	"time"

	"inkwell/internal/logger"
	"inkwell/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to postgres and migrates the content tables.
func Open(dsn string, log *logger.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("Database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	log.Info("Database migration completed")

	if err := seedWelcomePost(conn, log); err != nil {
		return nil, err
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&Author{}, &Post{}, &Comment{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// seedWelcomePost gives an empty store one post so the index is never blank.
func seedWelcomePost(conn *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := conn.Model(&Post{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if count > 0 {
		log.Info("Posts already seeded, skipping")
		return nil
	}

	author := Author{ID: uuid.NewString(), Name: "Editor"}
	post := Post{
		ID:          uuid.NewString(),
		Slug:        "welcome",
		Title:       "Welcome",
		Description: "The first post of this blog.",
		AuthorID:    author.ID,
		Body: []models.Block{
			{
				Type:  "block",
				Style: "normal",
				Children: []models.Span{
					{Type: "span", Text: "Posts live in the content store. Edit this one or publish your own."},
				},
			},
		},
		CreatedAt: time.Now(),
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&author).Error; err != nil {
			return fmt.Errorf("seed author: %w", err)
		}
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		log.Info("Welcome post created")
		return nil
	})
}
