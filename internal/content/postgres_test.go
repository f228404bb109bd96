package content

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inkwell/internal/db"
)

// openTestDB connects to TEST_DATABASE_URL and skips when it is not set.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func TestGormStore_RoundTrip(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()

	author := db.Author{ID: uuid.NewString(), Name: "Jane"}
	require.NoError(t, conn.Create(&author).Error)
	post := db.Post{ID: uuid.NewString(), Slug: "gorm-" + uuid.NewString()[:8], Title: "Gorm post", AuthorID: author.ID}
	require.NoError(t, conn.Omit("Author").Create(&post).Error)
	t.Cleanup(func() {
		conn.Where("post_id = ?", post.ID).Delete(&db.Comment{})
		conn.Delete(&post)
		conn.Delete(&author)
	})

	slugs, err := store.Slugs(ctx)
	require.NoError(t, err)
	assert.Contains(t, slugs, post.Slug)

	id, err := store.CreateComment(ctx, NewComment{PostID: post.ID, Name: "Ann", Email: "ann@example.com", Comment: "Hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	loaded, err := store.PostBySlug(ctx, post.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Gorm post", loaded.Title)
	assert.Equal(t, "Jane", loaded.Author.Name)
	assert.Empty(t, loaded.Comments, "pending comments stay hidden")

	require.NoError(t, conn.Model(&db.Comment{}).Where("id = ?", id).Update("approved", true).Error)
	loaded, err = store.PostBySlug(ctx, post.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "Ann", loaded.Comments[0].Name)
}

func TestGormStore_NotFound(t *testing.T) {
	store := NewGormStore(openTestDB(t))

	_, err := store.PostBySlug(context.Background(), "no-such-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.CreateComment(context.Background(), NewComment{PostID: uuid.NewString(), Name: "a", Email: "b", Comment: "c"})
	assert.ErrorIs(t, err, ErrNotFound)
}
