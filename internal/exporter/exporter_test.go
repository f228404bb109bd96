package exporter

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"inkwell/internal/content"
	"inkwell/internal/content/contenttest"
	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/pages"
	"inkwell/internal/richtext"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, store content.Store) *pages.Loader {
	t.Helper()
	images := content.NewImageURLBuilder("proj", "production")
	l, err := pages.NewLoader(store, richtext.NewRenderer(images, logger.Discard(), nil), images, logger.Discard(), pages.Options{})
	require.NoError(t, err)
	return l
}

// pageHandler renders each page as its title so the written files are easy to check.
func pageHandler(loader *pages.Loader) http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "index") })
	r.GET("/post/:slug", func(c *gin.Context) {
		page, err := loader.Load(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.String(http.StatusOK, page.Post.Title)
	})
	return r
}

func post(slug, title string) models.Post {
	return models.Post{ID: "id-" + slug, Title: title, Slug: models.Slug{Current: slug}}
}

func TestExport(t *testing.T) {
	store := contenttest.NewStore(post("first", "First"), post("second", "Second"))
	loader := newLoader(t, store)
	assets := fstest.MapFS{"static/css/site.css": {Data: []byte("body{}")}}
	dir := t.TempDir()

	n, err := Export(context.Background(), loader, pageHandler(loader), assets, dir, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for file, want := range map[string]string{
		"index.html":             "index",
		"post/first/index.html":  "First",
		"post/second/index.html": "Second",
		"static/css/site.css":    "body{}",
	} {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(file)))
		require.NoError(t, err, file)
		assert.Equal(t, want, string(got), file)
	}
}

func TestExport_FailingPage(t *testing.T) {
	store := contenttest.NewStore(post("first", "First"))
	loader := newLoader(t, store)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	_, err := Export(context.Background(), loader, r, fstest.MapFS{}, t.TempDir(), logger.Discard())
	assert.ErrorContains(t, err, "render /: status 500")
}

func TestExport_StoreError(t *testing.T) {
	store := contenttest.NewStore()
	store.Err = assert.AnError
	loader := newLoader(t, store)

	_, err := Export(context.Background(), loader, pageHandler(loader), fstest.MapFS{}, t.TempDir(), logger.Discard())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExport_EscapesSlugs(t *testing.T) {
	store := contenttest.NewStore(post("50%-off", "Sale"), post("two words", "Spaced"))
	loader := newLoader(t, store)
	dir := t.TempDir()

	n, err := Export(context.Background(), loader, pageHandler(loader), fstest.MapFS{}, dir, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := os.ReadFile(filepath.Join(dir, "post", "50%-off", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "Sale", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "post", "two words", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "Spaced", string(got))
}

func TestExport_SkipsUnsafeSlugs(t *testing.T) {
	store := contenttest.NewStore(
		post("../../escaped", "Escaped"),
		post("nested/slug", "Nested"),
		post("..", "Parent"),
		post("fine", "Fine"),
	)
	loader := newLoader(t, store)
	root := t.TempDir()
	dir := filepath.Join(root, "out")

	var logs bytes.Buffer
	n, err := Export(context.Background(), loader, pageHandler(loader), fstest.MapFS{}, dir, logger.NewWithWriter(&logs, &logs))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = os.Stat(filepath.Join(dir, "post", "fine", "index.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escaped"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "post", "nested"))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, logs.String(), `unsafe slug "../../escaped"`)
	assert.Contains(t, logs.String(), `unsafe slug "nested/slug"`)
}

func TestExportable(t *testing.T) {
	for slug, want := range map[string]bool{
		"my-post":   true,
		"50%-off":   true,
		"two words": true,
		"":          false,
		".":         false,
		"..":        false,
		"a/b":       false,
		`a\b`:       false,
		"../x":      false,
	} {
		assert.Equal(t, want, exportable(slug), slug)
	}
}
