package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/content"
	"inkwell/internal/content/contenttest"
	"inkwell/internal/logger"
	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*contenttest.Store
}

func (failingStore) CreateComment(ctx context.Context, nc content.NewComment) (string, error) {
	return "", errors.New("mutation rejected")
}

func setupAPIRouter(store content.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Discard()
	h := NewCommentAPIHandler(store, services.NewMailService(&config.Config{}, log), log)

	r := gin.New()
	r.POST("/api/createComment", h.CreateComment)
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/createComment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateComment_StoresUnapproved(t *testing.T) {
	store := contenttest.NewStore()
	r := setupAPIRouter(store)

	w := postJSON(r, `{"_id":"post-1","name":"Ann","email":"ann@example.com","comment":"Nice"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment submitted", decode(t, w)["message"])

	stored := store.Comments()
	require.Len(t, stored, 1)
	assert.Equal(t, "post-1", stored[0].Post.Ref)
	assert.Equal(t, "Ann", stored[0].Name)
	assert.Equal(t, "ann@example.com", stored[0].Email)
	assert.Equal(t, "Nice", stored[0].Comment)
	assert.False(t, stored[0].Approved)
}

func TestCreateComment_MalformedJSON(t *testing.T) {
	store := contenttest.NewStore()
	r := setupAPIRouter(store)

	w := postJSON(r, `{"_id":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.CreateCalls)
}

func TestCreateComment_MissingFields(t *testing.T) {
	store := contenttest.NewStore()
	r := setupAPIRouter(store)

	w := postJSON(r, `{"_id":"post-1","name":"Ann","email":"","comment":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.CreateCalls)

	w = postJSON(r, `{"name":"Ann","email":"ann@example.com","comment":"Nice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.CreateCalls)
}

func TestCreateComment_StoreFailure(t *testing.T) {
	r := setupAPIRouter(failingStore{contenttest.NewStore()})

	w := postJSON(r, `{"_id":"post-1","name":"Ann","email":"ann@example.com","comment":"Nice"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Couldn't submit comment", body["message"])
	assert.Equal(t, "mutation rejected", body["err"])
}
