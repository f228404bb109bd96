// Package contenttest provides an in-memory content.Store for tests.
package contenttest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"inkwell/internal/content"
	"inkwell/internal/models"
)

// Store keeps posts and comments in memory and counts calls.
type Store struct {
	mu       sync.Mutex
	posts    map[string]models.Post
	comments []models.Comment
	nextID   int

	// Err, when set, is returned by every read.
	Err error

	SlugCalls   int
	PostCalls   map[string]int
	CreateCalls int
}

func NewStore(posts ...models.Post) *Store {
	s := &Store{posts: make(map[string]models.Post), PostCalls: make(map[string]int)}
	for _, p := range posts {
		s.Put(p)
	}
	return s
}

// Put adds or replaces a post, keyed by its slug. Comments on p are kept as stored comments.
func (s *Store) Put(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, p.Comments...)
	p.Comments = nil
	s.posts[p.Slug.Current] = p
}

func (s *Store) Remove(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, slug)
}

// Comments returns every stored comment, approved or not.
func (s *Store) Comments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Comment(nil), s.comments...)
}

// Approve flips the approval flag of the comment with id.
func (s *Store) Approve(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments[i].Approved = true
		}
	}
}

// SetErr sets Err under the store lock, for tests that read concurrently.
func (s *Store) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

func (s *Store) Calls(slug string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.PostCalls[slug]
}

func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SlugCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	slugs := make([]string, 0, len(s.posts))
	for slug := range s.posts {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

func (s *Store) Posts(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		p.Body = nil
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (s *Store) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PostCalls[slug]++
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.posts[slug]
	if !ok {
		return nil, content.ErrNotFound
	}
	p.Comments = models.VisibleComments(p.ID, s.comments)
	return &p, nil
}

func (s *Store) CreateComment(ctx context.Context, nc content.NewComment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateCalls++
	s.nextID++
	id := fmt.Sprintf("comment-%d", s.nextID)
	s.comments = append(s.comments, models.Comment{
		ID:        id,
		CreatedAt: time.Now(),
		Post:      models.Reference{Type: "reference", Ref: nc.PostID},
		Name:      nc.Name,
		Email:     nc.Email,
		Comment:   nc.Comment,
	})
	return id, nil
}

var _ content.Store = (*Store)(nil)
