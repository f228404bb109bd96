// Package pages builds the data behind post pages and the post index, caches it,
// and refreshes stale entries in the background.
package pages

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"inkwell/internal/content"
	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/richtext"
	"inkwell/internal/services"
	"inkwell/internal/utils"
)

// Page is a rendered snapshot of one post.
type Page struct {
	Post           models.Post
	Body           template.HTML
	MainImageURL   string
	AuthorImageURL string
	GeneratedAt    time.Time
}

const (
	postKeyPrefix = "post:"
	indexKey      = "index"
)

// Loader serves page snapshots. A snapshot older than the revalidate interval is
// still served, and a refresh is queued; unknown slugs are fetched on demand.
type Loader struct {
	store       content.Store
	renderer    *richtext.Renderer
	images      richtext.ImageResolver
	pages       *utils.Cache[*Page]
	index       *utils.Cache[[]*Page]
	revalidate  time.Duration
	revalidator *services.Revalidator
	log         *logger.Logger
	now         func() time.Time
}

type Options struct {
	Revalidate time.Duration
	CacheSize  int
	QueueSize  int
	Now        func() time.Time
}

func NewLoader(store content.Store, renderer *richtext.Renderer, images richtext.ImageResolver, log *logger.Logger, opts Options) (*Loader, error) {
	if opts.Revalidate <= 0 {
		opts.Revalidate = 60 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 500
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	pagesCache, err := utils.NewCache[*Page](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}
	indexCache, err := utils.NewCache[[]*Page](1)
	if err != nil {
		return nil, fmt.Errorf("create index cache: %w", err)
	}

	l := &Loader{
		store:      store,
		renderer:   renderer,
		images:     images,
		pages:      pagesCache.WithClock(opts.Now),
		index:      indexCache.WithClock(opts.Now),
		revalidate: opts.Revalidate,
		log:        log,
		now:        opts.Now,
	}
	l.revalidator = services.NewRevalidator(l.refresh, log, opts.QueueSize)
	return l, nil
}

// Start runs background revalidation until ctx is cancelled.
func (l *Loader) Start(ctx context.Context) {
	l.revalidator.Start(ctx)
}

// Wait blocks until background revalidation has stopped.
func (l *Loader) Wait() {
	l.revalidator.Wait()
}

// Paths lists the slug of every known post.
func (l *Loader) Paths(ctx context.Context) ([]string, error) {
	return l.store.Slugs(ctx)
}

// Prebuild renders every known post into the cache, one after another.
func (l *Loader) Prebuild(ctx context.Context) (int, error) {
	slugs, err := l.Paths(ctx)
	if err != nil {
		return 0, err
	}

	built := 0
	for _, slug := range slugs {
		if _, err := l.build(ctx, slug); err != nil {
			if errors.Is(err, content.ErrNotFound) {
				l.log.Warn("prebuild: %s disappeared while building", slug)
				continue
			}
			return built, err
		}
		built++
	}
	return built, nil
}

// Load returns the page for slug, or content.ErrNotFound.
func (l *Loader) Load(ctx context.Context, slug string) (*Page, error) {
	if item, ok := l.pages.Get(postKeyPrefix + slug); ok {
		if item.Age(l.now()) >= l.revalidate {
			l.revalidator.Schedule(postKeyPrefix + slug)
		}
		return item.Data, nil
	}
	return l.build(ctx, slug)
}

// Index returns every post as a page without body, newest first.
func (l *Loader) Index(ctx context.Context) ([]*Page, error) {
	if item, ok := l.index.Get(indexKey); ok {
		if item.Age(l.now()) >= l.revalidate {
			l.revalidator.Schedule(indexKey)
		}
		return item.Data, nil
	}
	return l.buildIndex(ctx)
}

func (l *Loader) build(ctx context.Context, slug string) (*Page, error) {
	post, err := l.store.PostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	page := l.newPage(*post)
	page.Body = l.renderer.Render(post.Body)
	l.pages.Set(postKeyPrefix+slug, page)
	return page, nil
}

func (l *Loader) buildIndex(ctx context.Context) ([]*Page, error) {
	posts, err := l.store.Posts(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*Page, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, l.newPage(p))
	}
	l.index.Set(indexKey, summaries)
	return summaries, nil
}

func (l *Loader) newPage(post models.Post) *Page {
	post.Comments = models.VisibleComments(post.ID, post.Comments)
	return &Page{
		Post:           post,
		MainImageURL:   l.images.RefURL(post.MainImage.Asset.Ref),
		AuthorImageURL: l.images.RefURL(post.Author.Image.Asset.Ref),
		GeneratedAt:    l.now(),
	}
}

// refresh rebuilds one cache entry. A post that no longer exists is evicted;
// any other failure keeps the stale snapshot until the next interval.
func (l *Loader) refresh(ctx context.Context, key string) {
	if key == indexKey {
		if _, err := l.buildIndex(ctx); err != nil {
			l.log.Error("revalidate index: %v", err)
			if item, ok := l.index.Get(indexKey); ok {
				l.index.Set(indexKey, item.Data)
			}
		}
		return
	}

	slug := strings.TrimPrefix(key, postKeyPrefix)
	_, err := l.build(ctx, slug)
	switch {
	case err == nil:
		l.log.Info("revalidated %s", slug)
	case errors.Is(err, content.ErrNotFound):
		l.pages.Delete(key)
		l.log.Info("evicted %s: post no longer exists", slug)
	default:
		l.log.Error("revalidate %s: %v", slug, err)
		// Restamp the stale page so the next attempt waits a full interval.
		if item, ok := l.pages.Get(key); ok {
			l.pages.Set(key, item.Data)
		}
	}
}
