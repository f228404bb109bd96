// Package app wires configuration into the content store, the page loader and
// the HTTP engine shared by the server and the static exporter.
package app

import (
	"context"
	"fmt"

	"inkwell/internal/comments"
	"inkwell/internal/config"
	"inkwell/internal/content"
	"inkwell/internal/db"
	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/pages"
	"inkwell/internal/richtext"
	"inkwell/internal/router"
	"inkwell/internal/services"
	"inkwell/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// App holds the long-lived components. Close releases their connections.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	Store  content.Store
	Loader *pages.Loader
	Engine *gin.Engine

	closers []func() error
}

// NewStore opens the content backend the config names.
func NewStore(cfg *config.Config, log *logger.Logger) (content.Store, func() error, error) {
	switch cfg.ContentBackend {
	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("database handle: %w", err)
		}
		return content.NewGormStore(conn), sqlDB.Close, nil
	default:
		client := content.NewSanityClient(cfg.SanityProjectID, cfg.SanityDataset, cfg.SanityAPIVersion,
			content.WithToken(cfg.SanityToken),
			content.WithCDN(cfg.SanityUseCDN),
		)
		return client, func() error { return nil }, nil
	}
}

func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	store, closeStore, err := NewStore(cfg, log)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log, Store: store, closers: []func() error{closeStore}}

	images := content.NewImageURLBuilder(cfg.SanityProjectID, cfg.SanityDataset)
	renderer := richtext.NewRenderer(images, log, richtext.PostSerializers())
	a.Loader, err = pages.NewLoader(store, renderer, images, log, pages.Options{Revalidate: cfg.Revalidate})
	if err != nil {
		a.Close()
		return nil, err
	}

	var counter middleware.Counter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis at %s unreachable, comment rate limiting disabled: %v", cfg.RedisAddr, err)
			_ = rdb.Close()
		} else {
			counter = middleware.NewRedisCounter(rdb)
			a.closers = append(a.closers, rdb.Close)
			log.Info("Comment rate limit: %d per minute", cfg.CommentRateLimit)
		}
	}

	// The form submitter presents this token so the API does not count
	// forwarded submissions against the server's own address.
	relayToken := cfg.CommentRelayToken
	if relayToken == "" {
		relayToken = uuid.NewString()
	}

	a.Engine, err = router.New(web.FS, router.Deps{
		Loader:           a.Loader,
		Store:            store,
		Submitter:        comments.NewHTTPSubmitter(cfg.CommentEndpoint, nil).WithRelayToken(relayToken),
		Mail:             services.NewMailService(cfg, log),
		Log:              log,
		Counter:          counter,
		SiteName:         cfg.SiteName,
		SiteURL:          cfg.SiteURL,
		SessionSecret:    cfg.SessionSecret,
		TrustedProxies:   cfg.TrustedProxies,
		RelayToken:       relayToken,
		CommentRateLimit: cfg.CommentRateLimit,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.Log.Warn("close: %v", err)
		}
	}
}
