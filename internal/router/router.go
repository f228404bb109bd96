package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"inkwell/internal/comments"
	"inkwell/internal/content"
	"inkwell/internal/handlers"
	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/pages"
	"inkwell/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "inkwell_session"

// Deps carries everything the routes need. Counter is optional; without it
// comments are not rate limited. Requests presenting RelayToken in the relay
// header skip the API limit, since the form route already limited the reader.
type Deps struct {
	Loader    *pages.Loader
	Store     content.Store
	Submitter comments.Submitter
	Mail      *services.MailService
	Log       *logger.Logger
	Counter   middleware.Counter

	SiteName         string
	SiteURL          string
	SessionSecret    string
	TrustedProxies   []string
	RelayToken       string
	CommentRateLimit int
}

// New builds the engine with sessions, templates and static assets from assets,
// and every route registered.
func New(assets fs.FS, d Deps) (*gin.Engine, error) {
	r := gin.New()
	// nil trusts no proxy, so ClientIP is the peer address.
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Logger(), gin.Recovery())

	store := cookie.NewStore([]byte(d.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.SiteInfo(d.SiteName, d.SiteURL))

	renderer, err := LoadTemplates(assets)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	RegisterRoutes(r, d)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Handlers
	homeHandler := handlers.NewHomeHandler(d.Loader, d.Log)
	postHandler := handlers.NewPostHandler(d.Loader, d.Submitter, d.Log)
	commentAPIHandler := handlers.NewCommentAPIHandler(d.Store, d.Mail, d.Log)
	seoHandler := handlers.NewSEOHandler(d.Loader, d.Log, d.SiteURL, d.SiteName)

	// Public Routes
	r.GET("/", homeHandler.Index) // post index
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)

	submitComment := []gin.HandlerFunc{postHandler.SubmitComment}
	if d.Counter != nil {
		formLimit := middleware.RateLimitWith(d.Counter, d.CommentRateLimit, time.Minute, d.Log, func(c *gin.Context) {
			handlers.RenderError(c, http.StatusTooManyRequests, "You are commenting too quickly. Please try again in a minute.")
			c.Abort()
		})
		submitComment = append([]gin.HandlerFunc{formLimit}, submitComment...)
	}

	post := r.Group("/post")
	post.Use(middleware.LoadSubmitted(d.Log))
	{
		post.GET("/:slug", postHandler.Detail)        // post page
		post.POST("/:slug/comment", submitComment...) // comment form, limited per reader
	}

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	if d.Counter != nil {
		api.Use(middleware.SkipRelayed(d.RelayToken, middleware.RateLimit(d.Counter, d.CommentRateLimit, time.Minute, d.Log)))
	}
	{
		api.OPTIONS("/createComment", func(c *gin.Context) {})     // CORS preflight
		api.POST("/createComment", commentAPIHandler.CreateComment) // stores an unapproved comment
	}

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "This page could not be found.")
	})
}
