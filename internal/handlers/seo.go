package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/logger"
	"inkwell/internal/pages"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	loader   *pages.Loader
	log      *logger.Logger
	siteURL  string
	siteName string
}

func NewSEOHandler(loader *pages.Loader, log *logger.Logger, siteURL, siteName string) *SEOHandler {
	return &SEOHandler{
		loader:   loader,
		log:      log,
		siteURL:  strings.TrimRight(siteURL, "/"),
		siteName: siteName,
	}
}

// RobotsTxt points crawlers at the sitemap and away from the comment API.
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# Comment endpoints
Disallow: /api/

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML lists the home page and every known post path.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	slugs, err := h.loader.Paths(c.Request.Context())
	if err != nil {
		h.log.Error("sitemap: list slugs: %v", err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}

	now := time.Now().Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	fmt.Fprintf(&b, `  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, h.siteURL, now)

	for _, slug := range slugs {
		fmt.Fprintf(&b, `  <url>
    <loc>%s%s</loc>
    <changefreq>daily</changefreq>
    <priority>0.8</priority>
  </url>
`, h.siteURL, escapeXML(postPath(slug)))
	}
	b.WriteString(`</urlset>`)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// RSSFeed renders an RSS 2.0 feed of every post, newest first.
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	index, err := h.loader.Index(c.Request.Context())
	if err != nil {
		h.log.Error("feed: load index: %v", err)
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>` + escapeXML(h.siteName) + `</title>
    <link>` + h.siteURL + `</link>
    <description>Latest posts from ` + escapeXML(h.siteName) + `</description>
    <language>en</language>
    <lastBuildDate>` + time.Now().Format(time.RFC1123Z) + `</lastBuildDate>
    <atom:link href="` + h.siteURL + `/feed.xml" rel="self" type="application/rss+xml"/>
`)

	for _, page := range index {
		post := page.Post
		link := h.siteURL + escapeXML(postPath(post.Slug.Current))

		b.WriteString(`    <item>
      <title>` + escapeXML(post.Title) + `</title>
      <link>` + link + `</link>
      <description>` + escapeXML(post.Description) + `</description>
      <author>` + escapeXML(post.Author.Name) + `</author>
      <pubDate>` + post.CreatedAt.Format(time.RFC1123Z) + `</pubDate>
      <guid isPermaLink="true">` + link + `</guid>
    </item>
`)
	}

	b.WriteString(`  </channel>
</rss>`)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func escapeXML(s string) string {
	return html.EscapeString(s)
}
