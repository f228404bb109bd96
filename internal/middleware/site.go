package middleware

import "github.com/gin-gonic/gin"

const (
	SiteNameKey = "site_name"
	SiteURLKey  = "site_url"
)

// SiteInfo exposes the site name and public URL to handlers and templates.
func SiteInfo(name, url string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(SiteNameKey, name)
		c.Set(SiteURLKey, url)
		c.Next()
	}
}
