package handlers

import (
	"net/http"
	"net/url"

	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject the variables every layout uses
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["SiteName"] = c.GetString(middleware.SiteNameKey)
	obj["SiteURL"] = c.GetString(middleware.SiteURLKey)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{
		"Title": http.StatusText(code),
		"Code":  code,
		"Error": message,
	})
}

// postPath is the escaped URL path of the post page for slug.
func postPath(slug string) string {
	return "/post/" + url.PathEscape(slug)
}
