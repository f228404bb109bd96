package handlers

import (
	"net/http"

	"inkwell/internal/logger"
	"inkwell/internal/pages"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	loader *pages.Loader
	log    *logger.Logger
}

func NewHomeHandler(loader *pages.Loader, log *logger.Logger) *HomeHandler {
	return &HomeHandler{loader: loader, log: log}
}

// Index lists every published post.
func (h *HomeHandler) Index(c *gin.Context) {
	index, err := h.loader.Index(c.Request.Context())
	if err != nil {
		h.log.Error("load post index: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong while loading posts.")
		return
	}

	Render(c, http.StatusOK, "home.html", gin.H{
		"Pages": index,
	})
}
