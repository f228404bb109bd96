package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/comments"
	"inkwell/internal/content"
	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/pages"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	loader    *pages.Loader
	submitter comments.Submitter
	log       *logger.Logger
}

func NewPostHandler(loader *pages.Loader, submitter comments.Submitter, log *logger.Logger) *PostHandler {
	return &PostHandler{
		loader:    loader,
		submitter: submitter,
		log:       log,
	}
}

// load fetches the page for the :slug param and renders the error page itself when it cannot.
func (h *PostHandler) load(c *gin.Context) (*pages.Page, bool) {
	slug := c.Param("slug")
	page, err := h.loader.Load(c.Request.Context(), slug)
	if errors.Is(err, content.ErrNotFound) {
		RenderError(c, http.StatusNotFound, "This post could not be found.")
		return nil, false
	}
	if err != nil {
		h.log.Error("load post %s: %v", slug, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong while loading this post.")
		return nil, false
	}
	return page, true
}

func (h *PostHandler) renderDetail(c *gin.Context, code int, page *pages.Page, flow *comments.Flow, submitted bool) {
	form := comments.Input{PostID: page.Post.ID}
	var fieldErrors []comments.FieldError
	if flow != nil {
		form = flow.Input()
		form.PostID = page.Post.ID
		fieldErrors = flow.Errors()
	}

	Render(c, code, "post/detail.html", gin.H{
		"Title":       page.Post.Title,
		"Description": page.Post.Description,
		"FullURL":     c.GetString(middleware.SiteURLKey) + postPath(page.Post.Slug.Current),
		"Page":        page,
		"Post":        page.Post,
		"Submitted":   submitted,
		"Form":        form,
		"Errors":      fieldErrors,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	page, ok := h.load(c)
	if !ok {
		return
	}
	h.renderDetail(c, http.StatusOK, page, nil, middleware.Submitted(c, page.Post.ID))
}

// SubmitComment runs the comment flow for the form posted from a post page.
func (h *PostHandler) SubmitComment(c *gin.Context) {
	page, ok := h.load(c)
	if !ok {
		return
	}

	var in comments.Input
	if err := c.ShouldBind(&in); err != nil {
		h.log.Warn("bind comment form: %v", err)
	}
	in.PostID = page.Post.ID

	flow := comments.NewFlow(h.submitter, h.log)
	switch flow.Submit(c.Request.Context(), in) {
	case comments.Submitted:
		if err := middleware.MarkSubmitted(c, page.Post.ID); err != nil {
			h.log.Warn("save submission flash: %v", err)
			h.renderDetail(c, http.StatusOK, page, flow, true)
			return
		}
		c.Redirect(http.StatusSeeOther, postPath(page.Post.Slug.Current)+"#comments")
	default:
		code := http.StatusOK
		if len(flow.Errors()) > 0 {
			code = http.StatusUnprocessableEntity
		}
		h.renderDetail(c, code, page, flow, false)
	}
}
