package handlers

import (
	"net/http"

	"inkwell/internal/comments"
	"inkwell/internal/content"
	"inkwell/internal/logger"
	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

// CommentAPIHandler is the endpoint comment forms submit to. It stores the
// comment unapproved; it never becomes visible until a moderator approves it.
type CommentAPIHandler struct {
	store       content.Store
	mailService *services.MailService
	log         *logger.Logger
}

func NewCommentAPIHandler(store content.Store, mailService *services.MailService, log *logger.Logger) *CommentAPIHandler {
	return &CommentAPIHandler{
		store:       store,
		mailService: mailService,
		log:         log,
	}
}

func (h *CommentAPIHandler) CreateComment(c *gin.Context) {
	var in comments.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment", "err": err.Error()})
		return
	}

	fieldErrors := in.Validate()
	if in.PostID == "" {
		fieldErrors = append(fieldErrors, comments.FieldError{Field: "_id", Message: "- The post id is required"})
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment", "errors": fieldErrors})
		return
	}

	id, err := h.store.CreateComment(c.Request.Context(), content.NewComment{
		PostID:  in.PostID,
		Name:    in.Name,
		Email:   in.Email,
		Comment: in.Comment,
	})
	if err != nil {
		h.log.Error("create comment for post %s: %v", in.PostID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Couldn't submit comment", "err": err.Error()})
		return
	}

	h.log.Info("comment %s submitted for post %s, awaiting approval", id, in.PostID)
	h.mailService.SendModerationNotice(services.ModerationNotice{
		CommentID: id,
		PostID:    in.PostID,
		Name:      in.Name,
		Email:     in.Email,
		Comment:   in.Comment,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Comment submitted"})
}
