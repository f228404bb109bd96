package middleware

import (
	"inkwell/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const SubmittedKey = "submitted_posts"

const submittedFlash = "submitted"

// LoadSubmitted consumes the "comment submitted" flashes from the session and
// exposes the post ids they name under SubmittedKey. A failed save is logged;
// the flash then shows again on the next load.
func LoadSubmitted(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		flashes := session.Flashes(submittedFlash)

		submitted := make(map[string]bool, len(flashes))
		for _, f := range flashes {
			if id, ok := f.(string); ok {
				submitted[id] = true
			}
		}
		if len(flashes) > 0 {
			if err := session.Save(); err != nil {
				log.Warn("save session after consuming flash: %v", err)
			}
		}
		c.Set(SubmittedKey, submitted)

		c.Next()
	}
}

// MarkSubmitted records that the reader just submitted a comment on postID.
func MarkSubmitted(c *gin.Context, postID string) error {
	session := sessions.Default(c)
	session.AddFlash(postID, submittedFlash)
	return session.Save()
}

// Submitted reports whether the current request carries a submission flash for postID.
func Submitted(c *gin.Context, postID string) bool {
	v, ok := c.Get(SubmittedKey)
	if !ok {
		return false
	}
	submitted, _ := v.(map[string]bool)
	return submitted[postID]
}
