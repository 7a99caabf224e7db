package middleware

import (
	"github.com/gin-gonic/gin"

	"financetracker/internal/respond"
)

// ErrorHandler returns a Gin middleware that renders the last error raised on
// the context (via c.Error) as the standard error envelope, unless a response
// has already been written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		respond.Error(c, c.Errors.Last().Err)
	}
}
