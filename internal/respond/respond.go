// Package respond writes the uniform JSON envelope used by every endpoint:
// {"success": bool, "data": ..., "message": "...", "error": "CODE"}.
package respond

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/logger"
)

// Envelope is the response body shape shared by all endpoints. Error carries
// the machine-readable code of a failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a success envelope.
func JSON(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Error writes a failure envelope. An *AppError is rendered with its own
// status, code and message. Anything else is logged and rendered as a
// generic internal error so details never leak to the client.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, Envelope{Success: false, Message: appErr.Message, Error: appErr.Code})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, Envelope{
		Success: false,
		Message: apperrors.ErrInternalServer.Message,
		Error:   apperrors.ErrInternalServer.Code,
	})
}
