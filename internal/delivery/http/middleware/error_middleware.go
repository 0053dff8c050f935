package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/response"
	"github.com/zordhalo/lontario-YC-sub000/pkg/apperror"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Warn("Request failed",
					"kind", appErr.Kind,
					"path", c.FullPath(),
					"request_id", c.GetString("RequestID"),
					"error", appErr.Err,
				)
			}
			response.ErrorKind(c, appErr.Code, string(appErr.Kind), appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal server error",
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
			"error", err,
		)
		response.ErrorKind(c, http.StatusInternalServerError, string(apperror.KindInternal),
			"An unexpected error occurred. Please try again later.", nil)
	}
}
