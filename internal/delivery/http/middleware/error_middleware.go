package middleware

import (
	"errors"
	"net/http"

	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"
	"go-learnlab-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.Is(err, domain.ErrNotFound):
			// Foreign-owned and absent records both land here, so the
			// response never reveals whether the record exists.
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		default:
			// Internal details stay server-side.
			reqID, _ := c.Get("RequestID")
			logger.Log.Error("unhandled request error", "requestId", reqID, "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
