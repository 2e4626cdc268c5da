package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-be/internal/apperror"
	"todo-be/internal/models"
)

const internalServerError = "Internal server error"

// ErrorHandler renders the last error attached with c.Error as
// {success:false, message, code?, errors?}. In production the message of a
// 5xx is replaced and its code omitted.
func ErrorHandler(logger *slog.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.HTTPStatus(err)
		resp := models.ErrorResponse{Success: false, Message: err.Error()}

		var sc apperror.StatusCoder
		if errors.As(err, &sc) {
			resp.Code = sc.ErrorCode()
		}
		var ve *apperror.ValidationError
		if errors.As(err, &ve) {
			resp.Errors = ve.Fields
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"error", err,
			)
			if production {
				resp.Message = internalServerError
				resp.Code = ""
			}
		} else {
			logger.DebugContext(c.Request.Context(), "request rejected",
				"path", c.Request.URL.Path,
				"status", status,
				"error", err,
			)
		}

		c.JSON(status, resp)
	}
}

// NotFound answers unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Route not found"})
	}
}

// Recovery turns a handler panic into a 500 handled by ErrorHandler
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		_ = c.Error(errors.New(internalServerError))
		c.Abort()
	})
}
