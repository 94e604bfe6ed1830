package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
)

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok && userID != 0
}

func requestLogger(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	if _, ok := c.Get(middleware.LoggerKey); ok {
		return middleware.LoggerFromContext(c)
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
