package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/apperr"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
)

// Recovery 异常恢复中间件，以标准失败响应返回
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Ctx(c.Request.Context()).Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				httputil.AbortWithError(c, apperr.AIError(
					"an unexpected error occurred while generating content", fmt.Errorf("panic: %v", err)))
			}
		}()
		c.Next()
	}
}
