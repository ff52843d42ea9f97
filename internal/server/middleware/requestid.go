package middleware

import (
	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	"quill/internal/pkg/id"
	"quill/internal/pkg/logger"
	"quill/internal/pkg/ratelimit"
)

// HeaderRequestID 请求 ID 响应头
const HeaderRequestID = "X-Request-ID"

// RequestID 为每个请求分配 ID，沿用调用方传入的合法值
// 同时解析调用方标识，供限流与用量查询使用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.OrNew(c.GetHeader(HeaderRequestID))

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		ctx = ctxutil.WithCallerKey(ctx, ratelimit.CallerKey(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
