package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/metrics"
)

// Metrics 记录 HTTP 请求数与耗时，路径取路由模板
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
