package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	model "quill/internal/model/generation"
	"quill/internal/pkg/apperr"
	"quill/internal/pkg/ratelimit"
)

// 限流相关响应头
const (
	HeaderRetryAfter         = "Retry-After"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

// ErrorResponse 辅助接口的错误响应
// 生成接口统一使用 ResponseEnvelope
type ErrorResponse struct {
	Code    apperr.Code `json:"code"`             // 错误码
	Message string      `json:"message"`          // 错误消息
	Detail  string      `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 辅助接口的成功响应
type SuccessResponse struct {
	Message string `json:"message"`        // 响应消息
	Data    any    `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data any) *SuccessResponse {
	return &SuccessResponse{
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code apperr.Code, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// WriteEnvelope 写出生成接口的响应
func WriteEnvelope(c *gin.Context, status int, env *model.ResponseEnvelope, decision *ratelimit.Decision) {
	SetRateLimitHeaders(c.Writer.Header(), decision, time.Now())
	c.JSON(status, env)
}

// AbortWithError 以失败响应终止请求
func AbortWithError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, model.Failure(appErr))
}

// SetRateLimitHeaders 写入配额响应头，被拒绝时附带 Retry-After
func SetRateLimitHeaders(h http.Header, d *ratelimit.Decision, now time.Time) {
	if d == nil {
		return
	}
	h.Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
	h.Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
	if !d.Allowed {
		h.Set(HeaderRetryAfter, strconv.Itoa(int(d.RetryAfter(now)/time.Second)))
	}
}
