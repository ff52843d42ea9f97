package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/apperr"
	"quill/internal/pkg/ctxutil"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/ratelimit"
	"quill/internal/service/generation"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

// GenerateHandler 生成接口处理器
type GenerateHandler struct {
	pipeline *generation.Pipeline
}

// NewGenerateHandler 创建生成接口处理器
func NewGenerateHandler(pipeline *generation.Pipeline) *GenerateHandler {
	return &GenerateHandler{pipeline: pipeline}
}

// Generate 处理一次生成请求
// 请求体按 intent 字段区分，校验交给流水线完成
func (h *GenerateHandler) Generate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))

	out := h.pipeline.Handle(c.Request.Context(), generation.Input{
		Body:      body,
		BodyErr:   bodyError(err),
		CallerKey: callerKeyOf(c),
		RequestID: c.GetString("request_id"),
	})
	httputil.WriteEnvelope(c, out.Status, out.Envelope, out.RateLimit)
}

// bodyError 读取失败转为 INVALID_REQUEST，仍经过限流
func bodyError(err error) error {
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.InvalidRequest("request body is too large")
	}
	return apperr.InvalidRequest("failed to read request body")
}

// callerKeyOf 优先使用中间件解析的调用方标识
func callerKeyOf(c *gin.Context) string {
	if key, ok := ctxutil.GetCallerKey(c.Request.Context()); ok {
		return key
	}
	return ratelimit.CallerKey(c.Request.Header)
}
