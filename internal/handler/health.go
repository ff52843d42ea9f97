package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quill/internal/model"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	now     func() time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, now: time.Now}
}

// Health 存活检查，不探测任何依赖
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   h.version,
	})
}
