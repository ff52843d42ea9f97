package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quill/internal/model"
	"quill/internal/pkg/apperr"
	httputil "quill/internal/pkg/http"
	"quill/internal/pkg/logger"
)

const (
	defaultUsageLimit = 20
	maxUsageLimit     = 100
)

// UsageLister 用量查询
type UsageLister interface {
	ListByCaller(ctx context.Context, callerKey string, limit int64) ([]*model.GenerationUsage, error)
}

// UsageHandler 用量查询处理器
type UsageHandler struct {
	repo UsageLister
}

// NewUsageHandler 创建用量查询处理器
func NewUsageHandler(repo UsageLister) *UsageHandler {
	return &UsageHandler{repo: repo}
}

// List 返回当前调用方最近的生成用量
// GET /api/v1/usage?limit=20
func (h *UsageHandler) List(c *gin.Context) {
	limit := defaultUsageLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxUsageLimit {
			c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(
				apperr.CodeInvalidRequest, "limit must be between 1 and "+strconv.Itoa(maxUsageLimit)))
			return
		}
		limit = n
	}

	callerKey := callerKeyOf(c)
	usages, err := h.repo.ListByCaller(c.Request.Context(), callerKey, int64(limit))
	if err != nil {
		logger.Ctx(c.Request.Context()).Error().Err(err).Str("caller", callerKey).Msg("failed to list usage")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(apperr.CodeAI, "failed to list usage"))
		return
	}
	if usages == nil {
		usages = []*model.GenerationUsage{}
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("ok", gin.H{
		"callerKey": callerKey,
		"usages":    usages,
	}))
}
