package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/model"
	gen "quill/internal/model/generation"
	httputil "quill/internal/pkg/http"
)

// CatalogHandler 意图目录处理器
type CatalogHandler struct {
	catalog model.IntentCatalog
}

// NewCatalogHandler 创建意图目录处理器
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{catalog: model.IntentCatalog{
		Intents:          toStrings(gen.AllIntents),
		Structures:       toStrings(gen.OutlineStructures),
		EnhancementTypes: toStrings(gen.EnhancementTypes),
		ElementTypes:     toStrings(gen.ElementTypes),
		AnalysisTypes:    toStrings(gen.AnalysisTypes),
		SynopsisLengths:  toStrings(gen.SynopsisLengths),
		ChapterRange:     [2]int{gen.MinChapters, gen.MaxChapters},
	}}
}

// Intents 返回支持的意图与枚举取值
func (h *CatalogHandler) Intents(c *gin.Context) {
	c.JSON(http.StatusOK, httputil.NewSuccessResponse("ok", h.catalog))
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
