package model

// TokenUsage Token 使用统计
type TokenUsage struct {
	PromptTokens     int `bson:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int `bson:"completion_tokens" json:"completion_tokens"`
	TotalTokens      int `bson:"total_tokens" json:"total_tokens"`
}

// HealthResponse 存活检查响应，不检查任何依赖
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// IntentCatalog 支持的意图及枚举字段的取值，供客户端构建选择器
type IntentCatalog struct {
	Intents          []string `json:"intents"`
	Structures       []string `json:"structures"`
	EnhancementTypes []string `json:"enhancementTypes"`
	ElementTypes     []string `json:"elementTypes"`
	AnalysisTypes    []string `json:"analysisTypes"`
	SynopsisLengths  []string `json:"synopsisLengths"`
	ChapterRange     [2]int   `json:"chapterRange"`
}
