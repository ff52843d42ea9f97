package generation

import "quill/internal/pkg/apperr"

// PromptPair 提示词对，每次请求新建，不缓存
type PromptPair struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// GenerationResult 一次外部调用的结果
type GenerationResult struct {
	RawText      string
	InputTokens  int
	OutputTokens int
	Estimated    bool // 上游未返回用量，由本地分词估算
	Model        string
}

// ResponseEnvelope 对外唯一的响应结构，Data 与 Error 二选一
type ResponseEnvelope struct {
	Success   bool           `json:"success"`
	Data      *GeneratedData `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorCode apperr.Code    `json:"errorCode,omitempty"`
}

// GeneratedData 成功响应数据
type GeneratedData struct {
	Generated  any      `json:"generated"`
	TokensUsed int      `json:"tokensUsed"`
	Metadata   Metadata `json:"metadata"`
}

// Metadata 响应元数据
type Metadata struct {
	Intent               Intent       `json:"intent"`
	WordCount            int          `json:"wordCount"`
	EstimatedReadingTime int          `json:"estimatedReadingTime"`
	InputTokens          int          `json:"inputTokens"`
	OutputTokens         int          `json:"outputTokens"`
	UsageEstimated       bool         `json:"usageEstimated,omitempty"`
	DecodeMethod         DecodeMethod `json:"decodeMethod"`
	Model                string       `json:"model,omitempty"`
}

// Success 构造成功响应
func Success(data *GeneratedData) *ResponseEnvelope {
	return &ResponseEnvelope{Success: true, Data: data}
}

// Failure 构造失败响应
func Failure(err *apperr.Error) *ResponseEnvelope {
	return &ResponseEnvelope{Success: false, Error: err.Message, ErrorCode: err.Code}
}
