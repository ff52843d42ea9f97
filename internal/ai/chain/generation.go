package chain

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"quill/internal/ai/component"
	"quill/internal/config"
)

// GenerationChain 单轮生成链
// 工作流: (system, user) 提示词 -> ChatModel -> 文本 + 用量
type GenerationChain struct {
	chatModel model.BaseChatModel
}

// GenerationRequest 生成请求
type GenerationRequest struct {
	System string // 系统指令
	User   string // 用户指令
}

// GenerationResponse 生成响应
type GenerationResponse struct {
	Text         string // 生成的文本
	PromptTokens int    // 输入 token 数
	OutputTokens int    // 输出 token 数
	HasUsage     bool   // 上游是否返回了用量
}

// NewGenerationChain 根据配置创建生成链
func NewGenerationChain(ctx context.Context, cfg *config.AIConfig) (*GenerationChain, error) {
	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewGenerationChainWithModel(chatModel), nil
}

// NewGenerationChainWithModel 使用已有 ChatModel 创建生成链
func NewGenerationChainWithModel(chatModel model.BaseChatModel) *GenerationChain {
	return &GenerationChain{chatModel: chatModel}
}

// Run 执行一次生成，不做重试
func (c *GenerationChain) Run(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error) {
	// 构建消息
	messages := []*schema.Message{
		schema.SystemMessage(req.System),
		schema.UserMessage(req.User),
	}

	// 调用模型
	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	// 工具调用或空内容都不是可用的文本回复
	if len(resp.ToolCalls) > 0 {
		return nil, fmt.Errorf("%w: %d tool call(s)", component.ErrNonTextContent, len(resp.ToolCalls))
	}
	if resp.Content == "" {
		return nil, fmt.Errorf("%w: empty content", component.ErrNonTextContent)
	}

	// 提取 token 使用量
	out := &GenerationResponse{Text: resp.Content}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		out.PromptTokens = resp.ResponseMeta.Usage.PromptTokens
		out.OutputTokens = resp.ResponseMeta.Usage.CompletionTokens
		out.HasUsage = true
	}
	return out, nil
}

// Close 释放模型持有的连接
func (c *GenerationChain) Close() error {
	if closer, ok := c.chatModel.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
