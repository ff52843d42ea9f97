package ai

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"

	"quill/internal/ai/chain"
	"quill/internal/config"
	model "quill/internal/model/generation"
)

// Client 生成服务适配层
// 职责: 凭证检查、超时、错误分类、用量统计；每个请求只调用一次，不重试
type Client struct {
	cfg    *config.AIConfig
	chain  *chain.GenerationChain // 未配置凭证时为 nil
	tokens *tokenCounter
}

// NewClient 创建 AI 客户端
// 缺少 API key 不会导致启动失败，而是在每次调用时返回 service not configured
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	c := &Client{cfg: cfg, tokens: newTokenCounter()}
	if cfg.APIKey == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("AI API key not configured, generation requests will fail")
		return c, nil
	}

	generationChain, err := chain.NewGenerationChain(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation chain: %w", err)
	}
	c.chain = generationChain
	return c, nil
}

// NewClientWithModel 使用已有 ChatModel 创建客户端
func NewClientWithModel(cfg *config.AIConfig, chatModel einomodel.BaseChatModel) *Client {
	return &Client{
		cfg:    cfg,
		chain:  chain.NewGenerationChainWithModel(chatModel),
		tokens: newTokenCounter(),
	}
}

// Provider 当前使用的服务商
func (c *Client) Provider() string {
	return c.cfg.Provider
}

// Invoke 调用生成服务
// 调用发出后即使调用方断开也会执行完毕，只受 ai.timeout 约束
func (c *Client) Invoke(ctx context.Context, pair model.PromptPair) (*model.GenerationResult, error) {
	if c.chain == nil {
		return nil, ErrNotConfigured
	}

	callCtx := context.WithoutCancel(ctx)
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.chain.Run(callCtx, &chain.GenerationRequest{System: pair.System, User: pair.User})
	if err != nil {
		return nil, classifyError(err)
	}

	result := &model.GenerationResult{
		RawText:      resp.Text,
		InputTokens:  resp.PromptTokens,
		OutputTokens: resp.OutputTokens,
		Model:        c.cfg.Model,
	}
	if !resp.HasUsage {
		result.InputTokens = c.tokens.Count(c.cfg.Model, pair.System, pair.User)
		result.OutputTokens = c.tokens.Count(c.cfg.Model, resp.Text)
		result.Estimated = true
	}
	return result, nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c.chain == nil {
		return nil
	}
	return c.chain.Close()
}
