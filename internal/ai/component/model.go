package component

import (
	"context"
	"errors"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"quill/internal/config"
)

// ErrNonTextContent 上游返回的首个内容不是纯文本（拒答、工具调用等）
var ErrNonTextContent = errors.New("upstream returned non-text content")

// NewChatModel 创建 ChatModel
// 支持多种 Provider: openai, azure, ark, gemini
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return newOpenAIChatModel(ctx, cfg)
	case config.ProviderAzure:
		return newAzureChatModel(ctx, cfg)
	case config.ProviderArk:
		return newArkChatModel(ctx, cfg)
	case config.ProviderGemini:
		return NewGeminiChatModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// newOpenAIChatModel 创建 OpenAI ChatModel
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:  cfg.Model,
		APIKey: cfg.APIKey,
	}

	// Base URL (用于代理或兼容 API)
	if cfg.BaseURL != "" {
		modelCfg.BaseURL = cfg.BaseURL
	}

	modelCfg.Temperature, modelCfg.MaxTokens, modelCfg.TopP = options(cfg)
	return openai.NewChatModel(ctx, modelCfg)
}

// newAzureChatModel 创建 Azure OpenAI ChatModel
func newAzureChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		ByAzure: true,
	}

	modelCfg.Temperature, modelCfg.MaxTokens, modelCfg.TopP = options(cfg)
	return openai.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 创建 Ark ChatModel（使用 eino-ext 模块）
func newArkChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "doubao-seed-1-6-flash-250615" // 默认模型
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}

	modelCfg.Temperature, modelCfg.MaxTokens, modelCfg.TopP = options(cfg)
	return arkext.NewChatModel(ctx, modelCfg)
}

// options 进程级生成参数，零值表示使用服务端默认
func options(cfg *config.AIConfig) (temperature *float32, maxTokens *int, topP *float32) {
	if cfg.Options.Temperature > 0 {
		t := float32(cfg.Options.Temperature)
		temperature = &t
	}
	if cfg.Options.MaxTokens > 0 {
		n := cfg.Options.MaxTokens
		maxTokens = &n
	}
	if cfg.Options.TopP > 0 {
		p := float32(cfg.Options.TopP)
		topP = &p
	}
	return temperature, maxTokens, topP
}
