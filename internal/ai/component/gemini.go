package component

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"quill/internal/config"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiChatModel 把 Gemini 适配为 eino ChatModel
type GeminiChatModel struct {
	client      *genai.Client
	modelName   string
	temperature *float32
	maxTokens   *int
	topP        *float32
}

var _ model.BaseChatModel = (*GeminiChatModel)(nil)

// NewGeminiChatModel 创建 Gemini ChatModel
func NewGeminiChatModel(ctx context.Context, cfg *config.AIConfig) (*GeminiChatModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	m := &GeminiChatModel{client: client, modelName: modelName}
	m.temperature, m.maxTokens, m.topP = options(cfg)
	return m, nil
}

// Generate 同步生成
// 每次调用新建 GenerativeModel，SystemInstruction 不在并发请求间共享
func (m *GeminiChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	o := model.GetCommonOptions(&model.Options{
		Temperature: m.temperature,
		MaxTokens:   m.maxTokens,
		TopP:        m.topP,
		Model:       &m.modelName,
	}, opts...)

	gm := m.client.GenerativeModel(*o.Model)
	if o.Temperature != nil {
		gm.SetTemperature(*o.Temperature)
	}
	if o.MaxTokens != nil {
		gm.SetMaxOutputTokens(int32(*o.MaxTokens))
	}
	if o.TopP != nil {
		gm.SetTopP(*o.TopP)
	}

	var system []string
	var parts []genai.Part
	for _, msg := range input {
		if msg.Role == schema.System {
			system = append(system, msg.Content)
			continue
		}
		parts = append(parts, genai.Text(msg.Content))
	}
	if len(system) > 0 {
		gm.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))},
		}
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, err
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	out := &schema.Message{Role: schema.Assistant, Content: text}
	if resp.UsageMetadata != nil {
		out.ResponseMeta = &schema.ResponseMeta{
			Usage: &schema.TokenUsage{
				PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
				CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
				TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
			},
		}
	}
	return out, nil
}

// Stream 以单个分片返回完整结果
func (m *GeminiChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// Close 关闭底层客户端
func (m *GeminiChatModel) Close() error {
	return m.client.Close()
}

// firstText 首个候选的首个内容必须是文本，随后拼接全部文本片段
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrNonTextContent)
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate", ErrNonTextContent)
	}
	if _, ok := content.Parts[0].(genai.Text); !ok {
		return "", fmt.Errorf("%w: %T", ErrNonTextContent, content.Parts[0])
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
