package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"
	"google.golang.org/api/googleapi"

	"quill/internal/config"
	model "quill/internal/model/generation"
)

// fakeChatModel 可控的 ChatModel
type fakeChatModel struct {
	reply    *schema.Message
	err      error
	block    bool
	calls    int
	messages []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	f.messages = input
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func testAIConfig() *config.AIConfig {
	return &config.AIConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		Timeout:  time.Second,
	}
}

var pair = model.PromptPair{System: "You are an editor.", User: "Write a synopsis."}

func kindOf(err error) Kind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func TestClientInvoke(t *testing.T) {
	ctx := context.Background()

	Convey("未配置凭证时每次调用都返回 auth 错误", t, func() {
		cfg := testAIConfig()
		cfg.APIKey = ""
		client, err := NewClient(ctx, cfg)
		So(err, ShouldBeNil)

		_, err = client.Invoke(ctx, pair)
		So(err, ShouldEqual, ErrNotConfigured)
		So(kindOf(err), ShouldEqual, KindAuth)
		So(client.Close(), ShouldBeNil)
	})

	Convey("上游返回用量时直接透传", t, func() {
		fake := &fakeChatModel{reply: &schema.Message{
			Role:    schema.Assistant,
			Content: "A clockmaker pauses time.",
			ResponseMeta: &schema.ResponseMeta{
				Usage: &schema.TokenUsage{PromptTokens: 42, CompletionTokens: 7},
			},
		}}
		client := NewClientWithModel(testAIConfig(), fake)

		res, err := client.Invoke(ctx, pair)
		So(err, ShouldBeNil)
		So(res.RawText, ShouldEqual, "A clockmaker pauses time.")
		So(res.InputTokens, ShouldEqual, 42)
		So(res.OutputTokens, ShouldEqual, 7)
		So(res.Estimated, ShouldBeFalse)
		So(res.Model, ShouldEqual, "gpt-4o-mini")

		So(fake.calls, ShouldEqual, 1)
		So(fake.messages[0].Role, ShouldEqual, schema.System)
		So(fake.messages[0].Content, ShouldEqual, pair.System)
		So(fake.messages[1].Role, ShouldEqual, schema.User)
		So(fake.messages[1].Content, ShouldEqual, pair.User)
	})

	Convey("上游未返回用量时本地估算", t, func() {
		fake := &fakeChatModel{reply: schema.AssistantMessage("A clockmaker pauses time.", nil)}
		res, err := NewClientWithModel(testAIConfig(), fake).Invoke(ctx, pair)
		So(err, ShouldBeNil)
		So(res.Estimated, ShouldBeTrue)
		So(res.InputTokens, ShouldBeGreaterThan, 0)
		So(res.OutputTokens, ShouldBeGreaterThan, 0)
	})

	Convey("非文本回复为格式错误且不重试", t, func() {
		toolCall := &fakeChatModel{reply: &schema.Message{
			Role:      schema.Assistant,
			ToolCalls: []schema.ToolCall{{ID: "call_1", Function: schema.FunctionCall{Name: "lookup"}}},
		}}
		_, err := NewClientWithModel(testAIConfig(), toolCall).Invoke(ctx, pair)
		So(kindOf(err), ShouldEqual, KindUnexpectedFormat)
		So(toolCall.calls, ShouldEqual, 1)

		empty := &fakeChatModel{reply: schema.AssistantMessage("", nil)}
		_, err = NewClientWithModel(testAIConfig(), empty).Invoke(ctx, pair)
		So(kindOf(err), ShouldEqual, KindUnexpectedFormat)
		So(err.(*ServiceError).IsRetryable(), ShouldBeFalse)
	})

	Convey("超时归为可重试的 transient", t, func() {
		cfg := testAIConfig()
		cfg.Timeout = 20 * time.Millisecond
		fake := &fakeChatModel{block: true}

		_, err := NewClientWithModel(cfg, fake).Invoke(ctx, pair)
		So(kindOf(err), ShouldEqual, KindTransient)
		So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		So(err.(*ServiceError).IsRetryable(), ShouldBeTrue)
	})

	Convey("调用方取消不会中断已发出的调用", t, func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		fake := &fakeChatModel{reply: schema.AssistantMessage("done", nil)}

		res, err := NewClientWithModel(testAIConfig(), fake).Invoke(canceled, pair)
		So(err, ShouldBeNil)
		So(res.RawText, ShouldEqual, "done")
	})
}

func TestClassifyError(t *testing.T) {
	Convey("上游错误分类", t, func() {
		tests := []struct {
			err  error
			want Kind
		}{
			{errors.New("error, status code: 401, message: Incorrect API key provided"), KindAuth},
			{errors.New("invalid api key"), KindAuth},
			{errors.New("error, status code: 429, message: Rate limit reached"), KindRateLimit},
			{errors.New("too many requests"), KindRateLimit},
			{errors.New("error, status code: 500, message: server error"), KindTransient},
			{errors.New("dial tcp: connection refused"), KindTransient},
			{&googleapi.Error{Code: 403}, KindAuth},
			{&googleapi.Error{Code: 401}, KindAuth},
			{&googleapi.Error{Code: 429}, KindRateLimit},
			{&googleapi.Error{Code: 503}, KindTransient},
			{context.DeadlineExceeded, KindTransient},
		}
		for _, tt := range tests {
			se := classifyError(tt.err)
			So(se.Kind, ShouldEqual, tt.want)
			So(errors.Is(se, tt.err), ShouldBeTrue)
		}

		So(classifyError(nil), ShouldBeNil)
		So(classifyError(ErrNotConfigured), ShouldEqual, ErrNotConfigured)
	})
}
