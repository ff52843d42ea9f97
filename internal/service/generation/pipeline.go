// Package generation 生成请求流水线：限流、校验、提示词、调用、解码
package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quill/internal/ai"
	"quill/internal/ai/prompt"
	"quill/internal/config"
	basemodel "quill/internal/model"
	model "quill/internal/model/generation"
	"quill/internal/pkg/apperr"
	"quill/internal/pkg/booktools"
	"quill/internal/pkg/logger"
	"quill/internal/pkg/metrics"
	"quill/internal/pkg/ratelimit"
)

const usageRecordTimeout = 3 * time.Second

// Generator 生成服务
type Generator interface {
	Invoke(ctx context.Context, pair model.PromptPair) (*model.GenerationResult, error)
	Provider() string
}

// UsageRecorder 用量记录
type UsageRecorder interface {
	Create(ctx context.Context, usage *basemodel.GenerationUsage) error
}

// Input 一次生成请求
type Input struct {
	Body      []byte
	BodyErr   error // 读取请求体失败时非 nil，限流之后按校验失败返回
	CallerKey string
	RequestID string
}

// Outcome 流水线结果
type Outcome struct {
	Envelope  *model.ResponseEnvelope
	Status    int
	RateLimit *ratelimit.Decision // 未启用限流时为 nil
}

// Pipeline 生成流水线
// 任一阶段失败即终止，错误统一映射为四种错误码之一
type Pipeline struct {
	validator *Validator
	generator Generator
	limiter   ratelimit.Limiter
	usage     UsageRecorder
	strict    bool
}

// Option 流水线选项
type Option func(*Pipeline)

// WithLimiter 启用限流
func WithLimiter(l ratelimit.Limiter) Option {
	return func(p *Pipeline) {
		p.limiter = l
	}
}

// WithUsageRecorder 记录成功生成的用量
func WithUsageRecorder(r UsageRecorder) Option {
	return func(p *Pipeline) {
		p.usage = r
	}
}

// WithDecodePolicy 设置解码策略，strict 时结构化意图无法按结构解析即失败
func WithDecodePolicy(policy string) Option {
	return func(p *Pipeline) {
		p.strict = policy == config.DecodeStrict
	}
}

// NewPipeline 创建生成流水线
func NewPipeline(validator *Validator, generator Generator, opts ...Option) *Pipeline {
	p := &Pipeline{validator: validator, generator: generator}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle 处理一次生成请求
func (p *Pipeline) Handle(ctx context.Context, in Input) *Outcome {
	out := &Outcome{}
	intent := "unknown"
	log := logger.Ctx(ctx)

	fail := func(stage string, err error) *Outcome {
		appErr := apperr.From(err)
		ev := log.Warn()
		if appErr.Code == apperr.CodeAI || appErr.Code == apperr.CodeAuth {
			ev = log.Error()
		}
		ev.Err(err).
			Str("stage", stage).
			Str("intent", intent).
			Str("caller", in.CallerKey).
			Str("error_code", string(appErr.Code)).
			Msg("generation request failed")
		metrics.RecordGeneration(intent, string(appErr.Code))

		out.Envelope = model.Failure(appErr)
		out.Status = appErr.HTTPStatus
		return out
	}

	// 限流
	if p.limiter != nil {
		decision, err := p.limiter.Check(ctx, in.CallerKey)
		switch {
		case err != nil:
			// 计数存储故障时放行
			log.Warn().Err(err).Str("caller", in.CallerKey).Msg("rate limiter unavailable, request admitted")
		case !decision.Allowed:
			out.RateLimit = &decision
			metrics.RateLimitDeniedTotal.Inc()
			wait := decision.RetryAfter(time.Now())
			return fail("rate_limit", apperr.RateLimited(fmt.Sprintf(
				"rate limit exceeded: %d requests per window; try again in %d seconds",
				decision.Limit, int(wait.Seconds()))))
		default:
			out.RateLimit = &decision
		}
	}

	// 识别与校验
	if in.BodyErr != nil {
		return fail("read_body", in.BodyErr)
	}
	req, err := p.validator.Validate(in.Body)
	if err != nil {
		return fail("validate", err)
	}
	intent = string(req.Intent())

	// 提示词
	pair, err := prompt.Build(req)
	if err != nil {
		return fail("prompt", apperr.AIError("failed to build prompt", err))
	}

	// 调用生成服务
	start := time.Now()
	result, err := p.generator.Invoke(ctx, pair)
	elapsed := time.Since(start)
	metrics.GenerationDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
	if err != nil {
		return fail("generate", serviceError(err))
	}

	// 解码
	decoded := booktools.Decode(req, result.RawText)
	if !decoded.Method.Structured() {
		metrics.DecodeFallbackTotal.WithLabelValues(intent, string(decoded.Method)).Inc()
		if p.strict {
			return fail("decode", apperr.AIError("malformed structured output", nil))
		}
		log.Debug().Str("intent", intent).Str("method", string(decoded.Method)).Msg("structured output recovered from text")
	}

	words := booktools.WordCount(result.RawText)
	data := &model.GeneratedData{
		Generated:  decoded.Content,
		TokensUsed: result.InputTokens + result.OutputTokens,
		Metadata: model.Metadata{
			Intent:               req.Intent(),
			WordCount:            words,
			EstimatedReadingTime: booktools.ReadingTime(words),
			InputTokens:          result.InputTokens,
			OutputTokens:         result.OutputTokens,
			UsageEstimated:       result.Estimated,
			DecodeMethod:         decoded.Method,
			Model:                result.Model,
		},
	}

	metrics.RecordGeneration(intent, "success")
	metrics.RecordTokens(result.InputTokens, result.OutputTokens)
	p.recordUsage(ctx, in, req.Intent(), result, elapsed)

	log.Info().
		Str("intent", intent).
		Str("caller", in.CallerKey).
		Int("words", words).
		Int("tokens", data.TokensUsed).
		Str("decode", string(decoded.Method)).
		Dur("duration", elapsed).
		Msg("generation completed")

	out.Envelope = model.Success(data)
	out.Status = http.StatusOK
	return out
}

// recordUsage 写入用量记录，失败只记日志
func (p *Pipeline) recordUsage(ctx context.Context, in Input, intent model.Intent, result *model.GenerationResult, elapsed time.Duration) {
	if p.usage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), usageRecordTimeout)
	defer cancel()

	usage := &basemodel.GenerationUsage{
		RequestID: in.RequestID,
		Intent:    string(intent),
		CallerKey: in.CallerKey,
		Provider:  p.generator.Provider(),
		Model:     result.Model,
		Usage: basemodel.TokenUsage{
			PromptTokens:     result.InputTokens,
			CompletionTokens: result.OutputTokens,
			TotalTokens:      result.InputTokens + result.OutputTokens,
		},
		Estimated:  result.Estimated,
		DurationMs: elapsed.Milliseconds(),
	}
	if err := p.usage.Create(ctx, usage); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("intent", string(intent)).Msg("failed to record generation usage")
	}
}

// serviceError 把生成服务错误映射为对外错误码
func serviceError(err error) *apperr.Error {
	var se *ai.ServiceError
	if !errors.As(err, &se) {
		return apperr.From(err)
	}

	switch se.Kind {
	case ai.KindAuth:
		if errors.Is(err, ai.ErrNotConfigured) {
			return apperr.Auth("service not configured", err).WithStatus(http.StatusInternalServerError)
		}
		return apperr.Auth("the generation service rejected the configured credentials", err)
	case ai.KindRateLimit:
		return apperr.Wrap(err, apperr.CodeRateLimit, "the generation service is rate limiting requests; please retry later")
	case ai.KindUnexpectedFormat:
		return apperr.AIError("the generation service returned a non-text response", err)
	default:
		return apperr.AIError("the generation service is temporarily unavailable; please retry", err)
	}
}
