package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"quill/internal/ai/component"
)

// Kind 上游调用失败的分类
type Kind string

const (
	KindAuth             Kind = "auth"
	KindRateLimit        Kind = "rate_limit"
	KindTransient        Kind = "transient"
	KindUnexpectedFormat Kind = "unexpected_format"
)

// ServiceError 生成服务调用错误
type ServiceError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsRetryable 调用方稍后重试是否可能成功
func (e *ServiceError) IsRetryable() bool {
	return e.Kind == KindTransient || e.Kind == KindRateLimit
}

func newServiceError(kind Kind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

// ErrNotConfigured 未配置服务凭证
var ErrNotConfigured = newServiceError(KindAuth, "service not configured", nil)

// classifyError 把模型调用错误归类
func classifyError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newServiceError(KindTransient, "generation timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return newServiceError(KindTransient, "generation canceled", err)
	}
	if errors.Is(err, component.ErrNonTextContent) {
		return newServiceError(KindUnexpectedFormat, "upstream returned non-text content", err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return classifyStatus(gerr.Code, err)
	}

	return classifyMessage(err)
}

func classifyStatus(code int, err error) *ServiceError {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return newServiceError(KindAuth, fmt.Sprintf("upstream rejected credentials (%d)", code), err)
	case code == http.StatusTooManyRequests:
		return newServiceError(KindRateLimit, "upstream rate limit exceeded", err)
	default:
		return newServiceError(KindTransient, fmt.Sprintf("upstream error (%d)", code), err)
	}
}

// classifyMessage OpenAI 兼容接口的错误只带文本，按关键字识别
func classifyMessage(err error) *ServiceError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "status code: 401"),
		strings.Contains(msg, "status code: 403"),
		strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "incorrect api key"),
		strings.Contains(msg, "invalid_api_key"),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "unauthorized"):
		return newServiceError(KindAuth, "upstream rejected credentials", err)
	case strings.Contains(msg, "status code: 429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "rate_limit"),
		strings.Contains(msg, "too many requests"):
		return newServiceError(KindRateLimit, "upstream rate limit exceeded", err)
	default:
		return newServiceError(KindTransient, "upstream request failed", err)
	}
}
