// Package apperr 定义对外暴露的稳定错误码
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 错误码类型，字符串值对调用方稳定
type Code string

const (
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeRateLimit      Code = "RATE_LIMIT"
	CodeAuth           Code = "AUTH_ERROR"
	CodeAI             Code = "AI_ERROR"
)

// Error 应用错误
// Message 面向调用方，Err 仅用于服务端日志
type Error struct {
	Code       Code
	Message    string
	HTTPStatus int
	Err        error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code Code, message string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code Code, message string) *Error {
	e := New(code, message)
	e.Err = err
	return e
}

// WithStatus 覆盖 HTTP 状态码
func (e *Error) WithStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// InvalidRequest 请求体或字段校验失败
func InvalidRequest(message string) *Error {
	return New(CodeInvalidRequest, message)
}

// RateLimited 调用方或上游限流
func RateLimited(message string) *Error {
	return New(CodeRateLimit, message)
}

// Auth 凭证缺失或被上游拒绝
func Auth(message string, err error) *Error {
	return Wrap(err, CodeAuth, message)
}

// AIError 上游或流水线内部的其它失败
func AIError(message string, err error) *Error {
	return Wrap(err, CodeAI, message)
}

// From 将任意错误转换为 *Error，未知错误归为 AI_ERROR 且不暴露内部细节
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return AIError("an unexpected error occurred while generating content", err)
}

func codeToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
