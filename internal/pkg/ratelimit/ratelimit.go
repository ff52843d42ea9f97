// Package ratelimit 按调用方标识的固定窗口准入计数
package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// UnknownCaller 无法识别来源的调用方共享的计数桶
const UnknownCaller = "unknown"

// Decision 一次准入检查的结果
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter 距离窗口重置的时间，向上取整到秒
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait <= 0 {
		return 0
	}
	if r := wait % time.Second; r != 0 {
		wait += time.Second - r
	}
	return wait
}

// Limiter 限流器
// 窗口到期后计数整体重置；超限时不递增计数
type Limiter interface {
	Check(ctx context.Context, callerKey string) (Decision, error)
}

// CallerKey 从请求头推导调用方标识
// 依次使用 X-Forwarded-For 的第一个地址、X-Real-IP，都没有时归入 unknown
func CallerKey(h http.Header) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(h.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return UnknownCaller
}

func remaining(limit, count int) int {
	if count >= limit {
		return 0
	}
	return limit - count
}
