package ctxutil

import "context"

// callerKeyType 使用私有类型避免与其他 context key 冲突
type callerKeyType struct{}

var callerKey = callerKeyType{}

// WithCallerKey 将限流用的调用方标识注入到 context 中
func WithCallerKey(ctx context.Context, key string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerKey, key)
}

// GetCallerKey 从 context 中解析调用方标识
func GetCallerKey(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	key, ok := ctx.Value(callerKey).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
