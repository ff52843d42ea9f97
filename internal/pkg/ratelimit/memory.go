package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// record 单个调用方的窗口计数
type record struct {
	count   int
	resetAt time.Time
}

// MemoryStore 进程内限流表，读取-递增-写回在同一把锁内完成
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	records map[string]*record
	now     func() time.Time
}

// MemoryOption 内存限流器选项
type MemoryOption func(*MemoryStore)

// WithClock 注入时钟，测试使用
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore 创建内存限流器
func NewMemoryStore(limit int, window time.Duration, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		limit:   limit,
		window:  window,
		records: make(map[string]*record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check 检查并记录一次请求
func (s *MemoryStore) Check(_ context.Context, callerKey string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.records[callerKey]
	if !ok || now.After(rec.resetAt) {
		rec = &record{count: 1, resetAt: now.Add(s.window)}
		s.records[callerKey] = rec
		return s.decision(true, rec), nil
	}

	if rec.count >= s.limit {
		return s.decision(false, rec), nil
	}
	rec.count++
	return s.decision(true, rec), nil
}

func (s *MemoryStore) decision(allowed bool, rec *record) Decision {
	return Decision{
		Allowed:   allowed,
		Limit:     s.limit,
		Remaining: remaining(s.limit, rec.count),
		ResetAt:   rec.resetAt,
	}
}

// Sweep 清理已过期的记录，返回清理数量
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, rec := range s.records {
		if now.After(rec.resetAt) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

// Len 当前记录数
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// RunSweeper 按间隔清理过期记录，直到 ctx 结束
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("rate limit records swept")
			}
		}
	}
}
