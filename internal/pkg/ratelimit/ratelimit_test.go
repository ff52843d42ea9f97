package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("窗口内第 N+1 次被拒绝", t, func() {
		clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		store := NewMemoryStore(3, time.Hour, WithClock(clock.Now))

		for i := 0; i < 3; i++ {
			d, err := store.Check(ctx, "1.2.3.4")
			So(err, ShouldBeNil)
			So(d.Allowed, ShouldBeTrue)
			So(d.Remaining, ShouldEqual, 2-i)
		}
		d, _ := store.Check(ctx, "1.2.3.4")
		So(d.Allowed, ShouldBeFalse)
		So(d.Remaining, ShouldEqual, 0)
		So(d.ResetAt.Equal(clock.Now().Add(time.Hour)), ShouldBeTrue)

		Convey("拒绝不递增计数，窗口到期后重置", func() {
			clock.Advance(30 * time.Minute)
			d, _ := store.Check(ctx, "1.2.3.4")
			So(d.Allowed, ShouldBeFalse)
			So(d.RetryAfter(clock.Now()), ShouldEqual, 30*time.Minute)

			clock.Advance(30*time.Minute + time.Millisecond)
			d, _ = store.Check(ctx, "1.2.3.4")
			So(d.Allowed, ShouldBeTrue)
			So(d.Remaining, ShouldEqual, 2)
			So(d.ResetAt.Equal(clock.Now().Add(time.Hour)), ShouldBeTrue)
		})

		Convey("窗口恰好到期的那一刻仍属于旧窗口", func() {
			clock.Advance(time.Hour)
			d, _ := store.Check(ctx, "1.2.3.4")
			So(d.Allowed, ShouldBeFalse)
		})
	})

	Convey("不同调用方互不影响", t, func() {
		store := NewMemoryStore(2, time.Minute)
		for i := 0; i < 5; i++ {
			_, _ = store.Check(ctx, "a")
		}
		d, _ := store.Check(ctx, "a")
		So(d.Allowed, ShouldBeFalse)

		d, _ = store.Check(ctx, "b")
		So(d.Allowed, ShouldBeTrue)
		d, _ = store.Check(ctx, "b")
		So(d.Allowed, ShouldBeTrue)
	})

	Convey("并发检查不会超出上限", t, func() {
		store := NewMemoryStore(50, time.Minute)
		var allowed int64
		var wg sync.WaitGroup
		for i := 0; i < 200; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if d, _ := store.Check(ctx, "shared"); d.Allowed {
					atomic.AddInt64(&allowed, 1)
				}
			}()
		}
		wg.Wait()
		So(allowed, ShouldEqual, 50)
	})

	Convey("清理过期记录", t, func() {
		clock := &fakeClock{now: time.Now()}
		store := NewMemoryStore(1, time.Minute, WithClock(clock.Now))
		_, _ = store.Check(ctx, "a")
		clock.Advance(30 * time.Second)
		_, _ = store.Check(ctx, "b")
		clock.Advance(31 * time.Second)

		So(store.Sweep(), ShouldEqual, 1)
		So(store.Len(), ShouldEqual, 1)
	})
}

func TestCallerKey(t *testing.T) {
	Convey("调用方标识推导", t, func() {
		tests := []struct {
			headers map[string]string
			want    string
		}{
			{map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2", "X-Real-IP": "10.0.0.9"}, "10.0.0.1"},
			{map[string]string{"X-Real-IP": "10.0.0.9"}, "10.0.0.9"},
			{map[string]string{"X-Forwarded-For": " , 10.0.0.2", "X-Real-IP": "10.0.0.9"}, "10.0.0.9"},
			{map[string]string{}, UnknownCaller},
		}
		for _, tt := range tests {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			So(CallerKey(h), ShouldEqual, tt.want)
		}
	})
}
