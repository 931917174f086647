package mainloop

import (
	"sync"
	"time"
)

// Clock 单调时钟
// Now 返回自某个固定起点以来经过的时长，保证不会倒退
type Clock interface {
	Now() time.Duration
}

// MonotonicClock 基于进程内单调时钟的实现
// time.Since 使用 time.Time 携带的单调读数，不受系统时间调整影响
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock 创建以当前时刻为起点的单调时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now 返回自创建以来经过的时长
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock 手动推进的时钟，用于测试中模拟时间
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// Now 返回当前模拟时间
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance 推进模拟时间，负值被忽略（单调性）
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Millis 把时长转换为浮点毫秒
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
