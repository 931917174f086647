// Package mainloop 提供单线程、协作式的事件循环
//
// 所有回调都在调用 Iterate 的 goroutine 上执行（桌面端即 Ebitengine 的 Update）。
// 其它 goroutine（例如 D-Bus 方法调用）只能通过 Invoke 把工作投递到循环中。
package mainloop

import (
	"log"
	"sort"
	"sync"
	"time"
)

// SourceID 标识一个已注册的定时源，0 为无效 ID
type SourceID uint64

// 调度优先级，数值越小越先分发
const (
	PriorityHigh        = -100
	PriorityDefault     = 0
	PriorityHighIdle    = 100
	PriorityDefaultIdle = 200
	PriorityLow         = 300
)

// 回调返回值
const (
	SourceRemove   = false
	SourceContinue = true
)

type source struct {
	id       SourceID
	priority int
	interval time.Duration
	due      time.Duration
	fn       func() bool
	removed  bool
}

// Loop 事件循环
type Loop struct {
	clock Clock

	// Invoke 队列，唯一允许跨 goroutine 访问的状态
	mu      sync.Mutex
	pending []func()

	nextID  SourceID
	sources map[SourceID]*source
}

// New 创建事件循环
func New(clock Clock) *Loop {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Loop{
		clock:   clock,
		nextID:  1,
		sources: make(map[SourceID]*source),
	}
}

// Clock 返回循环使用的时钟
func (l *Loop) Clock() Clock {
	return l.clock
}

// TimeoutAdd 注册周期回调
// 回调返回 SourceContinue 则在 interval 之后再次分发，返回 SourceRemove 则注销。
func (l *Loop) TimeoutAdd(priority int, interval time.Duration, fn func() bool) SourceID {
	id := l.nextID
	l.nextID++
	l.sources[id] = &source{
		id:       id,
		priority: priority,
		interval: interval,
		due:      l.clock.Now() + interval,
		fn:       fn,
	}
	return id
}

// SourceRemove 注销定时源，返回该源是否存在
// 允许在该源自己的回调中调用。
func (l *Loop) SourceRemove(id SourceID) bool {
	src, ok := l.sources[id]
	if !ok {
		return false
	}
	src.removed = true
	delete(l.sources, id)
	return true
}

// Invoke 把 fn 投递到循环所在 goroutine，在下一次 Iterate 时执行
// 这是唯一的并发安全方法。
func (l *Loop) Invoke(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

// Len 返回已注册的定时源数量
func (l *Loop) Len() int {
	return len(l.sources)
}

// Iterate 执行一轮循环：先执行投递的任务，再分发所有到期的定时源
func (l *Loop) Iterate() {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range pending {
		fn()
	}

	now := l.clock.Now()
	due := make([]*source, 0, len(l.sources))
	for _, src := range l.sources {
		if now >= src.due {
			due = append(due, src)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].priority != due[j].priority {
			return due[i].priority < due[j].priority
		}
		return due[i].id < due[j].id
	})

	for _, src := range due {
		// 前面的回调可能已经注销了它
		if src.removed {
			continue
		}
		keep := src.fn()
		if src.removed {
			continue
		}
		if !keep {
			src.removed = true
			delete(l.sources, src.id)
			continue
		}
		src.due = l.clock.Now() + src.interval
	}
}

// Clear 注销所有定时源并丢弃未执行的投递任务
func (l *Loop) Clear() {
	for id, src := range l.sources {
		src.removed = true
		delete(l.sources, id)
	}
	l.mu.Lock()
	dropped := len(l.pending)
	l.pending = nil
	l.mu.Unlock()
	if dropped > 0 {
		log.Printf("[MainLoop] Dropped %d pending invocations", dropped)
	}
}
