// Package effect 实现彩纸特效：粒子模拟和特效控制器
//
// 控制器只有两个状态：Idle（无容器、无定时器、无粒子）和 Running。
// Fire 总是先清理正在进行的特效，Cleanup 总是同时清空三者。
package effect

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/mainloop"
)

// Confetti 特效控制器
// 只能在事件循环所在的 goroutine 上调用。
type Confetti struct {
	shell     Shell
	scheduler Scheduler
	clock     mainloop.Clock
	rng       *rand.Rand

	particles []*Particle
	container Container
	timer     mainloop.SourceID

	// 单调时间戳（毫秒），仅在 Running 时有效
	startTime float64
	lastTime  float64
}

// New 创建特效控制器
func New(shell Shell, scheduler Scheduler, clock mainloop.Clock, rng *rand.Rand) *Confetti {
	return &Confetti{
		shell:     shell,
		scheduler: scheduler,
		clock:     clock,
		rng:       rng,
	}
}

// Running 返回特效是否正在进行
func (c *Confetti) Running() bool {
	return c.container != nil
}

// Particles 返回存活的粒子（只读）
func (c *Confetti) Particles() []*Particle {
	return c.particles
}

// Fire 触发一次特效
// 如果已有特效在进行，先立即清理再重新开始。宿主创建覆盖层失败时返回错误，
// 此时控制器保持 Idle。
func (c *Confetti) Fire() error {
	if c.Running() {
		log.Printf("[Confetti] Restarting: tearing down %d in-flight particles", len(c.particles))
		c.Cleanup()
	}

	monitor := c.shell.PrimaryMonitor()

	container, err := c.shell.AddOverlay(monitor)
	if err != nil {
		return fmt.Errorf("failed to add overlay: %w", err)
	}
	c.container = container

	c.particles = make([]*Particle, 0, config.ParticleCount)
	for i := 0; i < config.ParticleCount; i++ {
		p := NewParticle(c.rng, monitor.Width, monitor.Height)
		p.Attach(container)
		c.particles = append(c.particles, p)
	}

	now := mainloop.Millis(c.clock.Now())
	c.startTime = now
	c.lastTime = now

	c.timer = c.scheduler.TimeoutAdd(mainloop.PriorityDefault, config.FramePeriod, c.Update)

	log.Printf("[Confetti] Fired %d particles on %.0fx%.0f monitor", len(c.particles), monitor.Width, monitor.Height)
	return nil
}

// Update 周期回调：以当前时钟推进一帧
// 返回 false 表示特效已结束，回调应被注销。
func (c *Confetti) Update() bool {
	return c.Advance(mainloop.Millis(c.clock.Now()))
}

// Advance 以给定的单调时间（毫秒）推进一帧
func (c *Confetti) Advance(now float64) bool {
	if !c.Running() {
		return mainloop.SourceRemove
	}

	dt := (now - c.lastTime) / 1000.0
	c.lastTime = now

	elapsed := now - c.startTime
	if elapsed > config.DurationMS {
		log.Printf("[Confetti] Finished after %.0fms", elapsed)
		c.Cleanup()
		return mainloop.SourceRemove
	}

	opacity := FadeOpacity(elapsed)
	for _, p := range c.particles {
		p.Update(dt)
		p.SetOpacity(opacity)
	}

	return mainloop.SourceContinue
}

// FadeOpacity 返回经过 elapsed 毫秒时的整体不透明度
// 最后 FadeMS 毫秒内从 1.0 线性降到 0.0。
func FadeOpacity(elapsed float64) float64 {
	fadeStart := config.DurationMS - config.FadeMS
	if elapsed > fadeStart {
		return 1.0 - (elapsed-fadeStart)/config.FadeMS
	}
	return 1.0
}

// Cleanup 注销定时器、销毁所有粒子和容器，回到 Idle
// Idle 状态下调用是空操作。
func (c *Confetti) Cleanup() {
	if c.timer != 0 {
		c.scheduler.SourceRemove(c.timer)
		c.timer = 0
	}

	for _, p := range c.particles {
		p.Destroy()
	}
	c.particles = nil

	if c.container != nil {
		c.shell.RemoveOverlay(c.container)
		c.container.Destroy()
		c.container = nil
	}
}
