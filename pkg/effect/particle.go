package effect

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/confetti/pkg/config"
)

// Particle 单片彩纸的运动学和外观状态
//
// NewParticle 只生成纯数据；Attach 之后才拥有可视元素句柄，
// 句柄在 Destroy 时释放，之后 Update/SetOpacity 只更新数据。
type Particle struct {
	// 中心位置（屏幕坐标）
	X, Y float64
	// 速度（像素/秒）
	VX, VY float64

	Width, Height float64
	Rotation      float64 // 度
	RotationSpeed float64 // 度/秒
	Color         color.RGBA

	actor     Actor
	destroyed bool
}

// NewParticle 在屏幕左边缘或右边缘随机生成一片彩纸，朝屏幕中上部发射
func NewParticle(rng *rand.Rand, screenWidth, screenHeight float64) *Particle {
	x := 0.0
	if rng.Float64() >= 0.5 {
		x = screenWidth
	}
	y := screenHeight * randRange(rng, config.StartBandMin, config.StartBandMax)

	targetX := screenWidth/2 + randRange(rng, -config.TargetSpreadX, config.TargetSpreadX)
	targetY := screenHeight * randRange(rng, config.TargetBandMin, config.TargetBandMax)

	speed := randRange(rng, config.SpeedMin, config.SpeedMax)
	lift := randRange(rng, config.LiftMin, config.LiftMax)
	vx, vy := launchVelocity(x, y, targetX, targetY, speed, lift)

	return &Particle{
		X:             x,
		Y:             y,
		VX:            vx,
		VY:            vy,
		Width:         randRange(rng, config.ParticleWidthMin, config.ParticleWidthMax),
		Height:        randRange(rng, config.ParticleHeightMin, config.ParticleHeightMax),
		Rotation:      randRange(rng, 0, 360),
		RotationSpeed: randRange(rng, -config.RotationSpeedMax, config.RotationSpeedMax),
		Color:         config.Palette[rng.Intn(len(config.Palette))],
	}
}

// launchVelocity 计算朝目标点的速度，并叠加向上偏置
// 起点与目标重合时方向退化为正上方，避免产生 NaN。
func launchVelocity(x, y, targetX, targetY, speed, lift float64) (vx, vy float64) {
	dx := targetX - x
	dy := targetY - y
	dist := math.Hypot(dx, dy)

	dirX, dirY := 0.0, -1.0
	if dist > 0 {
		dirX, dirY = dx/dist, dy/dist
	}

	return dirX * speed, dirY*speed - lift
}

// randRange 返回 [min, max) 内的均匀随机数
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Attach 创建可视元素并挂到容器下，重复调用无效果
func (p *Particle) Attach(c Container) {
	if p.actor != nil || p.destroyed {
		return
	}
	p.actor = c.AddRect(RectSpec{
		X:            p.X - p.Width/2,
		Y:            p.Y - p.Height/2,
		Width:        p.Width,
		Height:       p.Height,
		Rotation:     p.Rotation,
		PivotX:       0.5,
		PivotY:       0.5,
		Fill:         p.Color,
		CornerRadius: config.ParticleCornerRadius,
	})
}

// Update 推进 dt 秒（显式欧拉积分）
func (p *Particle) Update(dt float64) {
	p.VY += config.Gravity * dt

	// 阻力按帧作用，不随 dt 缩放
	p.VX *= config.Drag
	p.VY *= config.Drag

	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Rotation += p.RotationSpeed * dt

	if p.actor != nil {
		p.actor.SetPosition(p.X-p.Width/2, p.Y-p.Height/2)
		p.actor.SetRotationAngle(p.Rotation)
	}
}

// SetOpacity 把 [0,1] 的不透明度映射到 0-255 并应用到可视元素
func (p *Particle) SetOpacity(opacity float64) {
	if p.actor != nil {
		p.actor.SetOpacity(opacityByte(opacity))
	}
}

// opacityByte floor(opacity*255)，越界值截断到通道范围
func opacityByte(opacity float64) uint8 {
	v := math.Floor(opacity * config.OpaqueAlpha)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= config.OpaqueAlpha {
		return config.OpaqueAlpha
	}
	return uint8(v)
}

// Destroy 释放可视元素，重复调用是空操作
func (p *Particle) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	if p.actor != nil {
		p.actor.Destroy()
		p.actor = nil
	}
}

// Destroyed 返回是否已销毁
func (p *Particle) Destroyed() bool {
	return p.destroyed
}
