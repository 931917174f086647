package config

import (
	"image/color"
	"time"
)

// 彩纸特效配置常量
// 本文件定义了彩纸（confetti）特效的全部参数。特效参数是编译期常量，不提供运行时配置。

// Effect Lifecycle (特效生命周期)
const (
	// ParticleCount 是每次触发生成的彩纸数量
	ParticleCount = 300

	// DurationMS 是特效总时长（毫秒），超过后特效自动清理
	DurationMS = 4000.0

	// FadeMS 是结束前的淡出时长（毫秒）
	// 在 DurationMS-FadeMS 之后透明度从 1.0 线性降到 0.0
	FadeMS = 1000.0

	// FramePeriod 是逐帧回调的目标周期（约 60Hz）
	FramePeriod = 16 * time.Millisecond
)

// Particle Kinematics (粒子运动学参数)
// 坐标系：屏幕坐标，Y 轴向下为正，"向上"即 Y 减小
const (
	// Gravity 是重力加速度（像素/秒²）
	Gravity = 600.0

	// Drag 是每帧速度衰减系数
	// 注意：按帧而非按时间归一化，实际阻力强度与帧率相关
	Drag = 0.99

	// SpeedMin/SpeedMax 是发射速度范围（像素/秒），[min, max)
	SpeedMin = 800.0
	SpeedMax = 1500.0

	// LiftMin/LiftMax 是额外向上偏置范围（像素/秒），从 vy 中减去以形成抛物线
	LiftMin = 200.0
	LiftMax = 500.0

	// TargetSpreadX 是目标点相对屏幕中心的水平散布半宽（像素）
	TargetSpreadX = 200.0

	// StartBandMin/StartBandMax 是起始 Y 所在屏幕高度比例区间
	StartBandMin = 0.3
	StartBandMax = 0.7

	// TargetBandMin/TargetBandMax 是目标 Y 所在屏幕高度比例区间
	TargetBandMin = 0.2
	TargetBandMax = 0.5

	// RotationSpeedMax 是旋转速度绝对值上限（度/秒），范围 [-max, max)
	RotationSpeedMax = 300.0
)

// Particle Appearance (粒子外观)
const (
	ParticleWidthMin  = 8.0
	ParticleWidthMax  = 16.0
	ParticleHeightMin = 12.0
	ParticleHeightMax = 24.0

	// ParticleCornerRadius 是彩纸矩形的圆角半径（像素）
	ParticleCornerRadius = 2.0

	// OpaqueAlpha 是 8 位透明度通道的最大值
	OpaqueAlpha = 255
)

// Palette 是彩纸的固定调色板，创建时均匀随机选取一种颜色
var Palette = [8]color.RGBA{
	{R: 0xFF, G: 0x33, B: 0x52, A: 0xFF}, // Red
	{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, // Orange
	{R: 0xFF, G: 0xE6, B: 0x00, A: 0xFF}, // Yellow
	{R: 0x33, G: 0xCC, B: 0x33, A: 0xFF}, // Green
	{R: 0x33, G: 0x99, B: 0xFF, A: 0xFF}, // Blue
	{R: 0x99, G: 0x33, B: 0xCC, A: 0xFF}, // Purple
	{R: 0xFF, G: 0x66, B: 0xB2, A: 0xFF}, // Pink
	{R: 0x00, G: 0xE6, B: 0xE6, A: 0xFF}, // Cyan
}

// Session Bus Identity (会话总线标识)
const (
	// BusName 是在会话总线上声明的服务名
	BusName = "com.github.ojii3.Confetti"

	// BusInterface 是导出对象的接口名
	BusInterface = "com.github.ojii3.Confetti"

	// BusObjectPath 是导出对象路径
	BusObjectPath = "/com/github/ojii3/Confetti"
)

// Window (覆盖窗口)
const (
	WindowTitle = "Confetti"

	// AppName 是 gdata 存储使用的应用名
	AppName = "confetti"
)
