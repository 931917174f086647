package effect

import (
	"image/color"
	"time"

	"github.com/decker502/confetti/pkg/mainloop"
)

// 宿主能力接口
// 特效只通过这些接口访问场景图、顶层合成、定时器和时钟，便于测试时替换。

// Rect 屏幕矩形
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectSpec 描述一个纯色矩形可视元素
type RectSpec struct {
	X, Y           float64 // 左上角
	Width, Height  float64
	Rotation       float64 // 度
	PivotX, PivotY float64 // 旋转支点（相对自身尺寸）
	Fill           color.RGBA
	CornerRadius   float64
}

// Actor 可视元素句柄
type Actor interface {
	SetPosition(x, y float64)
	SetRotationAngle(degrees float64)
	SetOpacity(opacity uint8)
	Destroy()
}

// Container 全屏覆盖容器
type Container interface {
	// AddRect 创建矩形元素并挂到容器下，容器销毁时一并销毁
	AddRect(spec RectSpec) Actor
	Destroy()
}

// Shell 宿主桌面外壳
type Shell interface {
	// PrimaryMonitor 返回主显示器的位置和尺寸
	PrimaryMonitor() Rect
	// AddOverlay 创建不接收输入的全屏容器并放入顶层
	AddOverlay(bounds Rect) (Container, error)
	// RemoveOverlay 把容器移出顶层（不销毁）
	RemoveOverlay(c Container)
}

// Scheduler 周期回调注册，由 mainloop.Loop 实现
type Scheduler interface {
	TimeoutAdd(priority int, interval time.Duration, fn func() bool) mainloop.SourceID
	SourceRemove(id mainloop.SourceID) bool
}
