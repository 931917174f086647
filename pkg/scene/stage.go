// Package scene 提供覆盖窗口内的保留模式场景图
//
// Stage 管理所有控件（widget）的生命周期和属性，顶层（top chrome）中的控件
// 及其子控件在每帧由 Draw 绘制到 Ebitengine 屏幕上。
// Stage 不是并发安全的，只能在事件循环所在的 goroutine 上使用。
package scene

import (
	"image/color"
	"log"
)

// WidgetID 是控件的唯一标识符，0 保留为无效 ID
type WidgetID uint64

// Rect 矩形区域（屏幕坐标）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Style 控件外观
type Style struct {
	Fill         color.RGBA // 填充色，A=0 表示不绘制自身
	CornerRadius float64    // 圆角半径（像素）
}

// WidgetOptions 创建控件时的初始属性
type WidgetOptions struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64 // 绕 Z 轴旋转角度（度）
	Style         Style
	Reactive      bool // 是否接收输入，覆盖层控件应为 false
}

// node 是控件在 Stage 中的实际状态
type node struct {
	id       WidgetID
	parent   WidgetID
	children []WidgetID

	x, y          float64
	width, height float64
	rotation      float64
	pivotX        float64 // 旋转支点（相对自身尺寸的比例）
	pivotY        float64
	opacity       uint8
	style         Style
	reactive      bool
}

// Stage 管理所有控件
type Stage struct {
	nextID uint64
	nodes  map[WidgetID]*node
	// 顶层控件，按添加顺序绘制（后添加的在上面）
	chrome []WidgetID

	monitor func() Rect

	renderer renderer
}

// NewStage 创建一个新的 Stage
// monitor 返回主显示器的位置和尺寸
func NewStage(monitor func() Rect) *Stage {
	return &Stage{
		nextID:  1, // ID从1开始,0保留为无效ID
		nodes:   make(map[WidgetID]*node),
		monitor: monitor,
	}
}

// PrimaryMonitor 返回主显示器的位置和尺寸
func (s *Stage) PrimaryMonitor() Rect {
	if s.monitor == nil {
		return Rect{}
	}
	return s.monitor()
}

// NewWidget 创建控件并返回句柄
// 新控件不在场景中可见，需要 AddChild 到可见控件或 AddTopChrome。
func (s *Stage) NewWidget(opts WidgetOptions) *Widget {
	id := WidgetID(s.nextID)
	s.nextID++
	s.nodes[id] = &node{
		id:       id,
		x:        opts.X,
		y:        opts.Y,
		width:    opts.Width,
		height:   opts.Height,
		rotation: opts.Rotation,
		opacity:  255,
		style:    opts.Style,
		reactive: opts.Reactive,
	}
	return &Widget{stage: s, id: id}
}

// AddTopChrome 把控件加入顶层，显示在所有内容之上
func (s *Stage) AddTopChrome(w *Widget) error {
	n, ok := s.lookup(w)
	if !ok {
		return ErrWidgetDestroyed
	}
	if n.parent != 0 {
		return ErrWidgetParented
	}
	for _, id := range s.chrome {
		if id == n.id {
			return ErrAlreadyInChrome
		}
	}
	s.chrome = append(s.chrome, n.id)
	log.Printf("[Stage] Widget %d added to top chrome (%.0fx%.0f at %.0f,%.0f)", n.id, n.width, n.height, n.x, n.y)
	return nil
}

// RemoveChrome 把控件移出顶层，不存在时不做任何事
func (s *Stage) RemoveChrome(w *Widget) {
	if w == nil {
		return
	}
	s.removeFromChrome(w.id)
}

func (s *Stage) removeFromChrome(id WidgetID) {
	for i, cid := range s.chrome {
		if cid == id {
			s.chrome = append(s.chrome[:i], s.chrome[i+1:]...)
			return
		}
	}
}

// InChrome 返回控件是否在顶层
func (s *Stage) InChrome(w *Widget) bool {
	if w == nil {
		return false
	}
	for _, id := range s.chrome {
		if id == w.id {
			return true
		}
	}
	return false
}

// WidgetCount 返回存活的控件数量
func (s *Stage) WidgetCount() int {
	return len(s.nodes)
}

// ChromeCount 返回顶层控件数量
func (s *Stage) ChromeCount() int {
	return len(s.chrome)
}

func (s *Stage) lookup(w *Widget) (*node, bool) {
	if w == nil || w.stage != s {
		return nil, false
	}
	n, ok := s.nodes[w.id]
	return n, ok
}

// destroy 递归销毁控件及其子控件
func (s *Stage) destroy(id WidgetID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	children := n.children
	n.children = nil
	for _, child := range children {
		s.destroy(child)
	}
	if parent, ok := s.nodes[n.parent]; ok {
		for i, cid := range parent.children {
			if cid == id {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}
	s.removeFromChrome(id)
	delete(s.nodes, id)
}
