package scene

// Widget 是控件句柄
// 句柄在 Destroy 之后失效，此后对它的所有操作都是空操作。
type Widget struct {
	stage *Stage
	id    WidgetID
}

// ID 返回控件 ID
func (w *Widget) ID() WidgetID {
	return w.id
}

// Alive 返回控件是否仍然存在
func (w *Widget) Alive() bool {
	_, ok := w.stage.lookup(w)
	return ok
}

// AddChild 把 child 挂到当前控件下，child 的坐标相对于当前控件
func (w *Widget) AddChild(child *Widget) error {
	n, ok := w.stage.lookup(w)
	if !ok {
		return ErrWidgetDestroyed
	}
	c, ok := w.stage.lookup(child)
	if !ok {
		return ErrWidgetDestroyed
	}
	if c.parent != 0 {
		return ErrWidgetParented
	}
	c.parent = n.id
	n.children = append(n.children, c.id)
	return nil
}

// Children 返回子控件数量
func (w *Widget) Children() int {
	n, ok := w.stage.lookup(w)
	if !ok {
		return 0
	}
	return len(n.children)
}

// SetPosition 设置左上角位置（相对父控件）
func (w *Widget) SetPosition(x, y float64) {
	if n, ok := w.stage.lookup(w); ok {
		n.x, n.y = x, y
	}
}

// Position 返回左上角位置
func (w *Widget) Position() (x, y float64) {
	if n, ok := w.stage.lookup(w); ok {
		return n.x, n.y
	}
	return 0, 0
}

// SetSize 设置尺寸
func (w *Widget) SetSize(width, height float64) {
	if n, ok := w.stage.lookup(w); ok {
		n.width, n.height = width, height
	}
}

// Size 返回尺寸
func (w *Widget) Size() (width, height float64) {
	if n, ok := w.stage.lookup(w); ok {
		return n.width, n.height
	}
	return 0, 0
}

// SetRotationAngle 设置绕 Z 轴的旋转角度（度）
func (w *Widget) SetRotationAngle(degrees float64) {
	if n, ok := w.stage.lookup(w); ok {
		n.rotation = degrees
	}
}

// RotationAngle 返回旋转角度（度）
func (w *Widget) RotationAngle() float64 {
	if n, ok := w.stage.lookup(w); ok {
		return n.rotation
	}
	return 0
}

// SetPivotPoint 设置旋转支点，(0.5, 0.5) 表示绕自身中心旋转
func (w *Widget) SetPivotPoint(px, py float64) {
	if n, ok := w.stage.lookup(w); ok {
		n.pivotX, n.pivotY = px, py
	}
}

// PivotPoint 返回旋转支点
func (w *Widget) PivotPoint() (px, py float64) {
	if n, ok := w.stage.lookup(w); ok {
		return n.pivotX, n.pivotY
	}
	return 0, 0
}

// SetOpacity 设置不透明度（0-255），与父控件的不透明度相乘
func (w *Widget) SetOpacity(opacity uint8) {
	if n, ok := w.stage.lookup(w); ok {
		n.opacity = opacity
	}
}

// Opacity 返回不透明度
func (w *Widget) Opacity() uint8 {
	if n, ok := w.stage.lookup(w); ok {
		return n.opacity
	}
	return 0
}

// Reactive 返回控件是否接收输入
func (w *Widget) Reactive() bool {
	if n, ok := w.stage.lookup(w); ok {
		return n.reactive
	}
	return false
}

// Style 返回控件外观
func (w *Widget) Style() Style {
	if n, ok := w.stage.lookup(w); ok {
		return n.style
	}
	return Style{}
}

// Destroy 销毁控件及其全部子控件，并从父控件和顶层中移除
// 重复调用是安全的。
func (w *Widget) Destroy() {
	if w == nil || w.stage == nil {
		return
	}
	w.stage.destroy(w.id)
}
