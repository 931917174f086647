package scene

import "errors"

var (
	// ErrWidgetDestroyed 控件已被销毁
	ErrWidgetDestroyed = errors.New("scene: widget destroyed")
	// ErrWidgetParented 控件已有父控件，不能加入顶层
	ErrWidgetParented = errors.New("scene: widget already has a parent")
	// ErrAlreadyInChrome 控件已在顶层
	ErrAlreadyInChrome = errors.New("scene: widget already in top chrome")
)
