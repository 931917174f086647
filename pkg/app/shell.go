package app

import (
	"log"

	"github.com/decker502/confetti/pkg/effect"
	"github.com/decker502/confetti/pkg/scene"
)

// stageShell 把 scene.Stage 适配为特效使用的宿主外壳
type stageShell struct {
	stage *scene.Stage
}

// overlay 是放在顶层的全屏容器
type overlay struct {
	stage  *scene.Stage
	widget *scene.Widget
}

func (s *stageShell) PrimaryMonitor() effect.Rect {
	return effect.Rect(s.stage.PrimaryMonitor())
}

func (s *stageShell) AddOverlay(bounds effect.Rect) (effect.Container, error) {
	w := s.stage.NewWidget(scene.WidgetOptions{
		X:        bounds.X,
		Y:        bounds.Y,
		Width:    bounds.Width,
		Height:   bounds.Height,
		Reactive: false,
	})
	if err := s.stage.AddTopChrome(w); err != nil {
		w.Destroy()
		return nil, err
	}
	return &overlay{stage: s.stage, widget: w}, nil
}

func (s *stageShell) RemoveOverlay(c effect.Container) {
	if o, ok := c.(*overlay); ok {
		s.stage.RemoveChrome(o.widget)
	}
}

// AddRect 创建彩纸矩形并挂到容器下
func (o *overlay) AddRect(spec effect.RectSpec) effect.Actor {
	w := o.stage.NewWidget(scene.WidgetOptions{
		X:        spec.X,
		Y:        spec.Y,
		Width:    spec.Width,
		Height:   spec.Height,
		Rotation: spec.Rotation,
		Style: scene.Style{
			Fill:         spec.Fill,
			CornerRadius: spec.CornerRadius,
		},
	})
	w.SetPivotPoint(spec.PivotX, spec.PivotY)
	if err := o.widget.AddChild(w); err != nil {
		log.Printf("[Shell] Warning: failed to attach widget %d: %v", w.ID(), err)
	}
	return w
}

func (o *overlay) Destroy() {
	o.widget.Destroy()
}
