package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/confetti/pkg/config"
	"github.com/decker502/confetti/pkg/scene"
)

// primaryMonitor 查询 Ebitengine 当前显示器
// 窗口位置相对于该显示器，因此原点固定为 (0, 0)
func primaryMonitor() scene.Rect {
	m := ebiten.Monitor()
	if m == nil {
		return scene.Rect{}
	}
	w, h := m.Size()
	return scene.Rect{Width: float64(w), Height: float64(h)}
}

// fitWindow 让窗口覆盖整个主显示器
func (a *App) fitWindow() {
	r := a.stage.PrimaryMonitor()
	if r.Width <= 0 || r.Height <= 0 {
		log.Printf("[App] Warning: monitor size unavailable, keeping default window size")
		return
	}
	ebiten.SetWindowPosition(int(r.X), int(r.Y))
	ebiten.SetWindowSize(int(r.Width), int(r.Height))
	log.Printf("[App] Overlay window %dx%d", int(r.Width), int(r.Height))
}

// configureWindow 在 RunGame 之前设置覆盖窗口属性：
// 无边框、置顶、鼠标穿透、失去焦点时继续运行
func configureWindow() {
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetRunnableOnUnfocused(true)
}

// Run 打开透明覆盖窗口并运行，直到 Quit 或单次模式结束
func Run(a *App) error {
	configureWindow()
	return ebiten.RunGameWithOptions(a, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
		SkipTaskbar:       true,
	})
}
