// Package app 提供彩纸守护进程的核心包装器
//
// App 对应宿主插件的生命周期：Enable 创建特效控制器并在会话总线上导出触发接口，
// Disable 强制清理正在进行的特效并释放总线资源。App 同时实现 ebiten.Game，
// 每个 tick 驱动一次事件循环。
package app

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/confetti/pkg/effect"
	"github.com/decker502/confetti/pkg/mainloop"
	"github.com/decker502/confetti/pkg/scene"
	"github.com/decker502/confetti/pkg/service"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Once 触发一次特效，特效结束后退出
	Once bool
	// Bus 会话总线连接，为 nil 时不导出触发接口
	Bus service.Bus
	// Monitor 返回主显示器几何信息，为 nil 时查询 Ebitengine
	Monitor func() scene.Rect
	// Clock 单调时钟，为 nil 时使用进程单调时钟
	Clock mainloop.Clock
	// Rand 粒子随机源，为 nil 时以当前时间为种子
	Rand *rand.Rand
}

// App 是守护进程的核心包装器，实现 ebiten.Game 接口
type App struct {
	loop    *mainloop.Loop
	stage   *scene.Stage
	shell   *stageShell
	rng     *rand.Rand
	bus     service.Bus
	effect  *effect.Confetti
	service *service.Service

	enabled     bool
	once        bool
	fired       bool
	quitting    bool
	windowReady bool
}

// NewApp 创建应用，此时尚未启用
func NewApp(cfg Config) *App {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	monitor := cfg.Monitor
	if monitor == nil {
		monitor = primaryMonitor
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	stage := scene.NewStage(monitor)
	return &App{
		loop:  mainloop.New(cfg.Clock),
		stage: stage,
		shell: &stageShell{stage: stage},
		rng:   rng,
		bus:   cfg.Bus,
		once:  cfg.Once,
	}
}

// Enable 创建特效控制器，导出服务并声明总线名
func (a *App) Enable() error {
	if a.enabled {
		return nil
	}

	a.effect = effect.New(a.shell, a.loop, a.loop.Clock(), a.rng)

	if a.bus != nil {
		a.service = service.New(a.bus, a)
		if err := a.service.Enable(); err != nil {
			a.effect = nil
			a.service = nil
			return err
		}
	}

	a.enabled = true
	log.Printf("[App] Enabled")
	return nil
}

// Disable 清理正在进行的特效，释放总线名并撤销导出
// 与 Enable 对称，重复调用是安全的。
func (a *App) Disable() error {
	if !a.enabled {
		return nil
	}
	a.enabled = false

	if a.effect != nil {
		a.effect.Cleanup()
		a.effect = nil
	}

	var err error
	if a.service != nil {
		err = a.service.Disable()
		a.service = nil
	}

	a.loop.Clear()
	log.Printf("[App] Disabled")
	return err
}

// Fire 请求触发一次特效，可以在任意 goroutine 调用
// 触发在下一次事件循环迭代中执行。
func (a *App) Fire() {
	a.loop.Invoke(a.fire)
}

func (a *App) fire() {
	if a.effect == nil {
		log.Printf("[App] Fire ignored: not enabled")
		return
	}
	a.fired = true
	if err := a.effect.Fire(); err != nil {
		log.Printf("[App] Fire failed: %v", err)
	}
}

// Quit 请求退出，可以在任意 goroutine 调用
func (a *App) Quit() {
	a.loop.Invoke(func() {
		a.quitting = true
	})
}

// Running 返回特效是否正在进行
func (a *App) Running() bool {
	return a.effect != nil && a.effect.Running()
}

// Stage 返回场景图
func (a *App) Stage() *scene.Stage {
	return a.stage
}

// Step 执行一次事件循环迭代，返回应用是否应该退出
func (a *App) Step() bool {
	a.loop.Iterate()

	if a.quitting {
		return true
	}
	// 单次模式：特效结束（或触发失败）后退出
	return a.once && a.fired && !a.Running()
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if !a.windowReady {
		a.fitWindow()
		a.windowReady = true
	}

	if a.Step() {
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制覆盖层
// 没有特效时不绘制任何内容，透明窗口完全不可见
func (a *App) Draw(screen *ebiten.Image) {
	a.stage.Draw(screen)
}

// Layout 逻辑尺寸与窗口尺寸一致，坐标即屏幕像素
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
