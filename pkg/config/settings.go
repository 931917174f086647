package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DaemonSettings 守护进程设置
// 注意：只包含守护进程的运行方式，特效参数始终使用编译期常量
type DaemonSettings struct {
	// Verbose 启用详细日志输出
	Verbose bool `yaml:"verbose"`

	// FireOnStart 启动后立即触发一次特效
	FireOnStart bool `yaml:"fireOnStart"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DaemonSettings {
	return &DaemonSettings{
		Verbose:     false,
		FireOnStart: false,
	}
}

// SettingsManager 设置管理器
// 负责守护进程设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DaemonSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "daemon"
)

// OpenStore 打开本应用的 gdata 存储
func OpenStore() (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return m, nil
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，此时使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded DaemonSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DaemonSettings {
	return sm.settings
}

// SetVerbose 设置详细日志开关
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetVerbose(enabled bool) {
	sm.settings.Verbose = enabled
}

// SetFireOnStart 设置启动即触发
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetFireOnStart(enabled bool) {
	sm.settings.FireOnStart = enabled
}
