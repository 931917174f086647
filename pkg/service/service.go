// Package service 在会话总线上导出彩纸触发接口
//
// 对外只有一个无参数、无返回值的方法 Fire。方法调用发生在 godbus 的
// goroutine 上，Trigger 的实现负责把工作投递回事件循环。
package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/decker502/confetti/pkg/config"
)

// ErrNameTaken 总线名已被其它进程持有（通常是已有守护进程在运行）
var ErrNameTaken = errors.New("service: bus name already owned")

// Trigger 接收远程 Fire 调用，必须是并发安全的
type Trigger interface {
	Fire()
}

// Bus 是 Service 需要的总线能力，*dbus.Conn 满足该接口
type Bus interface {
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
}

// introspectXML 描述导出对象的接口
var introspectXML = `<node>
	<interface name="` + config.BusInterface + `">
		<method name="Fire"/>
	</interface>` + introspect.IntrospectDataString + `</node>`

// object 是实际导出到总线上的对象
type object struct {
	trigger Trigger
}

// Fire 远程方法：投递一次触发，不向调用方报告错误
func (o *object) Fire() *dbus.Error {
	log.Printf("[Service] Fire requested over the bus")
	o.trigger.Fire()
	return nil
}

// Service 管理导出对象和总线名
// Enable 与 Disable 对称：Enable 获取的资源都由 Disable 释放。
type Service struct {
	bus     Bus
	trigger Trigger

	exported bool
	owned    bool
}

// New 创建服务
func New(bus Bus, trigger Trigger) *Service {
	return &Service{bus: bus, trigger: trigger}
}

// Enable 导出对象并声明总线名
// 名称已被占用时返回 ErrNameTaken，此时已导出的对象会被撤销。
func (s *Service) Enable() error {
	if s.exported {
		return nil
	}

	path := dbus.ObjectPath(config.BusObjectPath)
	if err := s.bus.Export(&object{trigger: s.trigger}, path, config.BusInterface); err != nil {
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	if err := s.bus.Export(introspect.Introspectable(introspectXML), path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return errors.Join(fmt.Errorf("failed to export introspection: %w", err), s.unexport())
	}
	s.exported = true

	reply, err := s.bus.RequestName(config.BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to request name %s: %w", config.BusName, err), s.unexport())
	}
	if reply != dbus.RequestNameReplyPrimaryOwner && reply != dbus.RequestNameReplyAlreadyOwner {
		return errors.Join(fmt.Errorf("%w: %s", ErrNameTaken, config.BusName), s.unexport())
	}
	s.owned = true

	log.Printf("[Service] Exported %s at %s", config.BusName, path)
	return nil
}

// Disable 释放总线名并撤销导出对象，未启用时是空操作
func (s *Service) Disable() error {
	var errs []error

	if s.owned {
		if _, err := s.bus.ReleaseName(config.BusName); err != nil {
			errs = append(errs, fmt.Errorf("failed to release name %s: %w", config.BusName, err))
		}
		s.owned = false
	}

	if s.exported {
		if err := s.unexport(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		log.Printf("[Service] Released %s", config.BusName)
	}
	return errors.Join(errs...)
}

// Enabled 返回服务是否已导出并持有总线名
func (s *Service) Enabled() bool {
	return s.exported && s.owned
}

func (s *Service) unexport() error {
	path := dbus.ObjectPath(config.BusObjectPath)
	s.exported = false

	// 导出 nil 即撤销
	var errs []error
	if err := s.bus.Export(nil, path, config.BusInterface); err != nil {
		errs = append(errs, fmt.Errorf("failed to unexport %s: %w", path, err))
	}
	if err := s.bus.Export(nil, path, "org.freedesktop.DBus.Introspectable"); err != nil {
		errs = append(errs, fmt.Errorf("failed to unexport introspection: %w", err))
	}
	return errors.Join(errs...)
}
