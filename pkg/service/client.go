package service

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/decker502/confetti/pkg/config"
)

// Caller 是远程调用需要的总线能力，*dbus.Conn 满足该接口
type Caller interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// FireRemote 调用正在运行的守护进程的 Fire 方法
func FireRemote(bus Caller) error {
	obj := bus.Object(config.BusName, dbus.ObjectPath(config.BusObjectPath))
	if call := obj.Call(config.BusInterface+".Fire", 0); call.Err != nil {
		return fmt.Errorf("failed to call %s.Fire: %w", config.BusInterface, call.Err)
	}
	return nil
}

// ConnectSession 连接会话总线
func ConnectSession() (*dbus.Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return conn, nil
}
