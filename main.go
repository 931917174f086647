// Package main 是彩纸覆盖层守护进程的入口
//
// Usage:
//
//	confetti [flags]          运行守护进程，在会话总线上等待 Fire 调用
//	confetti fire             让正在运行的守护进程触发一次特效
//	confetti once             不连接总线，触发一次特效后退出
//	confetti settings [flags] 查看或修改持久化的守护进程设置
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
