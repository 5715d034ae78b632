package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Init 按运行模式创建日志：release 使用 JSON 生产配置，其他模式使用开发配置
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	Set(l)
	return nil
}

// Set 替换全局日志
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
}

// L 获取全局日志，未初始化时不输出
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Sync 刷新缓冲
func Sync() error {
	return L().Sync()
}
