// Package log 提供内核系统的核心日志接口定义
//
// 📋 **日志系统核心接口 (Core Logging System Interface)**
//
// 本文件定义了内核系统的核心日志接口，专注于：
// - 统一的日志记录接口
// - 结构化日志和上下文支持
// - 多级别日志的统一管理
//
// 🎯 **设计原则**
// - 统一接口：为所有模块提供统一的日志接口
// - 结构化：支持结构化日志和元数据附加
// - 灵活配置：支持灵活的日志级别和输出配置
package log

import "go.uber.org/zap"

// Logger 定义日志记录器接口
type Logger interface {
	// Debug 记录调试级别的日志
	Debug(msg string)

	// Debugf 记录格式化的调试级别日志
	Debugf(format string, args ...interface{})

	// Info 记录信息级别的日志
	Info(msg string)

	// Infof 记录格式化的信息级别日志
	Infof(format string, args ...interface{})

	// Warn 记录警告级别的日志
	Warn(msg string)

	// Warnf 记录格式化的警告级别日志
	Warnf(format string, args ...interface{})

	// Error 记录错误级别的日志
	Error(msg string)

	// Errorf 记录格式化的错误级别日志
	Errorf(format string, args ...interface{})

	// Fatal 记录致命级别的日志并退出程序
	Fatal(msg string)

	// Fatalf 记录格式化的致命级别日志并退出程序
	Fatalf(format string, args ...interface{})

	// With 附加结构化上下文字段，返回新的日志记录器
	With(args ...interface{}) Logger

	// Sync 刷新缓冲的日志条目
	Sync() error

	// GetZapLogger 获取底层zap日志实例（供需要原生zap能力的组件使用）
	GetZapLogger() *zap.Logger
}
