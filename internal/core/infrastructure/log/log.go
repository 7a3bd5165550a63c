// Package log 提供了一个通用的日志接口和基于zap的实现
// 它支持不同级别的日志记录、结构化日志、日志轮转等功能
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logconfig "github.com/weisyn/kernel/internal/config/log"
	logInterface "github.com/weisyn/kernel/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// 全局日志实例，使用接口类型
	globalLogger logInterface.Logger
	// 用于保护全局日志实例的互斥锁
	mu sync.RWMutex
)

// Logger 是日志记录器的结构体，实现了log.Logger接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

// 初始化全局日志记录器
func init() {
	ResetDefault()
}

// ResetDefault 重置全局日志记录器为默认配置
func ResetDefault() {
	logger, err := New(logconfig.New(nil).GetOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化默认日志记录器失败: %v\n", err)
		return
	}
	SetLogger(logger)
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New 根据配置创建日志记录器
func New(options *logconfig.LogOptions) (logInterface.Logger, error) {
	if options == nil {
		return nil, fmt.Errorf("日志配置不能为空")
	}

	level, ok := options.LevelMap[options.Level]
	if !ok {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	var cores []zapcore.Core

	// 控制台输出
	if options.ToConsole {
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level))
	}

	// 文件输出（带轮转）
	if options.FilePath != "" {
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, createFileWriter(options), level))
	}

	// 未配置任何输出时兜底到stderr，保证日志不丢失
	if len(cores) == 0 {
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level))
	}

	zapOptions := []zap.Option{}
	if options.EnableCaller {
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if options.EnableStacktrace {
		zapOptions = append(zapOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zapOptions...)

	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// createFileWriter 创建日志文件写入器
func createFileWriter(options *logconfig.LogOptions) zapcore.WriteSyncer {
	// 确保日志目录存在
	logDir := filepath.Dir(options.FilePath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "创建日志目录失败 %s: %v\n", logDir, err)
		return zapcore.AddSync(os.Stderr)
	}

	// 配置日志轮转
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   options.FilePath,
		MaxSize:    options.MaxSize, // megabytes
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAge, // days
		Compress:   options.Compress,
	})
}

// Debug 记录调试级别的日志
func (l *Logger) Debug(msg string) { l.sugar.Debug(msg) }

// Debugf 记录格式化的调试级别日志
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info 记录信息级别的日志
func (l *Logger) Info(msg string) { l.sugar.Info(msg) }

// Infof 记录格式化的信息级别日志
func (l *Logger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn 记录警告级别的日志
func (l *Logger) Warn(msg string) { l.sugar.Warn(msg) }

// Warnf 记录格式化的警告级别日志
func (l *Logger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error 记录错误级别的日志
func (l *Logger) Error(msg string) { l.sugar.Error(msg) }

// Errorf 记录格式化的错误级别日志
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal 记录致命级别的日志并退出程序
func (l *Logger) Fatal(msg string) { l.sugar.Fatal(msg) }

// Fatalf 记录格式化的致命级别日志并退出程序
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 附加结构化上下文字段，返回新的日志记录器
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	newSugar := l.sugar.With(args...)
	return &Logger{
		zapLogger: newSugar.Desugar(),
		sugar:     newSugar,
	}
}

// Sync 刷新缓冲的日志条目
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// GetZapLogger 获取底层zap日志实例
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}
