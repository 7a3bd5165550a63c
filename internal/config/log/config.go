package log

import (
	"github.com/weisyn/kernel/pkg/types"
	"go.uber.org/zap/zapcore"
)

// LogOptions 日志配置选项
// 专注于基础设施核心功能的简化配置
type LogOptions struct {
	// === 基础配置 ===
	Level     string `json:"level"`      // 日志级别 (debug, info, warn, error, fatal)
	ToConsole bool   `json:"to_console"` // 是否输出到控制台
	FilePath  string `json:"file_path"`  // 日志文件路径（空表示不写文件）

	// === 基础轮转配置 ===
	MaxSize    int  `json:"max_size"`    // 单个日志文件最大大小(MB)
	MaxBackups int  `json:"max_backups"` // 最大备份文件数
	MaxAge     int  `json:"max_age"`     // 日志文件最大保留天数
	Compress   bool `json:"compress"`    // 是否压缩历史日志文件

	// === 调试配置 ===
	EnableCaller     bool `json:"enable_caller"`     // 是否启用调用者信息
	EnableStacktrace bool `json:"enable_stacktrace"` // 是否启用堆栈跟踪

	// === 内部配置（不对外暴露） ===
	LevelMap map[string]zapcore.Level `json:"-"` // 级别映射
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置实现
// 先应用完整默认值，再用用户配置覆盖
func New(userConfig *types.UserLogConfig) *Config {
	options := createDefaultLogOptions()
	applyUserLogConfig(options, userConfig)
	return &Config{options: options}
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// applyUserLogConfig 将用户配置覆盖到默认值之上
// 指针字段为nil表示用户未设置，保留默认值
func applyUserLogConfig(options *LogOptions, user *types.UserLogConfig) {
	if user == nil {
		return
	}
	if user.Level != nil {
		options.Level = *user.Level
	}
	if user.ToConsole != nil {
		options.ToConsole = *user.ToConsole
	}
	if user.FilePath != nil {
		options.FilePath = *user.FilePath
	}
	if user.MaxSize != nil {
		options.MaxSize = *user.MaxSize
	}
	if user.MaxBackups != nil {
		options.MaxBackups = *user.MaxBackups
	}
	if user.MaxAge != nil {
		options.MaxAge = *user.MaxAge
	}
	if user.Compress != nil {
		options.Compress = *user.Compress
	}
}
