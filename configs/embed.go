package configs

import _ "embed"

// 嵌入默认环境配置文件（在configs目录内直接引用）
//
//go:embed development/config.json
var developmentConfig []byte

// GetDevelopmentConfig 获取开发环境配置
//
// 未通过 --config 指定配置文件时，节点使用该内置配置启动。
func GetDevelopmentConfig() []byte {
	return developmentConfig
}
