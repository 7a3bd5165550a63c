// kernel-node 内核节点入口
//
// 组装状态转换内核并托管其生命周期：
// 配置加载 → 依赖图组装 → 创世加载 → 等待停止信号。
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/weisyn/kernel/internal/app"
	"github.com/weisyn/kernel/pkg/types"
)

const version = "1.0.0"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n❌ [PANIC] 程序发生严重错误: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand 构造根命令
func newRootCommand() *cobra.Command {
	var (
		configPath   string
		chainID      string
		dataDir      string
		genesisPath  string
		memoryEngine bool
	)

	root := &cobra.Command{
		Use:     "kernel-node",
		Short:   "模块化状态转换内核节点",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner()

			opts := []app.Option{}
			if configPath != "" {
				opts = append(opts, app.WithConfigFile(configPath))
			}

			chainConfig := &types.UserChainConfig{}
			chainConfigured := false
			if chainID != "" {
				chainConfig.ChainID = &chainID
				chainConfigured = true
			}
			if genesisPath != "" {
				chainConfig.GenesisPath = &genesisPath
				chainConfigured = true
			}
			if chainConfigured {
				opts = append(opts, app.WithChain(chainConfig))
			}

			storageConfig := &types.UserStorageConfig{}
			storageConfigured := false
			if dataDir != "" {
				storageConfig.DataPath = &dataDir
				storageConfigured = true
			}
			if memoryEngine {
				engine := "memory"
				storageConfig.Engine = &engine
				storageConfigured = true
			}
			if storageConfigured {
				opts = append(opts, app.WithStorage(storageConfig))
			}

			return app.Run(cmd.Context(), opts...)
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "配置文件路径（空表示使用默认配置）")
	root.Flags().StringVar(&chainID, "chain-id", "", "链标识（覆盖配置文件）")
	root.Flags().StringVar(&dataDir, "data-dir", "", "数据目录（覆盖配置文件）")
	root.Flags().StringVar(&genesisPath, "genesis", "", "创世配置文件路径")
	root.Flags().BoolVar(&memoryEngine, "memory", false, "使用内存存储引擎（数据不落盘，开发调试用）")

	root.SetContext(context.Background())
	return root
}

// printBanner 打印启动横幅
func printBanner() {
	banner, _ := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("KERNEL", pterm.NewStyle(pterm.FgCyan)),
	).Srender()
	pterm.DefaultCenter.Print(banner)
	pterm.DefaultCenter.Printf("模块化状态转换内核 v%s\n", version)
}
