package storage

// 存储配置默认值
const (
	// defaultEngine 默认使用BadgerDB持久化引擎
	defaultEngine = EngineBadger

	// defaultDataPath 默认数据目录
	defaultDataPath = "./data/kernel"

	// defaultSyncWrites 默认关闭同步写
	// 区块在终结时整体原子提交，逐写同步的收益有限而代价显著
	defaultSyncWrites = false
)

// createDefaultStorageOptions 创建默认存储配置
func createDefaultStorageOptions() *StorageOptions {
	return &StorageOptions{
		Engine:     defaultEngine,
		DataPath:   defaultDataPath,
		SyncWrites: defaultSyncWrites,
	}
}
