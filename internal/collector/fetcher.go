package collector

import "context"

// placeholderWord 上游缺少标题字段时的兜底文案
const placeholderWord = "未知"

// maxItems 每个平台归一化后最多保留的排名条数
const maxItems = 10

// HotItem 统一后的热搜条目，Rank 为 0 表示置顶（仅微博）
type HotItem struct {
	Rank     int    `json:"rank"`
	Word     string `json:"word"`
	HotValue string `json:"hot_value"`
	Label    string `json:"label"`
}

// HotList 按上游顺序排列的热搜列表
type HotList []HotItem

// Fetcher 抽象每一个热搜平台
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (HotList, error)
}
