package processor

import (
	"strconv"
	"strings"

	"github.com/LJTian/HotSearch/internal/collector"
)

const (
	MinCount = 1
	MaxCount = 20
)

// DropPinned 去掉 rank 为 0 的置顶条目，返回新切片
func DropPinned(list collector.HotList) collector.HotList {
	out := make(collector.HotList, 0, len(list))
	for _, it := range list {
		if it.Rank > 0 {
			out = append(out, it)
		}
	}
	return out
}

// ParseCount 从命令参数解析展示条数，缺省或不在 [1,20] 时返回 def
func ParseCount(args string, def int) int {
	args = strings.TrimSpace(args)
	if args == "" {
		return def
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < MinCount || n > MaxCount {
		return def
	}
	return n
}
