package processor

import (
	"fmt"
	"strings"

	"github.com/LJTian/HotSearch/internal/collector"
)

const (
	separatorWidth = 30
	pinnedMark     = "置顶"
)

// Options 控制单条热搜的展示内容
type Options struct {
	ShowLabel bool
	// ShowHotValue 目前不参与渲染，热度值一律不输出
	ShowHotValue bool
}

// Format 把热搜列表渲染成消息文本，只展示前 count 条
func Format(platform string, list collector.HotList, count int, opts Options) string {
	if len(list) == 0 {
		return platform + " - 暂无数据"
	}

	if count < 0 {
		count = 0
	}
	display := list
	if count < len(display) {
		display = display[:count]
	}

	lines := make([]string, 0, len(display)+2)
	lines = append(lines, fmt.Sprintf("%s TOP%d", platform, len(display)))
	lines = append(lines, strings.Repeat("=", separatorWidth))

	for _, item := range display {
		lines = append(lines, formatLine(item, opts))
	}
	return strings.Join(lines, "\n")
}

func formatLine(item collector.HotItem, opts Options) string {
	rank := pinnedMark
	if item.Rank != 0 {
		rank = fmt.Sprintf("%2d", item.Rank)
	}

	line := rank + ". " + item.Word
	if opts.ShowLabel && item.Label != "" {
		line += " [" + item.Label + "]"
	}
	return line
}
