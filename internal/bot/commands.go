package bot

import (
	"strings"
	"unicode"
)

// Platform 热搜平台代码
type Platform string

const (
	PlatformBilibili Platform = "bilibili"
	PlatformWeibo    Platform = "weibo"
	PlatformDouyin   Platform = "douyin"
)

// Platforms 按展示顺序排列
var Platforms = []Platform{PlatformBilibili, PlatformWeibo, PlatformDouyin}

var platformNames = map[Platform]string{
	PlatformBilibili: "B站",
	PlatformWeibo:    "微博",
	PlatformDouyin:   "抖音",
}

// Title 平台的热搜名称，例如 “B站热搜”
func (p Platform) Title() string {
	return platformNames[p] + "热搜"
}

const StatusCommand = "热搜状态"

// commandAliases 命令名及别名到平台的映射
var commandAliases = map[string]Platform{
	"B站热搜":       PlatformBilibili,
	"b站热搜":       PlatformBilibili,
	"bilibili热搜": PlatformBilibili,

	"微博热搜":    PlatformWeibo,
	"微博热搜榜":   PlatformWeibo,
	"weibo热搜": PlatformWeibo,

	"抖音热搜":     PlatformDouyin,
	"抖音热搜榜":    PlatformDouyin,
	"douyin热搜": PlatformDouyin,
}

// LookupPlatform 接受命令名、别名或平台代码
func LookupPlatform(name string) (Platform, bool) {
	name = strings.TrimSpace(name)
	if p, ok := commandAliases[name]; ok {
		return p, true
	}
	p := Platform(strings.ToLower(name))
	if _, ok := platformNames[p]; ok {
		return p, true
	}
	return "", false
}

// ParseCommand 把消息拆成命令名与参数，例如 “微博热搜 5” -> (“微博热搜”, “5”)
func ParseCommand(text string) (name, args string) {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx:])
}
