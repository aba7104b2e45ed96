package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/LJTian/HotSearch/internal/collector"
	"github.com/LJTian/HotSearch/internal/config"
	"github.com/LJTian/HotSearch/internal/cooldown"
	"github.com/LJTian/HotSearch/internal/processor"
	"github.com/LJTian/HotSearch/internal/storage"
)

// Message 一条入站消息
type Message struct {
	Text    string
	UserID  string
	GroupID string
}

func (m Message) Identity() cooldown.Identity {
	return cooldown.Identity{UserID: m.UserID, GroupID: m.GroupID}
}

// Service 处理热搜命令：开关、冷却、拉取、格式化
type Service struct {
	cfg      *config.Config
	fetchers map[Platform]collector.Fetcher
	tracker  *cooldown.Tracker
	cache    storage.ListCache

	inflight singleflight.Group
	now      func() time.Time
}

// NewService cache 可以为 nil，表示不使用缓存
func NewService(cfg *config.Config, fetchers map[Platform]collector.Fetcher, tracker *cooldown.Tracker, cache storage.ListCache) *Service {
	return &Service{
		cfg:      cfg,
		fetchers: fetchers,
		tracker:  tracker,
		cache:    cache,
		now:      config.Now,
	}
}

// DefaultFetchers 三个平台的官方接口实现
func DefaultFetchers(client *collector.Client) map[Platform]collector.Fetcher {
	return map[Platform]collector.Fetcher{
		PlatformBilibili: &collector.BilibiliFetcher{Client: client},
		PlatformWeibo:    &collector.WeiboFetcher{Client: client},
		PlatformDouyin:   &collector.DouyinFetcher{Client: client, Endpoints: collector.DefaultDouyinEndpoints()},
	}
}

// Handle 分发一条消息；不是热搜相关命令时 ok 为 false
func (s *Service) Handle(ctx context.Context, msg Message) (reply string, ok bool) {
	name, args, ok := matchCommand(msg.Text)
	if !ok {
		return "", false
	}
	if name == StatusCommand {
		return s.Status(), true
	}
	p, _ := LookupPlatform(name)
	return s.HotSearch(ctx, p, msg.Identity(), args), true
}

// HotSearch 执行一次热搜查询并返回要回复的文本
func (s *Service) HotSearch(ctx context.Context, p Platform, id cooldown.Identity, args string) string {
	title := p.Title()
	if !s.Enabled(p) {
		return title + "功能已禁用"
	}

	if ok, remaining := s.tracker.Acquire(id, s.now()); !ok {
		return fmt.Sprintf("冷却中，请等待 %d 秒", remaining)
	}

	count := processor.ParseCount(args, s.cfg.DefaultCount)

	list, err := s.Fetch(ctx, p)
	if err != nil {
		s.tracker.Release(id)
		logrus.WithField("platform", p).Errorf("获取%s失败: %v", title, err)
		return "获取" + title + "时出现错误"
	}
	if len(list) == 0 {
		s.tracker.Release(id)
		return "获取" + title + "失败，请稍后重试"
	}

	if p == PlatformWeibo && !s.cfg.IncludeTopWeibo {
		list = processor.DropPinned(list)
	}

	reply := processor.Format(title, list, count, s.formatOptions())

	s.tracker.Record(id, s.now())
	return reply
}

// Fetch 优先读缓存，未命中时请求上游并回写；同一平台的并发请求只打一次上游
func (s *Service) Fetch(ctx context.Context, p Platform) (collector.HotList, error) {
	if s.cache != nil {
		if list, ok := s.cache.Get(ctx, string(p)); ok {
			return list, nil
		}
	}
	v, err, _ := s.inflight.Do(string(p), func() (interface{}, error) {
		return s.Refresh(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return v.(collector.HotList), nil
}

// Refresh 绕过缓存直接请求上游，成功后写入缓存
func (s *Service) Refresh(ctx context.Context, p Platform) (collector.HotList, error) {
	f, ok := s.fetchers[p]
	if !ok {
		return nil, errors.Errorf("no fetcher for %s", p)
	}
	list, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, string(p), list)
	}
	return list, nil
}

func (s *Service) Enabled(p Platform) bool {
	switch p {
	case PlatformBilibili:
		return s.cfg.EnableBilibili
	case PlatformWeibo:
		return s.cfg.EnableWeibo
	case PlatformDouyin:
		return s.cfg.EnableDouyin
	}
	return false
}

// EnabledPlatforms 供定时预取使用
func (s *Service) EnabledPlatforms() []Platform {
	out := make([]Platform, 0, len(Platforms))
	for _, p := range Platforms {
		if s.Enabled(p) {
			out = append(out, p)
		}
	}
	return out
}

// Status 插件状态
func (s *Service) Status() string {
	lines := []string{
		"热搜插件状态",
		strings.Repeat("=", 20),
	}
	for _, p := range Platforms {
		lines = append(lines, fmt.Sprintf("• %s: %s", p.Title(), yesNo(s.Enabled(p), "启用", "禁用")))
	}
	lines = append(lines,
		fmt.Sprintf("• 冷却时间: %d秒", int(s.tracker.Window()/time.Second)),
		fmt.Sprintf("• 默认条数: %d条", s.cfg.DefaultCount),
		fmt.Sprintf("• 显示热度: %s", yesNo(s.cfg.ShowHotValue, "是", "否")),
		fmt.Sprintf("• 显示标签: %s", yesNo(s.cfg.ShowLabel, "是", "否")),
		fmt.Sprintf("• 微博置顶: %s", yesNo(s.cfg.IncludeTopWeibo, "包含", "不包含")),
	)
	return strings.Join(lines, "\n")
}

func (s *Service) formatOptions() processor.Options {
	return processor.Options{
		ShowLabel:    s.cfg.ShowLabel,
		ShowHotValue: s.cfg.ShowHotValue,
	}
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

// commandNames 按长度倒序，前缀匹配时优先匹配更长的别名（“微博热搜榜” 先于 “微博热搜”）
var commandNames = func() []string {
	names := make([]string, 0, len(commandAliases)+1)
	for name := range commandAliases {
		names = append(names, name)
	}
	names = append(names, StatusCommand)
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// matchCommand 支持 “微博热搜 5” 与 “微博热搜5” 两种写法
func matchCommand(text string) (name, args string, ok bool) {
	name, args = ParseCommand(text)
	if name == StatusCommand {
		return name, args, true
	}
	if _, found := commandAliases[name]; found {
		return name, args, true
	}

	text = strings.TrimSpace(text)
	for _, candidate := range commandNames {
		if strings.HasPrefix(text, candidate) {
			return candidate, strings.TrimSpace(strings.TrimPrefix(text, candidate)), true
		}
	}
	return "", "", false
}
