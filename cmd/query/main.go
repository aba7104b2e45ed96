package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/LJTian/HotSearch/internal/bot"
	"github.com/LJTian/HotSearch/internal/collector"
	"github.com/LJTian/HotSearch/internal/config"
	"github.com/LJTian/HotSearch/internal/cooldown"
)

// 命令行单次查询：直接打印热搜榜，不经过冷却
func main() {
	var (
		platform string
		count    int
	)
	flag.StringVar(&platform, "platform", "weibo", "平台: bilibili / weibo / douyin")
	flag.IntVar(&count, "count", 0, "展示条数，0 表示使用 DEFAULT_COUNT")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("%v", err)
	}

	p, ok := bot.LookupPlatform(platform)
	if !ok {
		logrus.Fatalf("unknown platform %q", platform)
	}

	// 零冷却窗口，每次调用都放行
	svc := bot.NewService(cfg, bot.DefaultFetchers(collector.NewClient(cfg.RequestTimeout)), cooldown.New(0), nil)

	args := ""
	if count > 0 {
		args = strconv.Itoa(count)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout*3)
	defer cancel()

	fmt.Println(svc.HotSearch(ctx, p, cooldown.Identity{UserID: "cli"}, args))
}
