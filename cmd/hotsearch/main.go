package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/HotSearch/internal/api"
	"github.com/LJTian/HotSearch/internal/bot"
	"github.com/LJTian/HotSearch/internal/collector"
	"github.com/LJTian/HotSearch/internal/config"
	"github.com/LJTian/HotSearch/internal/cooldown"
	"github.com/LJTian/HotSearch/internal/scheduler"
	"github.com/LJTian/HotSearch/internal/storage"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("%v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	client := collector.NewClient(cfg.RequestTimeout)
	tracker := cooldown.New(cfg.Cooldown)

	// 配置了 Redis 才启用列表缓存与定时预取
	var cache storage.ListCache
	if cfg.CacheEnabled() {
		cache = storage.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	}

	svc := bot.NewService(cfg, bot.DefaultFetchers(client), tracker, cache)

	var refresher scheduler.Refresher
	if cache != nil {
		refresher = svc
	}
	s, err := scheduler.New(cfg.SweepSpec, tracker, cfg.PrefetchSpec, refresher, cfg.RequestTimeout*3)
	if err != nil {
		logrus.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()
	defer s.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewServer(svc))

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logrus.Infof("starting api server at %s ...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server exit: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("正在关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Warnf("等待连接关闭超时，强制退出: %v", err)
	}
}
