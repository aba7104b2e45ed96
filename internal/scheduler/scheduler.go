package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/HotSearch/internal/bot"
	"github.com/LJTian/HotSearch/internal/collector"
	"github.com/LJTian/HotSearch/internal/cooldown"
)

// Refresher 定时预取需要的最小能力，*bot.Service 即满足
type Refresher interface {
	EnabledPlatforms() []bot.Platform
	Refresh(ctx context.Context, p bot.Platform) (collector.HotList, error)
}

type Scheduler struct {
	cron      *cron.Cron
	tracker   *cooldown.Tracker
	refresher Refresher
	timeout   time.Duration

	now func() time.Time
}

// New 注册冷却清理任务；refresher 非 nil 时再注册预取任务
func New(sweepSpec string, tracker *cooldown.Tracker, prefetchSpec string, refresher Refresher, timeout time.Duration) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		tracker:   tracker,
		refresher: refresher,
		timeout:   timeout,
		now:       time.Now,
	}

	if _, err := c.AddFunc(sweepSpec, s.sweep); err != nil {
		return nil, err
	}
	if refresher != nil {
		if _, err := c.AddFunc(prefetchSpec, s.prefetch); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	if s.refresher != nil {
		// 启动后稍等再预热缓存，不和服务启动抢资源
		const startupDelay = 5 * time.Second
		time.AfterFunc(startupDelay, s.prefetch)
	}
}

// Stop 等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce 手动触发一轮清理与预取
func (s *Scheduler) RunOnce() {
	s.sweep()
	if s.refresher != nil {
		s.prefetch()
	}
}

func (s *Scheduler) sweep() {
	removed := s.tracker.Sweep(s.now())
	logrus.Debugf("cooldown sweep done, removed=%d remaining=%d", removed, s.tracker.Len())
}

func (s *Scheduler) prefetch() {
	logrus.Debug("start prefetch job...")

	var wg sync.WaitGroup
	for _, p := range s.refresher.EnabledPlatforms() {
		platform := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			list, err := s.refresher.Refresh(ctx, platform)
			if err != nil {
				logrus.WithField("platform", platform).Warnf("prefetch error: %v", err)
				return
			}
			logrus.WithField("platform", platform).Debugf("prefetch done, items=%d", len(list))
		}()
	}

	wg.Wait()
	logrus.Debug("prefetch job done (all platforms)")
}
