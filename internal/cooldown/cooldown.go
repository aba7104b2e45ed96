// Package cooldown 记录每个会话最近一次成功请求的时间，限制请求频率。
//
// 群聊按群号冷却，私聊按用户冷却，两类会话分开存放，互不影响。
package cooldown

import (
	"math"
	"sync"
	"time"
)

const (
	NamespaceGroup   = "group"
	NamespacePrivate = "private"

	// 超过 staleFactor 个冷却窗口未活动的记录会被 Sweep 清理
	staleFactor = 10
)

// Identity 调用方身份；GroupID 为空表示私聊
type Identity struct {
	UserID  string
	GroupID string
}

// SessionKey 返回冷却所属的命名空间与键
func (id Identity) SessionKey() (namespace, key string) {
	if id.GroupID != "" {
		return NamespaceGroup, id.GroupID
	}
	return NamespacePrivate, id.UserID
}

type store struct {
	mu      sync.Mutex
	last    map[string]time.Time
	pending map[string]struct{}
}

func newStore() *store {
	return &store{
		last:    make(map[string]time.Time),
		pending: make(map[string]struct{}),
	}
}

func (s *store) get(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.last[key]
	return t, ok
}

func (s *store) set(key string, t time.Time) {
	s.mu.Lock()
	s.last[key] = t
	delete(s.pending, key)
	s.mu.Unlock()
}

// acquire 在同一把锁内完成检查与占位
func (s *store) acquire(key string, now time.Time, window time.Duration) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[key]; busy {
		return false, window
	}
	if last, ok := s.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < window {
			return false, window - elapsed
		}
	}
	s.pending[key] = struct{}{}
	return true, 0
}

func (s *store) release(key string) {
	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
}

func (s *store) sweep(now time.Time, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, last := range s.last {
		if now.Sub(last) > maxAge {
			delete(s.last, key)
			removed++
		}
	}
	return removed
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.last)
}

// Tracker 会话冷却记录，并发安全
type Tracker struct {
	window time.Duration
	stores map[string]*store
}

func New(window time.Duration) *Tracker {
	if window < 0 {
		window = 0
	}
	return &Tracker{
		window: window,
		stores: map[string]*store{
			NamespaceGroup:   newStore(),
			NamespacePrivate: newStore(),
		},
	}
}

func (t *Tracker) Window() time.Duration {
	return t.window
}

// Check 判断当前是否允许请求；不允许时返回剩余秒数（向上取整）
func (t *Tracker) Check(id Identity, now time.Time) (bool, int) {
	ns, key := id.SessionKey()
	last, ok := t.stores[ns].get(key)
	if !ok {
		return true, 0
	}

	elapsed := now.Sub(last)
	if elapsed < t.window {
		return false, int(math.Ceil((t.window - elapsed).Seconds()))
	}
	return true, 0
}

// Acquire 检查冷却并为该会话占位，占位期间同一会话的其他请求一律被拒绝。
// 成功后必须以 Record（请求完成）或 Release（请求失败）结束占位。
func (t *Tracker) Acquire(id Identity, now time.Time) (bool, int) {
	if t.window <= 0 {
		return true, 0
	}
	ns, key := id.SessionKey()
	ok, remaining := t.stores[ns].acquire(key, now, t.window)
	if !ok {
		return false, int(math.Ceil(remaining.Seconds()))
	}
	return true, 0
}

// Release 撤销 Acquire 的占位，不开始冷却
func (t *Tracker) Release(id Identity) {
	ns, key := id.SessionKey()
	t.stores[ns].release(key)
}

// Record 在请求真正完成后调用，同时结束 Acquire 的占位；被冷却拒绝的请求不应调用，以免重置窗口
func (t *Tracker) Record(id Identity, now time.Time) {
	ns, key := id.SessionKey()
	t.stores[ns].set(key, now)
}

// Sweep 删除长期不活跃的记录，返回删除条数。删除等价于从未请求过，不影响 Check 结果。
func (t *Tracker) Sweep(now time.Time) int {
	maxAge := staleFactor * t.window
	removed := 0
	for _, s := range t.stores {
		removed += s.sweep(now, maxAge)
	}
	return removed
}

// Len 当前记录总数
func (t *Tracker) Len() int {
	n := 0
	for _, s := range t.stores {
		n += s.len()
	}
	return n
}
