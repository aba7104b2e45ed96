package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LJTian/HotSearch/internal/collector"
)

// fakeRedis 只实现 Get/Set，记录 TTL
type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	fr := newFakeRedis()
	c := newRedisCache(fr, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "weibo")
	assert.False(t, ok)

	list := collector.HotList{
		{Rank: 0, Word: "pin", Label: collector.PinnedLabel},
		{Rank: 1, Word: "a", HotValue: "1,000", Label: "热"},
	}
	c.Set(ctx, "weibo", list)

	assert.Equal(t, time.Minute, fr.ttls[keyPrefix+"weibo"])

	got, ok := c.Get(ctx, "weibo")
	require.True(t, ok)
	assert.Equal(t, list, got)
}

func TestRedisCacheSkipsEmptyLists(t *testing.T) {
	fr := newFakeRedis()
	c := newRedisCache(fr, time.Minute)

	c.Set(context.Background(), "douyin", nil)
	assert.Empty(t, fr.data)
}

func TestRedisCacheToleratesBackendErrors(t *testing.T) {
	fr := newFakeRedis()
	fr.getErr = errors.New("connection refused")
	fr.setErr = errors.New("connection refused")
	c := newRedisCache(fr, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "bilibili", collector.HotList{{Rank: 1, Word: "a"}})
	_, ok := c.Get(ctx, "bilibili")
	assert.False(t, ok)
}

func TestRedisCacheIgnoresCorruptValue(t *testing.T) {
	fr := newFakeRedis()
	fr.data[keyPrefix+"bilibili"] = "not json"
	c := newRedisCache(fr, time.Minute)

	_, ok := c.Get(context.Background(), "bilibili")
	assert.False(t, ok)
}
