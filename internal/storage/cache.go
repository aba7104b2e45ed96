package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/HotSearch/internal/collector"
)

const keyPrefix = "hotsearch:list:"

// ListCache 归一化后热搜列表的短期缓存。实现需容忍后端不可用：读失败当作未命中，写失败只记日志。
type ListCache interface {
	Get(ctx context.Context, platform string) (collector.HotList, bool)
	Set(ctx context.Context, platform string, list collector.HotList)
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache 以 JSON 形式把列表写入 Redis，短 TTL 自然过期
type RedisCache struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.Warnf("redis ping failed: %v", err)
	}

	return newRedisCache(rdb, ttl)
}

func newRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, platform string) (collector.HotList, bool) {
	bs, err := c.client.Get(ctx, keyPrefix+platform).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.Warnf("cache get %s failed: %v", platform, err)
		}
		return nil, false
	}

	var list collector.HotList
	if err := json.Unmarshal(bs, &list); err != nil {
		logrus.Warnf("cache decode %s failed: %v", platform, err)
		return nil, false
	}
	if len(list) == 0 {
		return nil, false
	}
	return list, true
}

// Set 只缓存非空列表，空结果下次仍然走上游
func (c *RedisCache) Set(ctx context.Context, platform string, list collector.HotList) {
	if len(list) == 0 || c.ttl <= 0 {
		return
	}
	bs, err := json.Marshal(list)
	if err != nil {
		logrus.Warnf("cache encode %s failed: %v", platform, err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+platform, bs, c.ttl).Err(); err != nil {
		logrus.Warnf("cache set %s failed: %v", platform, err)
	}
}
