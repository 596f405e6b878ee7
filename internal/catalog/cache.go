package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/protocol"
)

// DefaultCacheKey 定义表缓存键
const DefaultCacheKey = "armory:weapon_definitions"

// RedisCache 武器定义表的 Redis 缓存
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCache 创建定义表缓存，ttl 为 0 表示不过期
func NewRedisCache(client *redis.Client, key string, ttl time.Duration) *RedisCache {
	if key == "" {
		key = DefaultCacheKey
	}
	return &RedisCache{client: client, key: key, ttl: ttl}
}

// Get 读取缓存，未命中时 found 为 false
func (c *RedisCache) Get(ctx context.Context) ([]models.WeaponRecord, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("读取定义缓存失败: %w", err)
	}

	recs, err := protocol.DecodeWeaponRecords(data)
	if err != nil {
		return nil, false, err
	}
	return recs, true, nil
}

// Set 写入缓存
func (c *RedisCache) Set(ctx context.Context, recs []models.WeaponRecord) error {
	data, err := protocol.EncodeWeaponRecords(recs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}

// Invalidate 删除缓存
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
