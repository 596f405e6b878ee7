// catalog.go

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jacl-coder/PixelStorm-Armory/config"
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
	"github.com/jacl-coder/PixelStorm-Armory/pkg/db"
)

// ErrNoDatabase 选择了数据库来源但没有可用连接
var ErrNoDatabase = errors.New("未初始化数据库连接")

// Loader 先查缓存，未命中时读取来源并回写缓存
type Loader struct {
	store Store
	cache *RedisCache
}

// NewLoader 创建加载器，cache 可以为 nil
func NewLoader(store Store, cache *RedisCache) *Loader {
	return &Loader{store: store, cache: cache}
}

// Records 读取武器定义记录
func (l *Loader) Records(ctx context.Context) ([]models.WeaponRecord, error) {
	if l.cache != nil {
		recs, found, err := l.cache.Get(ctx)
		if err != nil {
			log.Printf("读取定义缓存失败，改为读取数据库: %v", err)
		} else if found {
			return recs, nil
		}
	}

	recs, err := l.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, recs); err != nil {
			log.Printf("回写定义缓存失败: %v", err)
		}
	}
	return recs, nil
}

// Table 读取记录并构建定义表
func (l *Loader) Table(ctx context.Context) (*weapon.Table, error) {
	recs, err := l.Records(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTable(recs)
}

// BuildTable 校验记录并构建只读定义表
func BuildTable(recs []models.WeaponRecord) (*weapon.Table, error) {
	defs := make([]models.WeaponDefinition, 0, len(recs))
	for _, rec := range recs {
		def, err := rec.ToDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return weapon.NewTable(defs)
}

// Load 按配置选择来源加载定义表
func Load(ctx context.Context, cfg *config.Config) (*weapon.Table, error) {
	switch cfg.Definitions.Source {
	case "", config.SourceConfig:
		return BuildTable(cfg.Weapons)
	case config.SourcePostgres:
		if db.DB == nil {
			return nil, ErrNoDatabase
		}
		var cache *RedisCache
		if cfg.Definitions.UseCache && db.RedisClient != nil {
			cache = NewRedisCache(db.RedisClient, cfg.Definitions.CacheKey, cfg.Definitions.CacheTTL)
		}
		table, err := NewLoader(NewPostgresStore(db.DB), cache).Table(ctx)
		if err != nil {
			return nil, fmt.Errorf("从数据库加载武器定义失败: %w", err)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("未知的武器定义来源: %s", cfg.Definitions.Source)
	}
}
