package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jacl-coder/PixelStorm-Armory/config"
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
	"github.com/jacl-coder/PixelStorm-Armory/pkg/db"
)

var definitionColumns = []string{
	"type", "letter", "color", "projectile_template", "projectile_color",
	"damage_on_hit", "continuous_damage", "delay_between_shots", "velocity",
}

// countingStore 记录读取次数的内存来源
type countingStore struct {
	recs  []models.WeaponRecord
	err   error
	calls int
}

func (s *countingStore) LoadAll(ctx context.Context) ([]models.WeaponRecord, error) {
	s.calls++
	return s.recs, s.err
}

func newMockDB(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewPostgresStore(conn), mock
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func definitionRows(recs []models.WeaponRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(definitionColumns)
	for _, r := range recs {
		rows.AddRow(r.Type, r.Letter, r.Color, r.ProjectileTemplate, r.ProjectileColor,
			r.DamageOnHit, r.ContinuousDamage, r.DelayBetweenShots, r.Velocity)
	}
	return rows
}

func TestPostgresStoreLoadAll(t *testing.T) {
	store, mock := newMockDB(t)
	recs := models.DefaultWeaponRecords()
	mock.ExpectQuery(db.SelectWeaponDefinitionsSQL).WillReturnRows(definitionRows(recs))

	got, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("expected %d records, got %d", len(recs), len(got))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, recs[i], got[i])
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreLoadAllQueryError(t *testing.T) {
	store, mock := newMockDB(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(db.SelectWeaponDefinitionsSQL).WillReturnError(boom)

	if _, err := store.LoadAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}

func TestPostgresStoreSeed(t *testing.T) {
	store, mock := newMockDB(t)
	recs := models.DefaultWeaponRecords()[:2]

	mock.ExpectBegin()
	for _, r := range recs {
		mock.ExpectExec(db.UpsertWeaponDefinitionSQL).
			WithArgs(r.Type, r.Letter, r.Color, r.ProjectileTemplate, r.ProjectileColor,
				r.DamageOnHit, r.ContinuousDamage, r.DelayBetweenShots, r.Velocity).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := store.Seed(context.Background(), recs); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreSeedRollsBackOnError(t *testing.T) {
	store, mock := newMockDB(t)
	recs := models.DefaultWeaponRecords()[:1]

	mock.ExpectBegin()
	mock.ExpectExec(db.UpsertWeaponDefinitionSQL).WillReturnError(errors.New("check constraint"))
	mock.ExpectRollback()

	if err := store.Seed(context.Background(), recs); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedisCacheMissThenHit(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, "", 10*time.Minute)
	ctx := context.Background()

	if _, found, err := cache.Get(ctx); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	recs := models.DefaultWeaponRecords()
	if err := cache.Set(ctx, recs); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists(DefaultCacheKey) {
		t.Fatalf("expected key %s to exist", DefaultCacheKey)
	}
	if ttl := mr.TTL(DefaultCacheKey); ttl != 10*time.Minute {
		t.Fatalf("expected ttl 10m, got %v", ttl)
	}

	got, found, err := cache.Get(ctx)
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if len(got) != len(recs) || got[5] != recs[5] {
		t.Fatalf("unexpected cached records: %+v", got)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if mr.Exists(DefaultCacheKey) {
		t.Fatalf("expected key to be removed")
	}
}

func TestLoaderWritesBackAndReusesCache(t *testing.T) {
	_, client := newTestRedis(t)
	store := &countingStore{recs: models.DefaultWeaponRecords()}
	loader := NewLoader(store, NewRedisCache(client, "test:defs", 0))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		table, err := loader.Table(ctx)
		if err != nil {
			t.Fatalf("Table: %v", err)
		}
		if def := table.Get(models.WeaponMissile); def.DamageOnHit != 10 {
			t.Fatalf("expected missile damage 10, got %v", def.DamageOnHit)
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected store to be read once, got %d", store.calls)
	}
}

func TestLoaderFallsBackOnCorruptCache(t *testing.T) {
	mr, client := newTestRedis(t)
	if err := mr.Set("test:defs", "garbage"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	store := &countingStore{recs: models.DefaultWeaponRecords()}
	loader := NewLoader(store, NewRedisCache(client, "test:defs", 0))

	recs, err := loader.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if store.calls != 1 || len(recs) != len(models.DefaultWeaponRecords()) {
		t.Fatalf("expected store fallback, calls=%d len=%d", store.calls, len(recs))
	}

	// 回写后缓存恢复可用
	if _, found, err := NewRedisCache(client, "test:defs", 0).Get(context.Background()); err != nil || !found {
		t.Fatalf("expected repaired cache, found=%v err=%v", found, err)
	}
}

func TestLoaderWithoutCachePropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	loader := NewLoader(&countingStore{err: boom}, nil)
	if _, err := loader.Records(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestBuildTableRejectsIncompleteRecords(t *testing.T) {
	recs := models.DefaultWeaponRecords()
	if _, err := BuildTable(recs[:len(recs)-1]); !errors.Is(err, weapon.ErrMissingDefinition) {
		t.Fatalf("expected ErrMissingDefinition, got %v", err)
	}

	bad := models.DefaultWeaponRecords()
	bad[1].Type = "railgun"
	if _, err := BuildTable(bad); !errors.Is(err, models.ErrUnknownWeaponType) {
		t.Fatalf("expected ErrUnknownWeaponType, got %v", err)
	}
}

func TestLoadFromConfig(t *testing.T) {
	cfg := &config.Config{Weapons: models.DefaultWeaponRecords()}
	cfg.Definitions.Source = config.SourceConfig

	table, err := Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def := table.Get(models.WeaponLaser); def.ContinuousDamage != 10 {
		t.Fatalf("expected laser continuous damage 10, got %v", def.ContinuousDamage)
	}
}

func TestLoadRejectsUnknownSourceAndMissingDatabase(t *testing.T) {
	cfg := &config.Config{Weapons: models.DefaultWeaponRecords()}
	cfg.Definitions.Source = "s3"
	if _, err := Load(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown source")
	}

	cfg.Definitions.Source = config.SourcePostgres
	if _, err := Load(context.Background(), cfg); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("expected ErrNoDatabase, got %v", err)
	}
}

func TestLoadFromPostgresThroughCache(t *testing.T) {
	store, mock := newMockDB(t)
	mr, client := newTestRedis(t)

	db.DB, db.RedisClient = store.db, client
	t.Cleanup(func() { db.DB, db.RedisClient = nil, nil })

	cfg := &config.Config{}
	cfg.Definitions = config.DefinitionsConfig{
		Source:   config.SourcePostgres,
		UseCache: true,
		CacheTTL: time.Minute,
		CacheKey: "armory:test",
	}

	// 只有第一次会查询数据库
	mock.ExpectQuery(db.SelectWeaponDefinitionsSQL).WillReturnRows(definitionRows(models.DefaultWeaponRecords()))

	for i := 0; i < 2; i++ {
		if _, err := Load(context.Background(), cfg); err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
	if !mr.Exists("armory:test") {
		t.Fatalf("expected definitions to be cached")
	}
}
