package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/pkg/db"
)

// Store 武器定义的持久化来源
type Store interface {
	LoadAll(ctx context.Context) ([]models.WeaponRecord, error)
}

// PostgresStore 基于 weapon_definitions 表的定义来源
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore 创建 PostgreSQL 定义来源
func NewPostgresStore(conn *sql.DB) *PostgresStore {
	return &PostgresStore{db: conn}
}

// LoadAll 读取全部武器定义
func (s *PostgresStore) LoadAll(ctx context.Context) ([]models.WeaponRecord, error) {
	rows, err := s.db.QueryContext(ctx, db.SelectWeaponDefinitionsSQL)
	if err != nil {
		return nil, fmt.Errorf("查询武器定义失败: %w", err)
	}
	defer rows.Close()

	var recs []models.WeaponRecord
	for rows.Next() {
		var rec models.WeaponRecord
		if err := rows.Scan(
			&rec.Type, &rec.Letter, &rec.Color, &rec.ProjectileTemplate, &rec.ProjectileColor,
			&rec.DamageOnHit, &rec.ContinuousDamage, &rec.DelayBetweenShots, &rec.Velocity,
		); err != nil {
			return nil, fmt.Errorf("读取武器定义失败: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历武器定义失败: %w", err)
	}
	return recs, nil
}

// Seed 在一个事务内写入或覆盖武器定义
func (s *PostgresStore) Seed(ctx context.Context, recs []models.WeaponRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, db.UpsertWeaponDefinitionSQL,
			rec.Type, rec.Letter, rec.Color, rec.ProjectileTemplate, rec.ProjectileColor,
			rec.DamageOnHit, rec.ContinuousDamage, rec.DelayBetweenShots, rec.Velocity,
		); err != nil {
			return fmt.Errorf("写入武器 %s 失败: %w", rec.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}
