// schema.go

package db

import "context"

// 武器定义表结构

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 武器定义表，每个武器类型一行
CREATE TABLE IF NOT EXISTS weapon_definitions (
    type VARCHAR(20) PRIMARY KEY,
    letter VARCHAR(4) NOT NULL DEFAULT '',
    color VARCHAR(9) NOT NULL DEFAULT '#FFFFFF',
    projectile_template VARCHAR(50) NOT NULL DEFAULT '',
    projectile_color VARCHAR(9) NOT NULL DEFAULT '#FFFFFF',

    -- 武器属性
    damage_on_hit DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (damage_on_hit >= 0),
    continuous_damage DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (continuous_damage >= 0),
    delay_between_shots DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (delay_between_shots >= 0),
    velocity DOUBLE PRECISION NOT NULL DEFAULT 0,

    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);
`

// DropAllTablesSQL 删除所有表的SQL语句
const DropAllTablesSQL = `
DROP TABLE IF EXISTS weapon_definitions CASCADE;
`

// SelectWeaponDefinitionsSQL 按类型读取全部武器定义
const SelectWeaponDefinitionsSQL = `
SELECT type, letter, color, projectile_template, projectile_color,
       damage_on_hit, continuous_damage, delay_between_shots, velocity
FROM weapon_definitions
ORDER BY type`

// UpsertWeaponDefinitionSQL 写入或覆盖一条武器定义
const UpsertWeaponDefinitionSQL = `
INSERT INTO weapon_definitions (type, letter, color, projectile_template, projectile_color,
    damage_on_hit, continuous_damage, delay_between_shots, velocity, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
ON CONFLICT (type) DO UPDATE SET
    letter = EXCLUDED.letter,
    color = EXCLUDED.color,
    projectile_template = EXCLUDED.projectile_template,
    projectile_color = EXCLUDED.projectile_color,
    damage_on_hit = EXCLUDED.damage_on_hit,
    continuous_damage = EXCLUDED.continuous_damage,
    delay_between_shots = EXCLUDED.delay_between_shots,
    velocity = EXCLUDED.velocity,
    updated_at = CURRENT_TIMESTAMP`

// InitAllTables 初始化所有数据库表
func InitAllTables(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, CreateAllTablesSQL)
	return err
}

// DropAllTables 删除所有数据库表
func DropAllTables(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, DropAllTablesSQL)
	return err
}
