// weapon.go

package models

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrUnknownWeaponType 未声明的武器类型
var ErrUnknownWeaponType = errors.New("未知的武器类型")

// WeaponType 武器类型
type WeaponType string

const (
	// WeaponNone 未装备
	WeaponNone WeaponType = "none"
	// WeaponBlaster 单发爆能枪
	WeaponBlaster WeaponType = "blaster"
	// WeaponSpread 九发散射
	WeaponSpread WeaponType = "spread"
	// WeaponPhaser 波形弹（未实现）
	WeaponPhaser WeaponType = "phaser"
	// WeaponMissile 追踪导弹（未实现）
	WeaponMissile WeaponType = "missile"
	// WeaponLaser 持续激光
	WeaponLaser WeaponType = "laser"
	// WeaponShield 护盾（未实现）
	WeaponShield WeaponType = "shield"
)

// AllWeaponTypes 所有已声明的武器类型，定义表必须全部覆盖
var AllWeaponTypes = []WeaponType{
	WeaponNone,
	WeaponBlaster,
	WeaponSpread,
	WeaponPhaser,
	WeaponMissile,
	WeaponLaser,
	WeaponShield,
}

// ParseWeaponType 解析武器类型字符串
func ParseWeaponType(s string) (WeaponType, error) {
	for _, t := range AllWeaponTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return WeaponNone, fmt.Errorf("%w: %q", ErrUnknownWeaponType, s)
}

// WeaponDefinition 武器定义，按类型只读查询
type WeaponDefinition struct {
	Type   WeaponType `json:"type"`
	Letter string     `json:"letter"` // 道具上显示的字母

	// 视觉效果
	Color              color.RGBA `json:"color"` // 炮口与道具颜色
	ProjectileTemplate string     `json:"projectile_template"`
	ProjectileColor    color.RGBA `json:"projectile_color"`

	// 武器属性
	DamageOnHit       float64 `json:"damage_on_hit"`
	ContinuousDamage  float64 `json:"continuous_damage"`   // 每秒伤害(激光)
	DelayBetweenShots float64 `json:"delay_between_shots"` // 射击间隔(秒)
	Velocity          float64 `json:"velocity"`            // 投射物速度
}

// WeaponRecord 武器定义的存储形式，颜色使用 #RRGGBB 字符串
type WeaponRecord struct {
	Type               string  `json:"type" mapstructure:"type"`
	Letter             string  `json:"letter" mapstructure:"letter"`
	Color              string  `json:"color" mapstructure:"color"`
	ProjectileTemplate string  `json:"projectile_template" mapstructure:"projectile_template"`
	ProjectileColor    string  `json:"projectile_color" mapstructure:"projectile_color"`
	DamageOnHit        float64 `json:"damage_on_hit" mapstructure:"damage_on_hit"`
	ContinuousDamage   float64 `json:"continuous_damage" mapstructure:"continuous_damage"`
	DelayBetweenShots  float64 `json:"delay_between_shots" mapstructure:"delay_between_shots"`
	Velocity           float64 `json:"velocity" mapstructure:"velocity"`
}

// ToDefinition 将存储记录转换为武器定义
func (r WeaponRecord) ToDefinition() (WeaponDefinition, error) {
	t, err := ParseWeaponType(r.Type)
	if err != nil {
		return WeaponDefinition{}, err
	}
	c, err := ParseHexColor(r.Color)
	if err != nil {
		return WeaponDefinition{}, fmt.Errorf("武器 %s 颜色无效: %w", r.Type, err)
	}
	pc, err := ParseHexColor(r.ProjectileColor)
	if err != nil {
		return WeaponDefinition{}, fmt.Errorf("武器 %s 投射物颜色无效: %w", r.Type, err)
	}
	if r.DamageOnHit < 0 || r.ContinuousDamage < 0 || r.DelayBetweenShots < 0 {
		return WeaponDefinition{}, fmt.Errorf("武器 %s 的伤害与射击间隔不能为负数", r.Type)
	}

	return WeaponDefinition{
		Type:               t,
		Letter:             r.Letter,
		Color:              c,
		ProjectileTemplate: r.ProjectileTemplate,
		ProjectileColor:    pc,
		DamageOnHit:        r.DamageOnHit,
		ContinuousDamage:   r.ContinuousDamage,
		DelayBetweenShots:  r.DelayBetweenShots,
		Velocity:           r.Velocity,
	}, nil
}

// RecordFromDefinition 将武器定义转换为存储记录
func RecordFromDefinition(def WeaponDefinition) WeaponRecord {
	return WeaponRecord{
		Type:               string(def.Type),
		Letter:             def.Letter,
		Color:              FormatHexColor(def.Color),
		ProjectileTemplate: def.ProjectileTemplate,
		ProjectileColor:    FormatHexColor(def.ProjectileColor),
		DamageOnHit:        def.DamageOnHit,
		ContinuousDamage:   def.ContinuousDamage,
		DelayBetweenShots:  def.DelayBetweenShots,
		Velocity:           def.Velocity,
	}
}

// DefaultWeaponRecords 默认武器定义表
func DefaultWeaponRecords() []WeaponRecord {
	return []WeaponRecord{
		{Type: "none", Letter: "", Color: "#FFFFFF", ProjectileColor: "#FFFFFF", Velocity: 20},
		{Type: "blaster", Letter: "B", Color: "#FFFFFF", ProjectileTemplate: "projectile_hero", ProjectileColor: "#FFFFFF", DamageOnHit: 1, DelayBetweenShots: 0.2, Velocity: 50},
		{Type: "spread", Letter: "S", Color: "#0000FF", ProjectileTemplate: "projectile_hero", ProjectileColor: "#0000FF", DamageOnHit: 1, DelayBetweenShots: 0.4, Velocity: 50},
		{Type: "phaser", Letter: "P", Color: "#00FF00", ProjectileTemplate: "projectile_hero", ProjectileColor: "#00FF00", DamageOnHit: 1, DelayBetweenShots: 0.3, Velocity: 30},
		{Type: "missile", Letter: "M", Color: "#00FFFF", ProjectileTemplate: "projectile_hero", ProjectileColor: "#00FFFF", DamageOnHit: 10, DelayBetweenShots: 1, Velocity: 20},
		{Type: "laser", Letter: "L", Color: "#FF0000", ProjectileTemplate: "laser_beam", ProjectileColor: "#FF0000", ContinuousDamage: 10, Velocity: 0},
		{Type: "shield", Letter: "O", Color: "#FFFF00", ProjectileColor: "#FFFF00"},
	}
}
