// entity.go

package models

import (
	"image/color"
	"math"
	"time"
)

// Vector2D 二维向量
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 向量相加
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相减
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 向量缩放
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D{X: v.X * k, Y: v.Y * k}
}

// Length 向量长度
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// EntityType 实体类型
type EntityType string

const (
	// EntityShip 舰船实体（英雄或敌人）
	EntityShip EntityType = "ship"
	// EntityProjectile 投射物实体
	EntityProjectile EntityType = "projectile"
	// EntityCollar 武器挂点的炮口
	EntityCollar EntityType = "collar"
)

// Faction 阵营
type Faction string

const (
	// FactionHero 英雄阵营
	FactionHero Faction = "hero"
	// FactionEnemy 敌人阵营
	FactionEnemy Faction = "enemy"
)

// Opposes 判断两个阵营是否敌对
func (f Faction) Opposes(other Faction) bool {
	return f != other
}

// Entity 游戏实体基础接口
type Entity interface {
	GetID() string
	GetType() EntityType
	GetPosition() Vector2D
	GetRotation() float64
	GetVelocity() Vector2D
	GetCreatedAt() time.Time
}

// BaseEntity 基础实体结构
type BaseEntity struct {
	ID        string     `json:"id"`
	Type      EntityType `json:"type"`
	Position  Vector2D   `json:"position"`
	Rotation  float64    `json:"rotation"` // 绕后向轴的角度(度)
	Velocity  Vector2D   `json:"velocity"`
	CreatedAt time.Time  `json:"created_at"`
}

// GetID 获取实体ID
func (e *BaseEntity) GetID() string {
	return e.ID
}

// GetType 获取实体类型
func (e *BaseEntity) GetType() EntityType {
	return e.Type
}

// GetPosition 获取实体位置
func (e *BaseEntity) GetPosition() Vector2D {
	return e.Position
}

// GetRotation 获取实体旋转
func (e *BaseEntity) GetRotation() float64 {
	return e.Rotation
}

// GetVelocity 获取实体速度
func (e *BaseEntity) GetVelocity() Vector2D {
	return e.Velocity
}

// GetCreatedAt 获取实体创建时间
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// ShipEntity 舰船实体
type ShipEntity struct {
	BaseEntity
	Name      string  `json:"name"`
	Faction   Faction `json:"faction"`
	Radius    float64 `json:"radius"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	IsAlive   bool    `json:"is_alive"`

	// 战斗统计
	DamageTaken float64 `json:"damage_taken"`
}

// CollarEntity 炮口实体，颜色随装备的武器变化
type CollarEntity struct {
	BaseEntity
	ShipID string     `json:"ship_id"`
	Color  color.RGBA `json:"color"`
}

// ProjectileEntity 投射物实体
type ProjectileEntity struct {
	BaseEntity
	WeaponType WeaponType `json:"weapon_type"`
	Template   string     `json:"template"`
	Faction    Faction    `json:"faction"`
	Color      color.RGBA `json:"color"`
	Anchor     string     `json:"anchor"`
	Age        float64    `json:"age"` // 存活时间(秒)

	// Beam 为 true 时是激光武器持有的持续光束，而不是独立的子弹
	Beam bool `json:"beam,omitempty"`
}

// CollisionInfo 碰撞信息
type CollisionInfo struct {
	EntityA  string    `json:"entity_a"`
	EntityB  string    `json:"entity_b"`
	Position Vector2D  `json:"position"`
	Normal   Vector2D  `json:"normal"`
	Stay     bool      `json:"stay"`
	Time     time.Time `json:"time"`
}
