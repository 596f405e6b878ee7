package models

import (
	"time"
)

// ArenaStatus 场地状态
type ArenaStatus string

const (
	// ArenaIdle 已创建，未启动循环
	ArenaIdle ArenaStatus = "idle"
	// ArenaRunning 循环运行中
	ArenaRunning ArenaStatus = "running"
	// ArenaStopped 已停止
	ArenaStopped ArenaStatus = "stopped"
)

// Playfield 场地边界
type Playfield struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// AboveTop 位置是否已越过上边界
func (p Playfield) AboveTop(v Vector2D) bool {
	return v.Y > p.MaxY
}

// Contains 位置是否在场地内
func (p Playfield) Contains(v Vector2D) bool {
	return v.X >= p.MinX && v.X <= p.MaxX && v.Y >= p.MinY && v.Y <= p.MaxY
}

// MountInfo 武器挂点状态
type MountInfo struct {
	ShipID       string     `json:"ship_id"`
	Slot         int        `json:"slot"`
	CollarID     string     `json:"collar_id"`
	Weapon       WeaponType `json:"weapon"`
	Active       bool       `json:"active"`
	Enabled      bool       `json:"enabled"`
	LastShotTime float64    `json:"last_shot_time"`
	BeamID       string     `json:"beam_id,omitempty"`
}

// Snapshot 场地某一帧的只读快照
type Snapshot struct {
	ArenaID     string             `json:"arena_id"`
	Status      ArenaStatus        `json:"status"`
	FrameID     int64              `json:"frame_id"`
	GameTime    float64            `json:"game_time"`
	TakenAt     time.Time          `json:"taken_at"`
	Ships       []ShipEntity       `json:"ships"`
	Mounts      []MountInfo        `json:"mounts"`
	Projectiles []ProjectileEntity `json:"projectiles"`
	Stats       ArenaStats         `json:"stats"`
}
