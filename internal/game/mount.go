package game

import (
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
)

// Mount 舰船上的武器挂点
type Mount struct {
	ship   *models.ShipEntity
	collar *models.CollarEntity
	weapon *weapon.Weapon

	Slot   int
	Offset models.Vector2D // 炮口相对舰船的偏移(舰船本地坐标)
	Angle  float64         // 相对舰船的旋转角度(度)

	enabled bool
}

// CollarID 炮口实体ID
func (m *Mount) CollarID() string {
	return m.collar.ID
}

// CollarPose 炮口的世界坐标与旋转
func (m *Mount) CollarPose() (models.Vector2D, float64) {
	pos := m.ship.Position.Add(weapon.RotateBack(m.Offset, m.ship.Rotation))
	return pos, m.ship.Rotation + m.Angle
}

// Up 挂点的上方向
func (m *Mount) Up() models.Vector2D {
	return weapon.RotateBack(models.Vector2D{X: 0, Y: 1}, m.ship.Rotation+m.Angle)
}

// Faction 所属舰船阵营
func (m *Mount) Faction() models.Faction {
	return m.ship.Faction
}

// Enabled 挂点被禁用或舰船被摧毁后不再开火
func (m *Mount) Enabled() bool {
	return m.enabled && m.ship.IsAlive
}

// syncCollar 让炮口实体跟随舰船
func (m *Mount) syncCollar() {
	m.collar.Position, m.collar.Rotation = m.CollarPose()
}

func (m *Mount) info() models.MountInfo {
	info := models.MountInfo{
		ShipID:       m.ship.ID,
		Slot:         m.Slot,
		CollarID:     m.collar.ID,
		Weapon:       m.weapon.Type(),
		Active:       m.weapon.Active(),
		Enabled:      m.enabled,
		LastShotTime: m.weapon.LastShotTime(),
	}
	if beam := m.weapon.Beam(); beam != nil {
		info.BeamID = beam.ID
	}
	return info
}
