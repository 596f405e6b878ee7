// weapon.go

package weapon

import (
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

// Weapon 挂点上的武器状态机
type Weapon struct {
	armory *Armory
	mount  Mount

	typ          models.WeaponType
	def          models.WeaponDefinition
	lastShotTime float64
	active       bool
	// 装备后尚未开火，第一发不受射击间隔限制
	fresh bool

	// 激光光束，只由本武器创建和销毁
	laser *models.ProjectileEntity
}

// Type 当前武器类型
func (w *Weapon) Type() models.WeaponType {
	return w.typ
}

// Definition 最近一次装备的武器定义
func (w *Weapon) Definition() models.WeaponDefinition {
	return w.def
}

// Active 武器是否处于激活状态
func (w *Weapon) Active() bool {
	return w.active
}

// LastShotTime 上次射击时间
func (w *Weapon) LastShotTime() float64 {
	return w.lastShotTime
}

// Beam 当前光束，没有时返回 nil
func (w *Weapon) Beam() *models.ProjectileEntity {
	return w.laser
}

// SetType 切换武器类型
func (w *Weapon) SetType(t models.WeaponType) {
	w.typ = t
	if t == models.WeaponNone {
		w.active = false
		w.destroyBeam()
		return
	}
	w.active = true

	w.def = w.armory.defs.Get(t)
	w.armory.world.SetColor(w.mount.CollarID(), w.def.Color)
	w.lastShotTime = 0
	w.fresh = true

	if t != models.WeaponLaser {
		w.destroyBeam()
	}
}

// Fire 开火。未激活、冷却中或类型未实现时静默返回
func (w *Weapon) Fire() {
	if !w.active || !w.mount.Enabled() {
		return
	}

	now := w.armory.world.Now()
	if w.typ == models.WeaponLaser {
		w.fireLaser(now)
		return
	}

	if !w.fresh && now-w.lastShotTime < w.def.DelayBetweenShots {
		return
	}

	vel := BaseVelocity(w.def.Velocity, w.mount.Up())
	switch w.typ {
	case models.WeaponBlaster:
		shot := Pattern(vel, models.WeaponBlaster)[0]
		w.MakeProjectile(shot, true)
		w.lastShotTime = now
		w.fresh = false
	case models.WeaponSpread:
		for _, shot := range Pattern(vel, models.WeaponSpread) {
			w.MakeProjectile(shot, false)
		}
		w.lastShotTime = now
		w.fresh = false
	}
}

// MakeProjectile 从炮口生成一发当前类型的投射物
func (w *Weapon) MakeProjectile(shot Shot, updateLastShotTime bool) *models.ProjectileEntity {
	pos, _ := w.mount.CollarPose()
	p := w.armory.MakeProjectile(w.typ, pos, shot.Rotation, shot.Velocity, w.mount.Faction())
	if updateLastShotTime {
		w.lastShotTime = w.armory.world.Now()
	}
	return p
}

// fireLaser 持续激光：首次开火时创建光束，之后每次只更新位置与朝向
func (w *Weapon) fireLaser(now float64) {
	if w.laser == nil || !w.armory.world.Alive(w.laser.ID) {
		w.laser = w.armory.makeBeam(w.mount.Faction())
	}

	pos, rot := w.mount.CollarPose()
	w.laser.Position = pos
	w.laser.Rotation = rot

	// 供持续伤害计时使用，不参与射速限制
	w.lastShotTime = now
}

// destroyBeam 销毁光束，可重复调用
func (w *Weapon) destroyBeam() {
	if w.laser == nil {
		return
	}
	w.armory.world.Destroy(w.laser.ID)
	w.laser = nil
}

// Release 挂点被禁用时回收光束，类型保持不变
func (w *Weapon) Release() {
	w.destroyBeam()
}
