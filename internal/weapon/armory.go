// armory.go

package weapon

import (
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

// Armory 生成投射物并处理投射物自身的生命周期与碰撞响应
type Armory struct {
	world  World
	defs   Definitions
	anchor Anchor
}

// NewArmory 创建军械库，anchor 由世界初始化时创建并传入
func NewArmory(world World, defs Definitions, anchor Anchor) *Armory {
	return &Armory{
		world:  world,
		defs:   defs,
		anchor: anchor,
	}
}

// Definitions 返回武器定义表
func (a *Armory) Definitions() Definitions {
	return a.defs
}

// NewWeapon 在挂点上创建未装备的武器
func (a *Armory) NewWeapon(mount Mount) *Weapon {
	w := &Weapon{
		armory: a,
		mount:  mount,
	}
	w.SetType(models.WeaponNone)
	return w
}

// MakeProjectile 按武器类型的模板生成一个投射物
func (a *Armory) MakeProjectile(t models.WeaponType, pos models.Vector2D, rotation float64, velocity models.Vector2D, faction models.Faction) *models.ProjectileEntity {
	def := a.defs.Get(t)

	p := a.world.Instantiate(def.ProjectileTemplate, a.anchor)
	p.Faction = faction
	p.Position = pos
	p.Rotation = rotation
	p.WeaponType = t
	a.world.SetVelocity(p.ID, velocity)
	a.world.SetColor(p.ID, def.ProjectileColor)

	return p
}

// makeBeam 生成激光光束，位置由持有它的武器每次开火时覆盖
func (a *Armory) makeBeam(faction models.Faction) *models.ProjectileEntity {
	def := a.defs.Get(models.WeaponLaser)

	p := a.world.Instantiate(def.ProjectileTemplate, a.anchor)
	p.Faction = faction
	p.WeaponType = models.WeaponLaser
	p.Beam = true
	a.world.SetColor(p.ID, def.ProjectileColor)

	return p
}

// CheckBounds 每帧自检：越过上边界的投射物自毁。返回是否已销毁
func (a *Armory) CheckBounds(p *models.ProjectileEntity) bool {
	if p.Beam {
		return false
	}
	if a.world.OffUp(p) {
		a.world.Destroy(p.ID)
		return true
	}
	return false
}

// OnContactEnter 投射物首次接触目标。返回投射物是否因此销毁
func (a *Armory) OnContactEnter(p *models.ProjectileEntity, target Contact) bool {
	if !target.hostileTo(p.Faction) {
		return false
	}

	def := a.defs.Get(p.WeaponType)
	a.world.ApplyDamage(target.TargetID, def.DamageOnHit)

	// 独立的激光弹命中即销毁；光束归武器所有，不在这里销毁
	if p.WeaponType == models.WeaponLaser && !p.Beam {
		a.world.Destroy(p.ID)
		return true
	}
	return false
}

// OnContactStay 激光与敌方持续重叠时按时间结算持续伤害
func (a *Armory) OnContactStay(p *models.ProjectileEntity, target Contact, dt float64) {
	if p.WeaponType != models.WeaponLaser || !target.hostileTo(p.Faction) {
		return
	}

	def := a.defs.Get(models.WeaponLaser)
	if def.ContinuousDamage <= 0 || dt <= 0 {
		return
	}
	a.world.ApplyDamage(target.TargetID, def.ContinuousDamage*dt)
}
