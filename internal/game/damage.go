package game

import "github.com/jacl-coder/PixelStorm-Armory/internal/models"

// DamagePolicy 伤害结算方式
type DamagePolicy interface {
	// Apply 对舰船结算伤害，返回实际造成的伤害
	Apply(ship *models.ShipEntity, amount float64) float64
}

// HealthDamage 扣减生命值，归零时舰船被摧毁
type HealthDamage struct{}

// Apply 结算伤害
func (HealthDamage) Apply(ship *models.ShipEntity, amount float64) float64 {
	if !ship.IsAlive || amount <= 0 {
		return 0
	}
	if amount > ship.Health {
		amount = ship.Health
	}

	ship.Health -= amount
	ship.DamageTaken += amount
	if ship.Health <= 0 {
		ship.Health = 0
		ship.IsAlive = false
	}
	return amount
}

// NoDamage 只保留调用点，不改变舰船状态
type NoDamage struct{}

// Apply 不结算伤害
func (NoDamage) Apply(*models.ShipEntity, float64) float64 {
	return 0
}

// NewDamagePolicy 根据配置选择伤害结算方式
func NewDamagePolicy(apply bool) DamagePolicy {
	if apply {
		return HealthDamage{}
	}
	return NoDamage{}
}
