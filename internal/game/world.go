package game

import (
	"image/color"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
)

// arenaWorld 场地对武器核心提供的协作者实现。
// 所有方法都在场地锁内被调用，不能再次加锁
type arenaWorld struct {
	a *Arena
}

var _ weapon.World = (*arenaWorld)(nil)

// Now 游戏时间
func (w *arenaWorld) Now() float64 {
	return w.a.clock
}

// SetColor 给炮口或投射物着色
func (w *arenaWorld) SetColor(entityID string, c color.RGBA) {
	switch e := w.a.entities[entityID].(type) {
	case *models.CollarEntity:
		e.Color = c
	case *models.ProjectileEntity:
		e.Color = c
	}
}

// SetVelocity 设置速度，由 updateEntities 积分
func (w *arenaWorld) SetVelocity(entityID string, v models.Vector2D) {
	switch e := w.a.entities[entityID].(type) {
	case *models.ProjectileEntity:
		e.Velocity = v
	case *models.ShipEntity:
		e.Velocity = v
	}
}

// Instantiate 创建投射物并挂到共享锚点下
func (w *arenaWorld) Instantiate(template string, anchor weapon.Anchor) *models.ProjectileEntity {
	p := &models.ProjectileEntity{
		BaseEntity: models.BaseEntity{
			ID:        uuid.New().String(),
			Type:      models.EntityProjectile,
			CreatedAt: time.Now(),
		},
		Template: template,
		Anchor:   anchor.ID,
	}
	w.a.entities[p.ID] = p
	w.a.spawned = append(w.a.spawned, p)
	return p
}

// Destroy 销毁实体，不存在时什么也不做
func (w *arenaWorld) Destroy(entityID string) {
	if _, ok := w.a.entities[entityID]; !ok {
		return
	}
	w.a.removeEntity(entityID)
}

// Alive 实体是否存在
func (w *arenaWorld) Alive(entityID string) bool {
	_, ok := w.a.entities[entityID]
	return ok
}

// ApplyDamage 按伤害策略结算
func (w *arenaWorld) ApplyDamage(targetID string, amount float64) {
	ship, ok := w.a.ship(targetID)
	if !ok {
		return
	}

	wasAlive := ship.IsAlive
	w.a.stats.DamageDealt += w.a.damage.Apply(ship, amount)
	if wasAlive && !ship.IsAlive {
		w.a.stats.ShipsDestroyed++
		// 被摧毁舰船的挂点不再开火，光束随之回收
		for _, m := range w.a.mounts[targetID] {
			m.weapon.Release()
		}
		log.Printf("舰船 %s 被摧毁", ship.Name)
	}
}

// OffUp 是否越过场地上边界
func (w *arenaWorld) OffUp(e models.Entity) bool {
	return w.a.playfield.AboveTop(e.GetPosition())
}
