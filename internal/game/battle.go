package game

import (
	"math"
	"time"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
)

// contactKey 投射物与舰船的一次接触
type contactKey struct {
	projectile string
	ship       string
}

// detectCollisions 检测投射物与舰船的接触，区分首次接触与持续接触
func (a *Arena) detectCollisions(dt float64) {
	ships := a.sortedShips()
	current := make(map[contactKey]bool)
	a.collisions = a.collisions[:0]

	for _, p := range a.sortedProjectiles() {
		for _, ship := range ships {
			// 本帧已被回收的投射物(例如随舰船一起销毁的光束)不再结算
			if _, ok := a.entities[p.ID]; !ok {
				break
			}
			// 同阵营不检测，相当于按层过滤
			if !ship.IsAlive || !ship.Faction.Opposes(p.Faction) {
				continue
			}
			if !a.overlaps(p, ship) {
				continue
			}

			key := contactKey{projectile: p.ID, ship: ship.ID}
			contact := weapon.Contact{TargetID: ship.ID, Kind: models.EntityShip, Faction: ship.Faction}

			if a.contacts[key] {
				a.armory.OnContactStay(p, contact, dt)
				a.recordCollision(p, ship, true)
				current[key] = true
				continue
			}

			a.stats.Hits++
			a.recordCollision(p, ship, false)
			if a.armory.OnContactEnter(p, contact) {
				break
			}
			current[key] = true
		}
	}

	// 本帧被销毁的投射物不保留接触
	for key := range current {
		if _, ok := a.entities[key.projectile]; !ok {
			delete(current, key)
		}
	}
	a.contacts = current
}

// overlaps 独立投射物按圆形检测，光束按从炮口射出的线段检测
func (a *Arena) overlaps(p *models.ProjectileEntity, ship *models.ShipEntity) bool {
	reach := ship.Radius + a.cfg.ProjectileRadius
	if !p.Beam {
		return p.Position.Sub(ship.Position).Length() < reach
	}

	dir := weapon.RotateBack(models.Vector2D{X: 0, Y: 1}, p.Rotation)
	end := p.Position.Add(dir.Scale(a.cfg.BeamLength))
	return distanceToSegment(ship.Position, p.Position, end) < reach
}

// recordCollision 记录碰撞
func (a *Arena) recordCollision(p *models.ProjectileEntity, ship *models.ShipEntity, stay bool) {
	d := p.Position.Sub(ship.Position)
	normal := models.Vector2D{}
	if l := d.Length(); l > 0 {
		normal = d.Scale(1 / l)
	}

	a.collisions = append(a.collisions, models.CollisionInfo{
		EntityA:  p.ID,
		EntityB:  ship.ID,
		Position: models.Vector2D{X: (p.Position.X + ship.Position.X) / 2, Y: (p.Position.Y + ship.Position.Y) / 2},
		Normal:   normal,
		Stay:     stay,
		Time:     time.Now(),
	})
}

// distanceToSegment 点到线段 ab 的距离
func distanceToSegment(pt, a, b models.Vector2D) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return pt.Sub(a).Length()
	}

	t := ((pt.X-a.X)*ab.X + (pt.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(ab.Scale(t))
	return pt.Sub(closest).Length()
}
