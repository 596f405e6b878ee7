package weapon

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

type fakeWorld struct {
	now       float64
	upperY    float64
	nextID    int
	entities  map[string]*models.ProjectileEntity
	colors    map[string]color.RGBA
	damage    map[string]float64
	destroyed []string
	spawned   int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		upperY:   100,
		entities: make(map[string]*models.ProjectileEntity),
		colors:   make(map[string]color.RGBA),
		damage:   make(map[string]float64),
	}
}

func (w *fakeWorld) Now() float64 { return w.now }

func (w *fakeWorld) SetColor(id string, c color.RGBA) { w.colors[id] = c }

func (w *fakeWorld) SetVelocity(id string, v models.Vector2D) {
	if p, ok := w.entities[id]; ok {
		p.Velocity = v
	}
}

func (w *fakeWorld) Instantiate(template string, anchor Anchor) *models.ProjectileEntity {
	w.nextID++
	w.spawned++
	p := &models.ProjectileEntity{
		BaseEntity: models.BaseEntity{
			ID:   fmt.Sprintf("p%d", w.nextID),
			Type: models.EntityProjectile,
		},
		Template: template,
		Anchor:   anchor.ID,
	}
	w.entities[p.ID] = p
	return p
}

func (w *fakeWorld) Destroy(id string) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	w.destroyed = append(w.destroyed, id)
}

func (w *fakeWorld) Alive(id string) bool {
	_, ok := w.entities[id]
	return ok
}

func (w *fakeWorld) ApplyDamage(id string, amount float64) { w.damage[id] += amount }

func (w *fakeWorld) OffUp(e models.Entity) bool { return e.GetPosition().Y > w.upperY }

func (w *fakeWorld) projectiles(beam bool) []*models.ProjectileEntity {
	var out []*models.ProjectileEntity
	for _, p := range w.entities {
		if p.Beam == beam {
			out = append(out, p)
		}
	}
	return out
}

type fakeMount struct {
	collar   string
	pos      models.Vector2D
	rotation float64
	up       models.Vector2D
	faction  models.Faction
	disabled bool
}

func newHeroMount() *fakeMount {
	return &fakeMount{
		collar:  "collar-1",
		pos:     models.Vector2D{X: 5, Y: -10},
		up:      models.Vector2D{X: 0, Y: 1},
		faction: models.FactionHero,
	}
}

func (m *fakeMount) CollarID() string { return m.collar }

func (m *fakeMount) CollarPose() (models.Vector2D, float64) { return m.pos, m.rotation }

func (m *fakeMount) Up() models.Vector2D { return m.up }

func (m *fakeMount) Faction() models.Faction { return m.faction }

func (m *fakeMount) Enabled() bool { return !m.disabled }

func testTable(t *testing.T) *Table {
	t.Helper()

	var defs []models.WeaponDefinition
	for _, rec := range models.DefaultWeaponRecords() {
		def, err := rec.ToDefinition()
		if err != nil {
			t.Fatalf("default record %s: %v", rec.Type, err)
		}
		switch def.Type {
		case models.WeaponBlaster:
			def.DelayBetweenShots = 0.5
			def.Velocity = 20
			def.DamageOnHit = 2
		case models.WeaponLaser:
			def.DamageOnHit = 1
			def.ContinuousDamage = 10
		}
		defs = append(defs, def)
	}

	table, err := NewTable(defs)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func newTestArmory(t *testing.T) (*Armory, *fakeWorld) {
	t.Helper()
	world := newFakeWorld()
	return NewArmory(world, testTable(t), Anchor{ID: "_ProjectileAnchor"}), world
}
