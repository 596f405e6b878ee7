package game

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jacl-coder/PixelStorm-Armory/config"
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
)

var (
	// ErrShipNotFound 舰船不存在
	ErrShipNotFound = errors.New("舰船不存在")
	// ErrMountNotFound 挂点不存在
	ErrMountNotFound = errors.New("武器挂点不存在")
)

// Arena 战斗场地，持有全部实体并驱动每帧更新
type Arena struct {
	ID        string
	Status    models.ArenaStatus
	CreatedAt time.Time

	cfg       config.ArenaConfig
	playfield models.Playfield
	debug     bool

	mu sync.Mutex

	// 游戏状态
	entities  map[string]models.Entity
	mounts    map[string][]*Mount // 舰船ID -> 挂点
	triggers  map[string]*weapon.Trigger
	armory    *weapon.Armory
	damage    DamagePolicy
	clock     float64
	frameID   int64
	lastFrame time.Time

	contacts   map[contactKey]bool
	collisions []models.CollisionInfo
	spawned    []*models.ProjectileEntity
	stats      models.ArenaStats

	// 控制通道
	shutdown  chan struct{}
	done      chan struct{}
	isRunning bool
}

// ShipSpec 生成舰船的参数
type ShipSpec struct {
	Name     string
	Faction  models.Faction
	Position models.Vector2D
	Rotation float64 // 敌方舰船通常为 180，朝下
	Velocity models.Vector2D
	Health   float64
	Radius   float64
}

// NewArena 创建场地。投射物共享的锚点在这里创建一次
func NewArena(cfg config.ArenaConfig, defs weapon.Definitions, damage DamagePolicy, debug bool) *Arena {
	if damage == nil {
		damage = NoDamage{}
	}

	a := &Arena{
		ID:        uuid.New().String(),
		Status:    models.ArenaIdle,
		CreatedAt: time.Now(),
		cfg:       cfg,
		playfield: models.Playfield{MinX: cfg.MinX, MaxX: cfg.MaxX, MinY: cfg.MinY, MaxY: cfg.MaxY},
		debug:     debug,
		entities:  make(map[string]models.Entity),
		mounts:    make(map[string][]*Mount),
		triggers:  make(map[string]*weapon.Trigger),
		damage:    damage,
		contacts:  make(map[contactKey]bool),
	}
	a.armory = weapon.NewArmory(&arenaWorld{a: a}, defs, weapon.Anchor{ID: cfg.AnchorName})
	return a
}

// Start 启动场地循环
func (a *Arena) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isRunning {
		return fmt.Errorf("场地已经在运行")
	}

	a.isRunning = true
	a.Status = models.ArenaRunning
	a.lastFrame = time.Now()
	a.shutdown = make(chan struct{})
	a.done = make(chan struct{})

	log.Printf("场地 %s 启动, %d 帧/秒", a.ID, a.cfg.TickRate)
	go a.gameLoop(a.shutdown, a.done)
	return nil
}

// Stop 停止场地循环，等待当前帧结束
func (a *Arena) Stop() {
	a.mu.Lock()
	if !a.isRunning {
		a.mu.Unlock()
		return
	}
	close(a.shutdown)
	done := a.done
	a.isRunning = false
	a.Status = models.ArenaStopped
	a.mu.Unlock()

	<-done
	log.Printf("场地 %s 已停止, 共 %d 帧", a.ID, a.FrameID())
}

// gameLoop 场地主循环
func (a *Arena) gameLoop(shutdown <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			a.mu.Lock()
			dt := now.Sub(a.lastFrame).Seconds()
			a.lastFrame = now
			a.step(dt)
			a.mu.Unlock()
		case <-shutdown:
			return
		}
	}
}

// Step 推进一帧
func (a *Arena) Step(dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.step(dt)
}

// step 调用方必须持有锁
func (a *Arena) step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	a.clock += dt
	a.frameID++

	// 更新实体
	a.updateEntities(dt)

	// 投射物自检
	a.checkProjectiles()

	// 检测碰撞
	a.detectCollisions(dt)

	a.stats.Frames = a.frameID
}

// updateEntities 积分速度并同步炮口位置
func (a *Arena) updateEntities(dt float64) {
	for _, entity := range a.entities {
		switch e := entity.(type) {
		case *models.ShipEntity:
			if e.IsAlive {
				e.Position = e.Position.Add(e.Velocity.Scale(dt))
			}
		case *models.ProjectileEntity:
			// 光束的位置由武器每次开火时覆盖
			if !e.Beam {
				e.Position = e.Position.Add(e.Velocity.Scale(dt))
			}
			e.Age += dt
		}
	}

	for _, mounts := range a.mounts {
		for _, m := range mounts {
			m.syncCollar()
		}
	}
}

// checkProjectiles 越过上边界的投射物由武器核心销毁，其余方向出界或超时的由场地回收
func (a *Arena) checkProjectiles() {
	lifetime := a.cfg.ProjectileLifetime

	for _, p := range a.sortedProjectiles() {
		if a.armory.CheckBounds(p) {
			a.stats.OutOfBounds++
			continue
		}
		if p.Beam {
			continue
		}
		if !a.playfield.Contains(p.Position) {
			a.removeEntity(p.ID)
			a.stats.OutOfBounds++
			continue
		}
		if lifetime > 0 && p.Age >= lifetime {
			a.removeEntity(p.ID)
			a.stats.Expired++
		}
	}
}

// SpawnShip 生成舰船，返回舰船ID
func (a *Arena) SpawnShip(spec ShipSpec) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if spec.Health <= 0 {
		spec.Health = 1
	}
	if spec.Radius <= 0 {
		spec.Radius = a.cfg.ShipRadius
	}

	ship := &models.ShipEntity{
		BaseEntity: models.BaseEntity{
			ID:        uuid.New().String(),
			Type:      models.EntityShip,
			Position:  spec.Position,
			Rotation:  spec.Rotation,
			Velocity:  spec.Velocity,
			CreatedAt: time.Now(),
		},
		Name:      spec.Name,
		Faction:   spec.Faction,
		Radius:    spec.Radius,
		Health:    spec.Health,
		MaxHealth: spec.Health,
		IsAlive:   true,
	}
	a.entities[ship.ID] = ship
	a.triggers[ship.ID] = &weapon.Trigger{}

	if a.debug {
		log.Printf("场地 %s 生成舰船 %s (%s) 于 (%.1f, %.1f)", a.ID, ship.Name, ship.Faction, ship.Position.X, ship.Position.Y)
	}
	return ship.ID
}

// AddMount 在舰船上添加武器挂点，返回挂点序号。新武器自动接到舰船的扳机上
func (a *Arena) AddMount(shipID string, offset models.Vector2D, angle float64) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ship, ok := a.ship(shipID)
	if !ok {
		return 0, fmt.Errorf("%s: %w", shipID, ErrShipNotFound)
	}

	collar := &models.CollarEntity{
		BaseEntity: models.BaseEntity{
			ID:        uuid.New().String(),
			Type:      models.EntityCollar,
			CreatedAt: time.Now(),
		},
		ShipID: shipID,
	}
	a.entities[collar.ID] = collar

	m := &Mount{
		ship:    ship,
		collar:  collar,
		Slot:    len(a.mounts[shipID]),
		Offset:  offset,
		Angle:   angle,
		enabled: true,
	}
	m.syncCollar()
	m.weapon = a.armory.NewWeapon(m)
	a.triggers[shipID].Bind(m.weapon.Fire)

	a.mounts[shipID] = append(a.mounts[shipID], m)
	return m.Slot, nil
}

// Equip 切换挂点上的武器
func (a *Arena) Equip(shipID string, slot int, t models.WeaponType) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.mount(shipID, slot)
	if err != nil {
		return err
	}
	m.weapon.SetType(t)

	if a.debug {
		log.Printf("舰船 %s 挂点 %d 装备 %s", m.ship.Name, slot, t)
	}
	return nil
}

// SetMountEnabled 启用或禁用挂点。禁用时回收光束，武器类型不变
func (a *Arena) SetMountEnabled(shipID string, slot int, enabled bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.mount(shipID, slot)
	if err != nil {
		return err
	}
	m.enabled = enabled
	if !enabled {
		m.weapon.Release()
	}
	return nil
}

// BindTrigger 给舰船扳机额外绑定开火函数。fire 在场地锁内执行
func (a *Arena) BindTrigger(shipID string, fire weapon.FireFunc) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	trigger, ok := a.triggers[shipID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", shipID, ErrShipNotFound)
	}
	return trigger.Bind(fire), nil
}

// PullTrigger 扣动舰船扳机，挂在上面的所有武器各开火一次
func (a *Arena) PullTrigger(shipID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	trigger, ok := a.triggers[shipID]
	if !ok {
		return fmt.Errorf("%s: %w", shipID, ErrShipNotFound)
	}
	trigger.Pull()
	a.flushSpawned()
	return nil
}

// Weapon 返回挂点上的武器状态
func (a *Arena) Weapon(shipID string, slot int) (models.MountInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.mount(shipID, slot)
	if err != nil {
		return models.MountInfo{}, err
	}
	return m.info(), nil
}

// Ship 返回舰船副本
func (a *Arena) Ship(shipID string) (models.ShipEntity, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ship, ok := a.ship(shipID)
	if !ok {
		return models.ShipEntity{}, false
	}
	return *ship, true
}

// Projectiles 返回当前全部投射物的副本，按ID排序
func (a *Arena) Projectiles() []models.ProjectileEntity {
	a.mu.Lock()
	defer a.mu.Unlock()

	ps := a.sortedProjectiles()
	out := make([]models.ProjectileEntity, 0, len(ps))
	for _, p := range ps {
		out = append(out, *p)
	}
	return out
}

// MoveShip 直接设置舰船位姿
func (a *Arena) MoveShip(shipID string, pos models.Vector2D, rotation float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ship, ok := a.ship(shipID)
	if !ok {
		return fmt.Errorf("%s: %w", shipID, ErrShipNotFound)
	}
	ship.Position = pos
	ship.Rotation = rotation
	for _, m := range a.mounts[shipID] {
		m.syncCollar()
	}
	return nil
}

// Now 游戏时间(秒)
func (a *Arena) Now() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clock
}

// FrameID 当前帧号
func (a *Arena) FrameID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frameID
}

// LastCollisions 上一帧产生的碰撞
func (a *Arena) LastCollisions() []models.CollisionInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.CollisionInfo(nil), a.collisions...)
}

// Stats 场地统计
func (a *Arena) Stats() models.ArenaStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentStats()
}

// Snapshot 当前帧快照
func (a *Arena) Snapshot() *models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := &models.Snapshot{
		ArenaID:  a.ID,
		Status:   a.Status,
		FrameID:  a.frameID,
		GameTime: a.clock,
		TakenAt:  time.Now(),
		Stats:    a.currentStats(),
	}

	for _, ship := range a.sortedShips() {
		snap.Ships = append(snap.Ships, *ship)
		for _, m := range a.mounts[ship.ID] {
			snap.Mounts = append(snap.Mounts, m.info())
		}
	}
	for _, p := range a.sortedProjectiles() {
		snap.Projectiles = append(snap.Projectiles, *p)
	}
	return snap
}

// currentStats 调用方必须持有锁
func (a *Arena) currentStats() models.ArenaStats {
	stats := a.stats.Clone()
	stats.ProjectilesAlive = 0
	stats.BeamsAlive = 0
	for _, entity := range a.entities {
		if p, ok := entity.(*models.ProjectileEntity); ok {
			if p.Beam {
				stats.BeamsAlive++
			} else {
				stats.ProjectilesAlive++
			}
		}
	}
	return stats
}

// flushSpawned 统计本次开火生成的投射物。类型和光束标记在生成后才写入，所以延后统计
func (a *Arena) flushSpawned() {
	for _, p := range a.spawned {
		a.stats.RecordShot(p.WeaponType, p.Beam)
		if a.debug {
			log.Printf("生成 %s 投射物 %s 于 (%.1f, %.1f)", p.WeaponType, p.ID, p.Position.X, p.Position.Y)
		}
	}
	a.spawned = a.spawned[:0]
}

// removeEntity 删除实体并清理接触记录
func (a *Arena) removeEntity(id string) {
	delete(a.entities, id)
	for key := range a.contacts {
		if key.projectile == id || key.ship == id {
			delete(a.contacts, key)
		}
	}
}

func (a *Arena) ship(id string) (*models.ShipEntity, bool) {
	ship, ok := a.entities[id].(*models.ShipEntity)
	return ship, ok
}

func (a *Arena) mount(shipID string, slot int) (*Mount, error) {
	mounts, ok := a.mounts[shipID]
	if !ok {
		if _, exists := a.ship(shipID); !exists {
			return nil, fmt.Errorf("%s: %w", shipID, ErrShipNotFound)
		}
	}
	if slot < 0 || slot >= len(mounts) {
		return nil, fmt.Errorf("舰船 %s 挂点 %d: %w", shipID, slot, ErrMountNotFound)
	}
	return mounts[slot], nil
}

func (a *Arena) sortedProjectiles() []*models.ProjectileEntity {
	out := make([]*models.ProjectileEntity, 0, len(a.entities))
	for _, entity := range a.entities {
		if p, ok := entity.(*models.ProjectileEntity); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (a *Arena) sortedShips() []*models.ShipEntity {
	out := make([]*models.ShipEntity, 0, len(a.entities))
	for _, entity := range a.entities {
		if s, ok := entity.(*models.ShipEntity); ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
