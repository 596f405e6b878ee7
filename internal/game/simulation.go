package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jacl-coder/PixelStorm-Armory/config"
	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/jacl-coder/PixelStorm-Armory/internal/weapon"
)

// Simulation 按配置搭建场景并模拟扳机输入的无头驱动
type Simulation struct {
	cfg   *config.Config
	arena *Arena

	heroID   string
	enemyIDs []string

	cycle     []models.WeaponType
	cycleIdx  int
	nextCycle float64
	inputs    int64
}

// NewSimulation 创建场地并生成英雄与一排敌人
func NewSimulation(cfg *config.Config, defs weapon.Definitions) (*Simulation, error) {
	arena := NewArena(cfg.Arena, defs, NewDamagePolicy(cfg.Combat.ApplyDamage), cfg.Server.Verbose())
	s := &Simulation{cfg: cfg, arena: arena}

	sc := cfg.Scenario
	heroWeapon, err := models.ParseWeaponType(sc.HeroWeapon)
	if err != nil {
		return nil, err
	}
	enemyWeapon, err := models.ParseWeaponType(sc.EnemyWeapon)
	if err != nil {
		return nil, err
	}
	for _, name := range sc.WeaponCycle {
		t, err := models.ParseWeaponType(name)
		if err != nil {
			return nil, err
		}
		s.cycle = append(s.cycle, t)
	}
	s.nextCycle = sc.CycleEvery

	// 英雄在场地底部，朝上
	s.heroID = arena.SpawnShip(ShipSpec{
		Name:     "hero",
		Faction:  models.FactionHero,
		Position: models.Vector2D{X: 0, Y: cfg.Arena.MinY + 5},
		Health:   10,
	})
	mounts := sc.HeroMounts
	if mounts <= 0 {
		mounts = 1
	}
	for i := 0; i < mounts; i++ {
		offset := models.Vector2D{X: (float64(i) - float64(mounts-1)/2) * 2, Y: 1}
		slot, err := arena.AddMount(s.heroID, offset, 0)
		if err != nil {
			return nil, err
		}
		if err := arena.Equip(s.heroID, slot, heroWeapon); err != nil {
			return nil, err
		}
	}

	// 敌人排成一行，朝下
	for i := 0; i < sc.EnemyCount; i++ {
		x := (float64(i) - float64(sc.EnemyCount-1)/2) * sc.EnemySpacing
		id := arena.SpawnShip(ShipSpec{
			Name:     fmt.Sprintf("enemy-%d", i),
			Faction:  models.FactionEnemy,
			Position: models.Vector2D{X: x, Y: sc.EnemyY},
			Rotation: 180,
			Health:   sc.EnemyHealth,
		})
		s.enemyIDs = append(s.enemyIDs, id)

		if enemyWeapon == models.WeaponNone {
			continue
		}
		slot, err := arena.AddMount(id, models.Vector2D{Y: 1}, 0)
		if err != nil {
			return nil, err
		}
		if err := arena.Equip(id, slot, enemyWeapon); err != nil {
			return nil, err
		}
	}

	log.Printf("场景就绪: 英雄武器 %s x%d, 敌人 %d 个", heroWeapon, mounts, len(s.enemyIDs))
	return s, nil
}

// Arena 返回场地
func (s *Simulation) Arena() *Arena {
	return s.arena
}

// HeroID 英雄舰船ID
func (s *Simulation) HeroID() string {
	return s.heroID
}

// EnemyIDs 敌人舰船ID
func (s *Simulation) EnemyIDs() []string {
	return append([]string(nil), s.enemyIDs...)
}

// Tick 处理一帧输入后推进场地，用于固定步长的确定性模拟
func (s *Simulation) Tick(dt float64) {
	s.input()
	s.arena.Step(dt)
}

// RunFrames 以固定步长模拟 n 帧
func (s *Simulation) RunFrames(n int) {
	dt := 1 / float64(s.cfg.Arena.TickRate)
	for i := 0; i < n; i++ {
		s.Tick(dt)
	}
}

// Run 启动场地循环并按帧率输入，直到 ctx 取消或达到时长。duration 为 0 表示不限时
func (s *Simulation) Run(ctx context.Context, duration time.Duration) error {
	if err := s.arena.Start(); err != nil {
		return err
	}
	defer s.arena.Stop()

	ticker := time.NewTicker(s.cfg.Arena.TickInterval())
	defer ticker.Stop()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	var deadline <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ticker.C:
			s.input()
		case <-report.C:
			stats := s.arena.Stats()
			log.Printf("帧 %d: 投射物 %d, 光束 %d, 命中 %d, 伤害 %.1f, 摧毁 %d",
				stats.Frames, stats.ProjectilesAlive, stats.BeamsAlive, stats.Hits, stats.DamageDealt, stats.ShipsDestroyed)
		case <-deadline:
			log.Println("模拟时长已到")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// input 按配置切换武器并扣动扳机
func (s *Simulation) input() {
	s.inputs++

	if len(s.cycle) > 0 && s.cfg.Scenario.CycleEvery > 0 && s.arena.Now() >= s.nextCycle {
		t := s.cycle[s.cycleIdx%len(s.cycle)]
		s.cycleIdx++
		s.nextCycle += s.cfg.Scenario.CycleEvery
		for slot := 0; ; slot++ {
			if err := s.arena.Equip(s.heroID, slot, t); err != nil {
				break
			}
		}
		log.Printf("英雄切换武器: %s", t)
	}

	every := int64(s.cfg.Scenario.FireEvery)
	if every <= 0 {
		every = 1
	}
	if (s.inputs-1)%every != 0 {
		return
	}

	if err := s.arena.PullTrigger(s.heroID); err != nil {
		log.Printf("扣动扳机失败: %v", err)
	}
	if s.cfg.Scenario.EnemyWeapon == string(models.WeaponNone) {
		return
	}
	for _, id := range s.enemyIDs {
		if err := s.arena.PullTrigger(id); err != nil {
			log.Printf("扣动扳机失败: %v", err)
		}
	}
}
