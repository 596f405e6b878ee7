// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacl-coder/PixelStorm-Armory/config"
	"github.com/jacl-coder/PixelStorm-Armory/internal/catalog"
	"github.com/jacl-coder/PixelStorm-Armory/internal/game"
	"github.com/jacl-coder/PixelStorm-Armory/internal/protocol"
	"github.com/jacl-coder/PixelStorm-Armory/pkg/db"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	duration := flag.Duration("duration", 10*time.Second, "模拟时长，0 表示直到收到关闭信号")
	dumpPath := flag.String("dump", "", "结束时写出场地快照(JSON)的路径")
	flag.Parse()

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := &config.GlobalConfig

	// 只有从数据库读取武器定义时才需要连接
	if cfg.Definitions.Source == config.SourcePostgres {
		if err := db.InitPostgres(&cfg.Database); err != nil {
			log.Fatalf("初始化PostgreSQL失败: %v", err)
		}
		defer db.Close()

		if cfg.Definitions.UseCache {
			if err := db.InitRedis(&cfg.Redis); err != nil {
				log.Printf("初始化Redis失败，不使用缓存: %v", err)
			} else {
				defer db.CloseRedis()
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table, err := catalog.Load(ctx, cfg)
	if err != nil {
		log.Fatalf("加载武器定义失败: %v", err)
	}
	log.Printf("已加载 %d 种武器定义 (来源: %s)", len(table.All()), cfg.Definitions.Source)

	sim, err := game.NewSimulation(cfg, table)
	if err != nil {
		log.Fatalf("创建模拟失败: %v", err)
	}

	log.Printf("场地 %s 开始模拟", sim.Arena().ID)
	if err := sim.Run(ctx, *duration); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("模拟异常结束: %v", err)
	}

	stats := sim.Arena().Stats()
	log.Printf("模拟结束: %d 帧, 开火 %d 次, 光束 %d 条, 命中 %d 次, 伤害 %.1f, 摧毁 %d 艘",
		stats.Frames, stats.ShotsFired, stats.BeamsCreated, stats.Hits, stats.DamageDealt, stats.ShipsDestroyed)
	for t, n := range stats.ShotsByWeapon {
		log.Printf("  %s: %d", t, n)
	}

	if *dumpPath != "" {
		data, err := protocol.MarshalSnapshotJSON(sim.Arena().Snapshot())
		if err != nil {
			log.Fatalf("生成快照失败: %v", err)
		}
		if err := os.WriteFile(*dumpPath, data, 0o644); err != nil {
			log.Fatalf("写出快照失败: %v", err)
		}
		log.Printf("快照已写入 %s", *dumpPath)
	}
}
