// main.go

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/jacl-coder/PixelStorm-Armory/config"
	"github.com/jacl-coder/PixelStorm-Armory/internal/catalog"
	"github.com/jacl-coder/PixelStorm-Armory/pkg/db"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	action := flag.String("action", "help", "操作类型: reset, init, seed, setup, help")
	flag.Parse()

	// 显示帮助信息
	if *action == "help" {
		showHelp()
		return
	}

	// 加载配置
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := &config.GlobalConfig

	// 初始化数据库连接
	if err := db.InitPostgres(&cfg.Database); err != nil {
		log.Fatalf("初始化PostgreSQL失败: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 执行操作
	var err error
	switch *action {
	case "reset":
		err = resetDatabase(ctx)
	case "init":
		err = initDatabase(ctx)
	case "seed":
		err = seedDefinitions(ctx, cfg)
	case "setup":
		if err = resetDatabase(ctx); err == nil {
			if err = initDatabase(ctx); err == nil {
				err = seedDefinitions(ctx, cfg)
			}
		}
	default:
		log.Fatalf("未知操作: %s", *action)
	}
	if err != nil {
		log.Fatalf("操作 %s 失败: %v", *action, err)
	}
}

// showHelp 显示帮助信息
func showHelp() {
	log.Println("PixelStorm Armory 数据库管理工具")
	log.Println("")
	log.Println("用法:")
	log.Println("  go run ./cmd/dbtool -action=<操作> [-config=<配置文件>]")
	log.Println("")
	log.Println("操作:")
	log.Println("  reset  - 删除武器定义表")
	log.Println("  init   - 创建武器定义表")
	log.Println("  seed   - 将配置中的武器定义写入数据库")
	log.Println("  setup  - 依次执行 reset, init 和 seed")
	log.Println("  help   - 显示此帮助信息")
}

// resetDatabase 重置数据库
func resetDatabase(ctx context.Context) error {
	log.Println("⚠️  正在删除武器定义表...")
	if err := db.DropAllTables(ctx); err != nil {
		return err
	}
	log.Println("✅ 数据库重置完成")
	return nil
}

// initDatabase 初始化数据库
func initDatabase(ctx context.Context) error {
	log.Println("🚀 正在创建数据库表...")
	if err := db.InitAllTables(ctx); err != nil {
		return err
	}
	log.Println("✅ 数据库初始化完成")
	return nil
}

// seedDefinitions 写入武器定义，并清掉可能过期的缓存
func seedDefinitions(ctx context.Context, cfg *config.Config) error {
	// 先校验，避免把不完整的定义表写进数据库
	if _, err := catalog.BuildTable(cfg.Weapons); err != nil {
		return err
	}

	if err := catalog.NewPostgresStore(db.DB).Seed(ctx, cfg.Weapons); err != nil {
		return err
	}
	log.Printf("✅ 已写入 %d 条武器定义", len(cfg.Weapons))

	if !cfg.Definitions.UseCache {
		return nil
	}
	if err := db.InitRedis(&cfg.Redis); err != nil {
		log.Printf("连接Redis失败，跳过缓存清理: %v", err)
		return nil
	}
	defer db.CloseRedis()

	cache := catalog.NewRedisCache(db.RedisClient, cfg.Definitions.CacheKey, cfg.Definitions.CacheTTL)
	if err := cache.Invalidate(ctx); err != nil {
		log.Printf("清理定义缓存失败: %v", err)
	}
	return nil
}
