// config.go

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
	"github.com/spf13/viper"
)

// 武器定义来源
const (
	SourceConfig   = "config"
	SourcePostgres = "postgres"
)

// Config 配置结构
type Config struct {
	Server      ServerConfig          `mapstructure:"server"`
	Database    DatabaseConfig        `mapstructure:"database"`
	Redis       RedisConfig           `mapstructure:"redis"`
	Arena       ArenaConfig           `mapstructure:"arena"`
	Definitions DefinitionsConfig     `mapstructure:"definitions"`
	Weapons     []models.WeaponRecord `mapstructure:"weapons"`
	Scenario    ScenarioConfig        `mapstructure:"scenario"`
	Combat      CombatConfig          `mapstructure:"combat"`
}

// ServerConfig 进程基本配置
type ServerConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ArenaConfig 场地与模拟参数
type ArenaConfig struct {
	TickRate   int    `mapstructure:"tick_rate"` // 每秒帧数
	AnchorName string `mapstructure:"anchor_name"`

	// 场地边界，投射物越过 MaxY 即自毁
	MinX float64 `mapstructure:"min_x"`
	MaxX float64 `mapstructure:"max_x"`
	MinY float64 `mapstructure:"min_y"`
	MaxY float64 `mapstructure:"max_y"`

	ProjectileLifetime float64 `mapstructure:"projectile_lifetime"` // 秒，0 表示不限
	BeamLength         float64 `mapstructure:"beam_length"`
	ShipRadius         float64 `mapstructure:"ship_radius"`
	ProjectileRadius   float64 `mapstructure:"projectile_radius"`
}

// DefinitionsConfig 武器定义加载配置
type DefinitionsConfig struct {
	Source   string        `mapstructure:"source"` // config 或 postgres
	UseCache bool          `mapstructure:"use_cache"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	CacheKey string        `mapstructure:"cache_key"`
}

// ScenarioConfig 无头模拟的初始场景
type ScenarioConfig struct {
	HeroWeapon  string   `mapstructure:"hero_weapon"`
	HeroMounts  int      `mapstructure:"hero_mounts"`
	WeaponCycle []string `mapstructure:"weapon_cycle"` // 依次切换的武器类型
	CycleEvery  float64  `mapstructure:"cycle_every"`  // 切换间隔(秒)，0 表示不切换
	FireEvery   int      `mapstructure:"fire_every"`   // 每隔几帧扣一次扳机

	EnemyCount   int     `mapstructure:"enemy_count"`
	EnemySpacing float64 `mapstructure:"enemy_spacing"`
	EnemyY       float64 `mapstructure:"enemy_y"`
	EnemyHealth  float64 `mapstructure:"enemy_health"`
	EnemyWeapon  string  `mapstructure:"enemy_weapon"`
}

// CombatConfig 战斗结算配置
type CombatConfig struct {
	ApplyDamage bool `mapstructure:"apply_damage"` // false 时伤害调用为空操作
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig Config
)

// SetDefaults 设置默认值，空配置文件也能跑起一个场地
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.debug", false)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "pixelstorm")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("arena.tick_rate", 60)
	v.SetDefault("arena.anchor_name", "_ProjectileAnchor")
	v.SetDefault("arena.min_x", -40.0)
	v.SetDefault("arena.max_x", 40.0)
	v.SetDefault("arena.min_y", -30.0)
	v.SetDefault("arena.max_y", 30.0)
	v.SetDefault("arena.projectile_lifetime", 0.0)
	v.SetDefault("arena.beam_length", 60.0)
	v.SetDefault("arena.ship_radius", 2.0)
	v.SetDefault("arena.projectile_radius", 0.5)

	v.SetDefault("definitions.source", SourceConfig)
	v.SetDefault("definitions.use_cache", false)
	v.SetDefault("definitions.cache_ttl", "10m")
	v.SetDefault("definitions.cache_key", "armory:weapon_definitions")

	v.SetDefault("scenario.hero_weapon", string(models.WeaponBlaster))
	v.SetDefault("scenario.hero_mounts", 1)
	v.SetDefault("scenario.cycle_every", 0.0)
	v.SetDefault("scenario.fire_every", 1)
	v.SetDefault("scenario.enemy_count", 5)
	v.SetDefault("scenario.enemy_spacing", 12.0)
	v.SetDefault("scenario.enemy_y", 20.0)
	v.SetDefault("scenario.enemy_health", 10.0)
	v.SetDefault("scenario.enemy_weapon", string(models.WeaponNone))

	v.SetDefault("combat.apply_damage", true)
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	GlobalConfig = *cfg
	return nil
}

// Load 读取并校验配置，不修改 GlobalConfig
func Load(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("无法读取配置文件: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	if len(cfg.Weapons) == 0 {
		cfg.Weapons = models.DefaultWeaponRecords()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Arena.TickRate <= 0 {
		return fmt.Errorf("arena.tick_rate 必须大于0: %d", c.Arena.TickRate)
	}
	if c.Arena.MaxX <= c.Arena.MinX || c.Arena.MaxY <= c.Arena.MinY {
		return fmt.Errorf("arena 边界无效")
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("未知的日志级别: %s", c.Server.LogLevel)
	}
	switch c.Definitions.Source {
	case SourceConfig, SourcePostgres:
	default:
		return fmt.Errorf("未知的武器定义来源: %s", c.Definitions.Source)
	}
	if _, err := models.ParseWeaponType(c.Scenario.HeroWeapon); err != nil {
		return fmt.Errorf("scenario.hero_weapon: %w", err)
	}
	if _, err := models.ParseWeaponType(c.Scenario.EnemyWeapon); err != nil {
		return fmt.Errorf("scenario.enemy_weapon: %w", err)
	}
	for _, s := range c.Scenario.WeaponCycle {
		if _, err := models.ParseWeaponType(s); err != nil {
			return fmt.Errorf("scenario.weapon_cycle: %w", err)
		}
	}
	return nil
}

// Verbose 是否输出逐帧调试日志，debug 开关或 debug 日志级别都会打开
func (c *ServerConfig) Verbose() bool {
	return c.Debug || strings.EqualFold(c.LogLevel, "debug")
}

// TickInterval 每帧时长
func (c *ArenaConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
