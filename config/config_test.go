package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jacl-coder/PixelStorm-Armory/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  debug: true\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Server.Debug {
		t.Fatalf("expected debug from file")
	}
	if cfg.Arena.TickRate != 60 || cfg.Arena.AnchorName != "_ProjectileAnchor" {
		t.Fatalf("unexpected arena defaults: %+v", cfg.Arena)
	}
	if cfg.Definitions.Source != SourceConfig || cfg.Definitions.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected definitions defaults: %+v", cfg.Definitions)
	}
	if len(cfg.Weapons) != len(models.AllWeaponTypes) {
		t.Fatalf("expected default weapon records, got %d", len(cfg.Weapons))
	}
	if !cfg.Combat.ApplyDamage {
		t.Fatalf("expected damage enabled by default")
	}
}

func TestLoadReadsWeaponRecords(t *testing.T) {
	body := `
arena:
  tick_rate: 30
  max_y: 50
weapons:
  - type: blaster
    letter: B
    color: "#FF8800"
    projectile_template: bolt
    delay_between_shots: 0.5
    velocity: 20
scenario:
  hero_weapon: laser
  weapon_cycle: [spread, laser]
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Arena.TickRate != 30 || cfg.Arena.MaxY != 50 {
		t.Fatalf("unexpected arena: %+v", cfg.Arena)
	}
	if cfg.Arena.TickInterval() != time.Second/30 {
		t.Fatalf("unexpected tick interval %v", cfg.Arena.TickInterval())
	}
	if len(cfg.Weapons) != 1 {
		t.Fatalf("expected 1 weapon record, got %d", len(cfg.Weapons))
	}
	rec := cfg.Weapons[0]
	if rec.Type != "blaster" || rec.Color != "#FF8800" || rec.DelayBetweenShots != 0.5 || rec.Velocity != 20 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if cfg.Scenario.HeroWeapon != "laser" || len(cfg.Scenario.WeaponCycle) != 2 {
		t.Fatalf("unexpected scenario: %+v", cfg.Scenario)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"tick rate": "arena:\n  tick_rate: 0\n",
		"bounds":    "arena:\n  min_y: 10\n  max_y: 5\n",
		"source":    "definitions:\n  source: mongo\n",
		"log level": "server:\n  log_level: loud\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := Load(writeConfig(t, "scenario:\n  hero_weapon: railgun\n"))
	if !errors.Is(err, models.ErrUnknownWeaponType) {
		t.Fatalf("expected ErrUnknownWeaponType, got %v", err)
	}
}

func TestVerboseFollowsDebugOrLogLevel(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  log_level: DEBUG\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Server.Verbose() {
		t.Fatalf("expected debug log level to turn on verbose logging")
	}

	cfg, err = Load(writeConfig(t, "server:\n  log_level: warn\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Verbose() {
		t.Fatalf("expected warn level without debug to stay quiet")
	}

	cfg.Server.Debug = true
	if !cfg.Server.Verbose() {
		t.Fatalf("expected debug flag to turn on verbose logging")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadConfigSetsGlobal(t *testing.T) {
	old := GlobalConfig
	defer func() { GlobalConfig = old }()

	if err := LoadConfig(writeConfig(t, "redis:\n  port: 6380\n")); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if GlobalConfig.Redis.GetRedisAddr() != "localhost:6380" {
		t.Fatalf("unexpected redis addr %s", GlobalConfig.Redis.GetRedisAddr())
	}
}
