// Package config holds all game configuration values, loaded once at
// startup. Defaults are complete and playable; a YAML file overrides them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"arcstorm/constant"
	"arcstorm/event"
	"arcstorm/weapon"
)

// Config holds all game configuration values
type Config struct {
	Game    GameConfig     `yaml:"game"`
	Player  PlayerConfig   `yaml:"player"`
	Enemies EnemyConfig    `yaml:"enemies"`
	Waves   WaveConfig     `yaml:"waves"`
	Weapons []WeaponConfig `yaml:"weapons"`
}

type GameConfig struct {
	TickMs      int     `yaml:"tick_ms"`
	ArenaRadius float64 `yaml:"arena_radius"`
	Audio       bool    `yaml:"audio"`
}

type PlayerConfig struct {
	MaxHealth  int `yaml:"max_health"`
	WardShield int `yaml:"ward_shield"`
}

type EnemyConfig struct {
	MaxHealth         int     `yaml:"max_health"`
	HitRadius         float64 `yaml:"hit_radius"`
	ContactRange      float64 `yaml:"contact_range"`
	ContactDamage     int     `yaml:"contact_damage"`
	AttackCooldownMs  int     `yaml:"attack_cooldown_ms"`
	DeathSplashDamage int     `yaml:"death_splash_damage"`
	DeathSplashRadius float64 `yaml:"death_splash_radius"`
}

type WaveConfig struct {
	BaseCount   int     `yaml:"base_count"`
	CountStep   int     `yaml:"count_step"`
	BreakMs     int     `yaml:"break_ms"`
	SpawnRadius float64 `yaml:"spawn_radius"`
	BaseSpeed   float64 `yaml:"base_speed"`
	SpeedStep   float64 `yaml:"speed_step"`
}

// WeaponConfig is the on-disk form of a weapon schema.
// Durations are integer milliseconds, matching the source data files.
type WeaponConfig struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Model           string `yaml:"model"`
	Variant         string `yaml:"variant"` // "projectile" or "chain"
	Damage          int    `yaml:"damage"`
	ChargeMs        int    `yaml:"charge_ms"`
	DischargePeakMs int    `yaml:"discharge_peak_ms"`
	DecayMs         int    `yaml:"decay_ms"`

	Projectile *ProjectileConfig `yaml:"projectile,omitempty"`
	Chain      *ChainConfig      `yaml:"chain,omitempty"`
}

type ProjectileConfig struct {
	SplashDamage int     `yaml:"splash_damage"`
	SplashRadius float64 `yaml:"splash_radius"`
	Speed        float64 `yaml:"speed"`
}

type ChainConfig struct {
	MaxChainTargets int     `yaml:"max_chain_targets"`
	ChainRadius     float64 `yaml:"chain_radius"`
	DamageFalloff   float64 `yaml:"damage_falloff"`
}

// Default returns the built-in playable configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			TickMs:      int(constant.GameTickInterval / time.Millisecond),
			ArenaRadius: constant.ArenaRadius,
			Audio:       true,
		},
		Player: PlayerConfig{
			MaxHealth:  constant.PlayerInitialMaxHealth,
			WardShield: constant.PlayerWardShield,
		},
		Enemies: EnemyConfig{
			MaxHealth:         constant.EnemyInitialHP,
			HitRadius:         constant.EnemyHitRadius,
			ContactRange:      constant.EnemyContactRange,
			ContactDamage:     constant.EnemyContactDamage,
			AttackCooldownMs:  int(constant.EnemyAttackCooldown / time.Millisecond),
			DeathSplashDamage: constant.EnemyDeathSplashDamage,
			DeathSplashRadius: constant.EnemyDeathSplashRadius,
		},
		Waves: WaveConfig{
			BaseCount:   constant.WaveBaseCount,
			CountStep:   constant.WaveCountStep,
			BreakMs:     int(constant.WaveBreak / time.Millisecond),
			SpawnRadius: constant.SpawnRingRadius,
			BaseSpeed:   constant.EnemyBaseSpeed,
			SpeedStep:   constant.EnemySpeedStep,
		},
		Weapons: []WeaponConfig{
			{
				ID:              "ember_staff",
				Name:            "Ember Staff",
				Description:     "Charges a molten bolt that bursts on impact",
				Model:           "staff_ember",
				Variant:         "projectile",
				Damage:          40,
				ChargeMs:        800,
				DischargePeakMs: 200,
				DecayMs:         400,
				Projectile: &ProjectileConfig{
					SplashDamage: 25,
					SplashRadius: 4.0,
					Speed:        30.0,
				},
			},
			{
				ID:              "storm_staff",
				Name:            "Storm Staff",
				Description:     "Arcs lightning through packed enemies",
				Model:           "staff_storm",
				Variant:         "chain",
				Damage:          35,
				ChargeMs:        1200,
				DischargePeakMs: 300,
				DecayMs:         500,
				Chain: &ChainConfig{
					MaxChainTargets: 3,
					ChainRadius:     8.0,
					DamageFalloff:   0.65,
				},
			},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks startup invariants, including every weapon schema
func (c *Config) Validate() error {
	if c.Game.TickMs <= 0 {
		return fmt.Errorf("game.tick_ms must be positive")
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.max_health must be positive")
	}
	if c.Enemies.MaxHealth <= 0 {
		return fmt.Errorf("enemies.max_health must be positive")
	}
	if c.Enemies.HitRadius <= 0 {
		return fmt.Errorf("enemies.hit_radius must be positive")
	}
	if len(c.Weapons) == 0 {
		return fmt.Errorf("at least one weapon must be configured")
	}

	schemas, err := c.Schemas()
	if err != nil {
		return err
	}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TickInterval returns the logic tick as a duration
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Game.TickMs) * time.Millisecond
}

// Schemas converts the weapon configs into validated-shape schemas
func (c *Config) Schemas() ([]*weapon.Schema, error) {
	out := make([]*weapon.Schema, 0, len(c.Weapons))
	for _, w := range c.Weapons {
		s := &weapon.Schema{
			ID:          w.ID,
			Name:        w.Name,
			Description: w.Description,
			ModelID:     w.Model,
			Stats: weapon.Stats{
				Damage:                w.Damage,
				ChargeDuration:        time.Duration(w.ChargeMs) * time.Millisecond,
				DischargePeakDuration: time.Duration(w.DischargePeakMs) * time.Millisecond,
				DecayDuration:         time.Duration(w.DecayMs) * time.Millisecond,
			},
		}

		switch w.Variant {
		case "projectile":
			s.Variant = weapon.VariantProjectile
			s.Visual = event.EffectExplosion
			if w.Projectile != nil {
				s.Stats.Projectile = &weapon.ProjectileStats{
					SplashDamage:    w.Projectile.SplashDamage,
					SplashRadius:    w.Projectile.SplashRadius,
					ProjectileSpeed: w.Projectile.Speed,
				}
			}
		case "chain":
			s.Variant = weapon.VariantHitscanChain
			s.Visual = event.EffectArcLightning
			if w.Chain != nil {
				s.Stats.Chain = &weapon.ChainStats{
					MaxChainTargets: w.Chain.MaxChainTargets,
					ChainRadius:     w.Chain.ChainRadius,
					DamageFalloff:   w.Chain.DamageFalloff,
				}
			}
		default:
			return nil, fmt.Errorf("weapon %q: unknown variant %q", w.ID, w.Variant)
		}

		out = append(out, s)
	}
	return out, nil
}
