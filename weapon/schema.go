package weapon

import (
	"fmt"
	"time"

	"arcstorm/event"
)

// Variant tags the weapon's fire behavior
type Variant int

const (
	// VariantProjectile spawns a projectile that applies splash damage on impact
	VariantProjectile Variant = iota

	// VariantHitscanChain resolves chain lightning along the aim ray on discharge
	VariantHitscanChain
)

func (v Variant) String() string {
	switch v {
	case VariantProjectile:
		return "Projectile"
	case VariantHitscanChain:
		return "HitscanChain"
	default:
		return "Unknown"
	}
}

// ProjectileStats is the projectile-variant payload of Stats
type ProjectileStats struct {
	SplashDamage    int
	SplashRadius    float64
	ProjectileSpeed float64 // Units per second
}

// ChainStats is the chain-variant payload of Stats
type ChainStats struct {
	MaxChainTargets int
	ChainRadius     float64
	DamageFalloff   float64 // Multiplicative per hop, in (0, 1]
}

// Stats holds the per-weapon combat numbers. Immutable after load.
// Exactly one of Projectile/Chain is set, matching the schema's Variant.
type Stats struct {
	Damage                int
	ChargeDuration        time.Duration
	DischargePeakDuration time.Duration
	DecayDuration         time.Duration

	Projectile *ProjectileStats
	Chain      *ChainStats
}

// Schema is the immutable identity and stats of one weapon
// Loaded once from configuration at startup; equipping is a pointer swap
type Schema struct {
	ID          string
	Name        string
	Description string
	ModelID     string
	Variant     Variant
	Visual      event.EffectKind
	Stats       Stats
}

// Validate enforces the startup assertions on weapon data:
// all durations positive, variant payload present, falloff in (0, 1]
func (s *Schema) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("weapon schema missing id")
	}
	if s.Stats.Damage <= 0 {
		return fmt.Errorf("weapon %q: damage must be positive, got %d", s.ID, s.Stats.Damage)
	}
	if s.Stats.ChargeDuration <= 0 {
		return fmt.Errorf("weapon %q: chargeDuration must be positive", s.ID)
	}
	if s.Stats.DischargePeakDuration <= 0 {
		return fmt.Errorf("weapon %q: dischargePeakDuration must be positive", s.ID)
	}
	if s.Stats.DecayDuration <= 0 {
		return fmt.Errorf("weapon %q: decayDuration must be positive", s.ID)
	}

	switch s.Variant {
	case VariantProjectile:
		p := s.Stats.Projectile
		if p == nil {
			return fmt.Errorf("weapon %q: projectile variant without projectile stats", s.ID)
		}
		if p.ProjectileSpeed <= 0 {
			return fmt.Errorf("weapon %q: projectileSpeed must be positive", s.ID)
		}
		if p.SplashRadius < 0 {
			return fmt.Errorf("weapon %q: splashRadius must not be negative", s.ID)
		}
	case VariantHitscanChain:
		c := s.Stats.Chain
		if c == nil {
			return fmt.Errorf("weapon %q: chain variant without chain stats", s.ID)
		}
		if c.MaxChainTargets < 1 {
			return fmt.Errorf("weapon %q: maxChainTargets must be at least 1", s.ID)
		}
		if c.ChainRadius <= 0 {
			return fmt.Errorf("weapon %q: chainRadius must be positive", s.ID)
		}
		if c.DamageFalloff <= 0 || c.DamageFalloff > 1 {
			return fmt.Errorf("weapon %q: damageFalloff must be in (0, 1], got %v", s.ID, c.DamageFalloff)
		}
	default:
		return fmt.Errorf("weapon %q: unknown variant %d", s.ID, s.Variant)
	}

	return nil
}
