package event

import (
	"github.com/google/uuid"

	"arcstorm/core"
	"arcstorm/vmath"
)

// EffectKind identifies the visual effect variant in EventEffectTriggered
type EffectKind int

const (
	EffectSplashDamage EffectKind = iota
	EffectArcLightning
	EffectExplosion
	EffectNova
	EffectDischarge
	EffectEnemyDeath
)

// String returns the effect name used by the rendering collaborator
func (k EffectKind) String() string {
	switch k {
	case EffectSplashDamage:
		return "splash_damage"
	case EffectArcLightning:
		return "arc_lightning"
	case EffectExplosion:
		return "explosion"
	case EffectNova:
		return "nova"
	case EffectDischarge:
		return "discharge"
	case EffectEnemyDeath:
		return "enemy_death"
	default:
		return "unknown"
	}
}

// WeaponFiredPayload describes a projectile leaving the staff
type WeaponFiredPayload struct {
	ID       uuid.UUID  // Projectile instance id for the rendering collaborator
	Start    vmath.Vec3 // Muzzle position
	Velocity vmath.Vec3 // Units per second
	Visual   EffectKind // Trail/impact visual variant
}

// EnemyHitPayload carries damage for a single enemy
type EnemyHitPayload struct {
	ID       core.Entity
	Damage   int
	Position vmath.Vec3 // Hit position, used for follow-on effects
}

// EnemyDiedPayload identifies a removed enemy
type EnemyDiedPayload struct {
	ID       core.Entity
	Position vmath.Vec3
}

// PlayerDamagePayload carries incoming player damage
type PlayerDamagePayload struct {
	Amount int
}

// ShieldPayload carries the ward shield amount
type ShieldPayload struct {
	Amount int
}

// ScorePayload carries a score delta
type ScorePayload struct {
	Amount int
}

// EffectPayload describes a transient effect, variant fields by Kind.
// Points is populated for EffectArcLightning (origin plus each hit, in order).
// Damage and Source are populated for EffectSplashDamage, which doubles as
// the trigger for area damage resolution alongside its visual.
type EffectPayload struct {
	Kind     EffectKind
	Instance uuid.UUID
	Position vmath.Vec3
	Radius   float64
	Points   []vmath.Vec3
	Damage   int
	Source   core.Entity // Excluded from splash resolution
}
