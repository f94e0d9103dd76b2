package event

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventWeaponFired signals a projectile leaving the staff
	// Trigger: Arsenal on Charged->Discharging for projectile weapons
	// Consumer: Director (projectile flight), renderer, audio | Payload: *WeaponFiredPayload
	EventWeaponFired EventType = iota

	// EventEnemyHit signals damage to a single enemy
	// Trigger: Damage resolver (splash/chain), projectile impact
	// Consumer: EnemyCoordinator | Payload: *EnemyHitPayload
	EventEnemyHit

	// EventEnemyDied signals removal of a dead enemy, fired exactly once per id
	// Trigger: EnemyCoordinator when health reaches zero
	// Consumer: Director (death explosion), renderer, audio | Payload: *EnemyDiedPayload
	EventEnemyDied

	// EventPlayerTookDamage signals incoming damage to the player
	// Trigger: Enemy contact attacks
	// Consumer: PlayerState | Payload: *PlayerDamagePayload
	EventPlayerTookDamage

	// EventPlayerAddShield signals a ward gesture granting shield
	// Trigger: Input layer (ward key)
	// Consumer: PlayerState | Payload: *ShieldPayload
	EventPlayerAddShield

	// EventIncreaseScore signals a score delta
	// Trigger: EnemyCoordinator on kill
	// Consumer: PlayerState, HUD | Payload: *ScorePayload
	EventIncreaseScore

	// EventEffectTriggered signals a transient visual effect
	// Trigger: Weapon fire logic, damage resolver, coordinator
	// Consumer: Renderer, audio; splash_damage variant also feeds the resolver host
	// Payload: *EffectPayload
	EventEffectTriggered
)

// String returns the name of the event type for debugging
func (e EventType) String() string {
	switch e {
	case EventWeaponFired:
		return "WeaponFired"
	case EventEnemyHit:
		return "EnemyHit"
	case EventEnemyDied:
		return "EnemyDied"
	case EventPlayerTookDamage:
		return "PlayerTookDamage"
	case EventPlayerAddShield:
		return "PlayerAddShield"
	case EventIncreaseScore:
		return "IncreaseScore"
	case EventEffectTriggered:
		return "EffectTriggered"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
