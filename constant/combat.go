package constant

import (
	"time"
)

// Weapons
const (
	// AimMaxDistance is the maximum range of the aim ray for hitscan weapons
	AimMaxDistance = 60.0
)

// Score
const (
	// ScoreKillReward is the fixed score granted per enemy kill
	ScoreKillReward = 100
)

// Player
const (
	// PlayerInitialMaxHealth is the player starting and maximum health
	PlayerInitialMaxHealth = 100

	// PlayerWardShield is the shield amount granted by the ward gesture
	PlayerWardShield = 50
)

// Enemies
const (
	// EnemyInitialHP is the rock monster starting hit points
	EnemyInitialHP = 30

	// EnemyHitRadius is the body sphere radius used by spatial queries
	EnemyHitRadius = 0.9

	// EnemyContactRange is the distance at which an enemy can strike the player
	EnemyContactRange = 2.0

	// EnemyContactDamage is damage per contact strike
	EnemyContactDamage = 10

	// EnemyAttackCooldown is the minimum interval between strikes by one enemy
	EnemyAttackCooldown = 1200 * time.Millisecond

	// EnemyDeathSplashDamage is splash damage from a death explosion
	EnemyDeathSplashDamage = 8

	// EnemyDeathSplashRadius is the death explosion radius
	EnemyDeathSplashRadius = 3.0
)
