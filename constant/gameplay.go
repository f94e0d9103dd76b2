package constant

import (
	"time"
)

// GameTickInterval is the fixed logic tick driving scheduler and director
const GameTickInterval = 33 * time.Millisecond

// Arena
const (
	// ArenaRadius bounds enemy movement on the ground plane
	ArenaRadius = 40.0

	// SpawnRingRadius is the distance from the player at which waves appear
	SpawnRingRadius = 30.0
)

// Waves
const (
	// WaveBaseCount is the enemy count of the first wave
	WaveBaseCount = 4

	// WaveCountStep is added to the enemy count each wave
	WaveCountStep = 2

	// WaveBreak is the pause between clearing a wave and the next spawn
	WaveBreak = 3 * time.Second

	// EnemyBaseSpeed is enemy advance speed in units/sec for wave 1
	EnemyBaseSpeed = 2.0

	// EnemySpeedStep is added to advance speed each wave
	EnemySpeedStep = 0.25
)
