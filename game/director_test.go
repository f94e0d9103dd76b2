package game

import (
	"testing"
	"time"

	"arcstorm/combat"
	"arcstorm/config"
	"arcstorm/engine"
	"arcstorm/event"
	"arcstorm/vmath"
	"arcstorm/weapon"
	"arcstorm/world"
)

type directorFixture struct {
	bus      *event.Bus
	clock    *engine.MockClock
	sched    *engine.Scheduler
	enemies  *combat.Coordinator
	player   *combat.PlayerState
	arena    *world.Arena
	director *Director
	arsenal  *weapon.Arsenal
	cfg      *config.Config
}

func newDirectorFixture(t *testing.T) *directorFixture {
	t.Helper()

	cfg := config.Default()
	clock := engine.NewMockClock(time.Unix(0, 0))
	sched := engine.NewScheduler(clock)
	bus := event.NewBus()

	enemies := combat.NewCoordinator(bus)
	player := combat.NewPlayerState(bus, cfg.Player.MaxHealth)
	arena := world.NewArena(enemies, cfg.Enemies.HitRadius)
	director := NewDirector(bus, sched, clock, enemies, player, arena, cfg, 1)

	schemas, err := cfg.Schemas()
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	arsenal := weapon.NewArsenal(bus, sched, clock, arena, director.AimRay, schemas)
	director.SetArsenal(arsenal)

	return &directorFixture{
		bus:      bus,
		clock:    clock,
		sched:    sched,
		enemies:  enemies,
		player:   player,
		arena:    arena,
		director: director,
		arsenal:  arsenal,
		cfg:      cfg,
	}
}

// tick advances one frame: clock, due tasks, then the director
func (f *directorFixture) tick() {
	dt := f.cfg.TickInterval()
	f.clock.Advance(dt)
	f.sched.Advance()
	f.director.Update(dt)
}

// killAll removes every live enemy through the normal damage path
func (f *directorFixture) killAll() {
	var ids []combat.Enemy
	f.enemies.Each(func(e combat.Enemy) { ids = append(ids, e) })
	for _, e := range ids {
		f.bus.Dispatch(event.EventEnemyHit, &event.EnemyHitPayload{
			ID:       e.ID,
			Damage:   e.Health + 1000,
			Position: e.Position,
		})
	}
}

// TestFirstWaveSpawns tests the initial spawn count and placement ring
func TestFirstWaveSpawns(t *testing.T) {
	f := newDirectorFixture(t)

	f.tick()

	if got := f.enemies.Count(); got != f.cfg.Waves.BaseCount {
		t.Fatalf("expected %d enemies in wave 1, got %d", f.cfg.Waves.BaseCount, got)
	}
	if f.director.Wave() != 1 {
		t.Errorf("expected wave 1, got %d", f.director.Wave())
	}

	f.enemies.Each(func(e combat.Enemy) {
		dist := vmath.Dist(vmath.Vec3{X: e.Position.X, Z: e.Position.Z}, vmath.Vec3{})
		if dist < f.cfg.Waves.SpawnRadius-0.01 || dist > f.cfg.Waves.SpawnRadius+0.01 {
			t.Errorf("enemy %d spawned off the ring at distance %f", e.ID, dist)
		}
	})
}

// TestWaveProgression tests the break timer and the growing wave size
func TestWaveProgression(t *testing.T) {
	f := newDirectorFixture(t)

	f.tick() // wave 1 spawns
	f.killAll()
	f.tick() // clear detected, break scheduled
	f.tick() // break not elapsed yet

	if f.enemies.Count() != 0 {
		t.Fatalf("wave 2 spawned before the break elapsed")
	}

	f.clock.Advance(time.Duration(f.cfg.Waves.BreakMs) * time.Millisecond)
	f.tick()

	want := f.cfg.Waves.BaseCount + f.cfg.Waves.CountStep
	if got := f.enemies.Count(); got != want {
		t.Errorf("expected %d enemies in wave 2, got %d", want, got)
	}
	if f.director.Wave() != 2 {
		t.Errorf("expected wave 2, got %d", f.director.Wave())
	}
}

// TestEnemiesAdvanceTowardPlayer tests per-tick movement
func TestEnemiesAdvanceTowardPlayer(t *testing.T) {
	f := newDirectorFixture(t)
	f.tick()

	var before []float64
	f.enemies.Each(func(e combat.Enemy) {
		before = append(before, vmath.Dist(e.Position, PlayerEye))
	})

	f.tick()

	i := 0
	f.enemies.Each(func(e combat.Enemy) {
		after := vmath.Dist(e.Position, PlayerEye)
		if after >= before[i] {
			t.Errorf("enemy %d did not advance: %f -> %f", e.ID, before[i], after)
		}
		i++
	})
}

// TestContactAttackCooldown tests contact damage and its per-enemy cooldown
func TestContactAttackCooldown(t *testing.T) {
	f := newDirectorFixture(t)

	// A single hand-placed enemy already in contact range; the scheduled
	// first wave never fires because killAll clears it on spawn tick
	f.tick()
	f.killAll()
	id := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 1.5}, f.cfg.Enemies.MaxHealth)

	f.director.Update(f.cfg.TickInterval())
	want := f.cfg.Player.MaxHealth - f.cfg.Enemies.ContactDamage
	if got := f.player.Health(); got != want {
		t.Fatalf("expected %d health after contact attack, got %d", want, got)
	}

	// Within cooldown: no second attack
	f.director.Update(f.cfg.TickInterval())
	if got := f.player.Health(); got != want {
		t.Errorf("attack fired within cooldown: health %d", got)
	}

	// After cooldown: attacks again
	f.clock.Advance(time.Duration(f.cfg.Enemies.AttackCooldownMs) * time.Millisecond)
	f.director.Update(f.cfg.TickInterval())
	want -= f.cfg.Enemies.ContactDamage
	if got := f.player.Health(); got != want {
		t.Errorf("expected %d health after cooldown attack, got %d", want, got)
	}

	if _, ok := f.enemies.Enemy(id); !ok {
		t.Error("contact enemy vanished")
	}
}

// TestProjectileImpact tests flight, the direct hit and splash around it
func TestProjectileImpact(t *testing.T) {
	f := newDirectorFixture(t)

	// No waves: keep the arena hand-placed
	f.tick()
	f.killAll()
	f.director.Update(f.cfg.TickInterval())

	target := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 5}, 30)
	// In splash range (4.2 < 4.0 + hit radius) but outside the death
	// explosion's reach
	bystander := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 9.2}, 30)

	f.bus.Dispatch(event.EventWeaponFired, &event.WeaponFiredPayload{
		Start:    PlayerEye,
		Velocity: vmath.Vec3{Z: 30},
	})

	for i := 0; i < 20 && f.enemies.Count() == 2; i++ {
		f.director.Update(f.cfg.TickInterval())
	}

	// Ember staff: 40 direct kills the 30hp target
	if _, ok := f.enemies.Enemy(target); ok {
		t.Fatal("direct-hit target survived")
	}

	// Bystander takes the 25 splash, no double hit
	b, ok := f.enemies.Enemy(bystander)
	if !ok {
		t.Fatal("bystander died")
	}
	if b.Health != 5 {
		t.Errorf("expected bystander at 5 health (30 - 25 splash), got %d", b.Health)
	}
}

// TestDeathExplosionDamagesNeighbors tests the corpse splash with the dead
// enemy excluded
func TestDeathExplosionDamagesNeighbors(t *testing.T) {
	f := newDirectorFixture(t)

	f.tick()
	f.killAll()
	f.director.Update(f.cfg.TickInterval())

	victim := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 10}, 30)
	// Within the 3.0 + hit radius death splash reach
	neighbor := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 12}, 30)

	f.bus.Dispatch(event.EventEnemyHit, &event.EnemyHitPayload{
		ID:       victim,
		Damage:   1000,
		Position: vmath.Vec3{X: 0, Y: 1, Z: 10},
	})

	n, ok := f.enemies.Enemy(neighbor)
	if !ok {
		t.Fatal("neighbor died from an 8 damage splash")
	}
	want := 30 - f.cfg.Enemies.DeathSplashDamage
	if n.Health != want {
		t.Errorf("expected neighbor at %d health, got %d", want, n.Health)
	}
}

// TestAimRay tests the nearest-enemy aim with its empty-arena fallback
func TestAimRay(t *testing.T) {
	f := newDirectorFixture(t)

	origin, dir := f.director.AimRay()
	if origin != PlayerEye {
		t.Errorf("expected origin at player eye, got %v", origin)
	}
	if dir != (vmath.Vec3{Z: 1}) {
		t.Errorf("expected +Z fallback with empty arena, got %v", dir)
	}

	f.enemies.AddEnemy(vmath.Vec3{X: 10, Y: 1, Z: 0}, 30)
	near := f.enemies.AddEnemy(vmath.Vec3{X: 3, Y: 1, Z: 0}, 30)

	_, dir = f.director.AimRay()
	if dir.X <= 0.99 {
		t.Errorf("expected aim at nearest enemy %d along +X, got %v", near, dir)
	}
}

// TestUpdateFrozenWhenDead tests that a dead player stops the simulation
func TestUpdateFrozenWhenDead(t *testing.T) {
	f := newDirectorFixture(t)
	f.tick()

	f.bus.Dispatch(event.EventPlayerTookDamage, &event.PlayerDamagePayload{Amount: 1000})

	var before []vmath.Vec3
	f.enemies.Each(func(e combat.Enemy) { before = append(before, e.Position) })

	f.tick()

	i := 0
	f.enemies.Each(func(e combat.Enemy) {
		if e.Position != before[i] {
			t.Errorf("enemy %d moved while player dead", e.ID)
		}
		i++
	})
}

// TestResetStartsNewRun tests the full restart path
func TestResetStartsNewRun(t *testing.T) {
	f := newDirectorFixture(t)

	f.tick()
	f.killAll()
	f.tick()

	f.director.Reset()
	if f.director.Wave() != 0 {
		t.Errorf("expected wave 0 after reset, got %d", f.director.Wave())
	}

	f.tick()
	if got := f.enemies.Count(); got != f.cfg.Waves.BaseCount {
		t.Errorf("expected fresh wave 1 of %d after reset, got %d", f.cfg.Waves.BaseCount, got)
	}
	if f.director.Wave() != 1 {
		t.Errorf("expected wave 1 after reset, got %d", f.director.Wave())
	}
}

// TestChainDischargeThroughArsenal tests the full charged-fire path of the
// storm staff against live enemies
func TestChainDischargeThroughArsenal(t *testing.T) {
	f := newDirectorFixture(t)

	f.tick()
	f.killAll()
	f.director.Update(f.cfg.TickInterval())

	// Three enemies in a line along +Z, tight enough to chain
	a := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 10}, 100)
	b := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 13}, 100)
	c := f.enemies.AddEnemy(vmath.Vec3{X: 0, Y: 1, Z: 16}, 100)

	f.arsenal.Equip(1) // storm staff
	f.arsenal.StartCharging()
	f.clock.Advance(2 * time.Second)
	f.sched.Advance()
	f.arsenal.Fire()

	ea, _ := f.enemies.Enemy(a)
	eb, _ := f.enemies.Enemy(b)
	ec, _ := f.enemies.Enemy(c)

	if ea.Health != 100-35 {
		t.Errorf("first target: expected %d health, got %d", 100-35, ea.Health)
	}
	if eb.Health != 100-23 {
		t.Errorf("second target: expected %d health, got %d", 100-23, eb.Health)
	}
	if ec.Health != 100-15 {
		t.Errorf("third target: expected %d health, got %d", 100-15, ec.Health)
	}
}
