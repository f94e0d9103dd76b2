package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"arcstorm/combat"
	"arcstorm/config"
	"arcstorm/core"
	"arcstorm/engine"
	"arcstorm/event"
	"arcstorm/vmath"
	"arcstorm/weapon"
)

// PlayerEye is the fixed player position; enemies advance toward it and
// all weapon rays originate from it
var PlayerEye = vmath.Vec3{X: 0, Y: 1.0, Z: 0}

// projectile is one in-flight staff bolt
type projectile struct {
	id       uuid.UUID
	pos      vmath.Vec3
	vel      vmath.Vec3
	damage   int
	splash   float64
	splashDm int
	traveled float64
}

// Director runs the peripheral combat loop around the core: wave
// spawning, enemy advance and contact attacks, projectile flight and
// impact resolution, and death explosions.
//
// Generation policy lives here, not in the coordinator: the director
// decides when and where enemies appear and merely calls AddEnemy.
type Director struct {
	bus     *event.Bus
	sched   *engine.Scheduler
	enemies *combat.Coordinator
	player  *combat.PlayerState
	space   combat.SpatialQuery
	cfg     *config.Config
	rng     *rand.Rand

	arsenal     *weapon.Arsenal
	wave        int
	waveSpeed   float64
	projectiles []*projectile
	lastAttack  map[core.Entity]time.Time
	breakTask   *engine.Task
	clock       engine.Clock
}

// NewDirector wires the director into the bus and arms the first wave
func NewDirector(bus *event.Bus, sched *engine.Scheduler, clock engine.Clock, enemies *combat.Coordinator, player *combat.PlayerState, space combat.SpatialQuery, cfg *config.Config, seed int64) *Director {
	d := &Director{
		bus:        bus,
		sched:      sched,
		clock:      clock,
		enemies:    enemies,
		player:     player,
		space:      space,
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		lastAttack: make(map[core.Entity]time.Time),
	}
	bus.Register(d)
	d.scheduleNextWave(0)
	return d
}

// EventTypes declares the bus subscriptions
func (d *Director) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventWeaponFired,
		event.EventEnemyDied,
		event.EventEffectTriggered,
	}
}

// HandleEvent tracks fired projectiles, detonates death explosions, and
// resolves the damage half of splash effects
func (d *Director) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventWeaponFired:
		if p, ok := ev.Payload.(*event.WeaponFiredPayload); ok {
			d.spawnProjectile(p)
		}
	case event.EventEnemyDied:
		if p, ok := ev.Payload.(*event.EnemyDiedPayload); ok {
			d.onEnemyDied(p)
		}
	case event.EventEffectTriggered:
		if p, ok := ev.Payload.(*event.EffectPayload); ok && p.Kind == event.EffectSplashDamage {
			combat.ResolveSplash(d.space, d.bus, p.Position, p.Radius, p.Damage, p.Source)
		}
	}
}

// SetArsenal hands the director the arsenal it reads fire stats from.
// Called once during assembly; the arsenal needs the director's AimRay
// first, so this cannot happen in the constructor.
func (d *Director) SetArsenal(a *weapon.Arsenal) {
	d.arsenal = a
}

// Wave returns the current wave number (0 before the first spawn)
func (d *Director) Wave() int {
	return d.wave
}

// AimRay is the camera stand-in: a ray from the player eye toward the
// nearest enemy, falling forward along +Z when the arena is empty
func (d *Director) AimRay() (vmath.Vec3, vmath.Vec3) {
	var nearest combat.Enemy
	nearestDistSq := math.Inf(1)
	found := false

	d.enemies.Each(func(e combat.Enemy) {
		distSq := vmath.DistSq(PlayerEye, e.Position)
		if distSq < nearestDistSq {
			nearest = e
			nearestDistSq = distSq
			found = true
		}
	})

	if !found {
		return PlayerEye, vmath.Vec3{X: 0, Y: 0, Z: 1}
	}
	return PlayerEye, vmath.Normalize(vmath.Sub(nearest.Position, PlayerEye))
}

// Update advances projectiles, enemies and wave logic by dt
func (d *Director) Update(dt time.Duration) {
	if d.player.IsDead() {
		return
	}

	d.updateProjectiles(dt)
	d.updateEnemies(dt)

	// Wave cleared: schedule the next one exactly once
	if d.wave > 0 && d.enemies.Count() == 0 && d.breakTask == nil {
		d.scheduleNextWave(time.Duration(d.cfg.Waves.BreakMs) * time.Millisecond)
	}
}

// Reset clears transient state and restarts from wave 1.
// Enemy ids keep increasing; the session id space is never reused.
func (d *Director) Reset() {
	d.enemies.Reset()
	d.projectiles = d.projectiles[:0]
	d.lastAttack = make(map[core.Entity]time.Time)
	d.wave = 0
	if d.breakTask != nil {
		d.breakTask.Cancel()
		d.breakTask = nil
	}
	d.scheduleNextWave(0)
}

// scheduleNextWave arms the spawn of wave+1 after the given break
func (d *Director) scheduleNextWave(after time.Duration) {
	d.breakTask = d.sched.After(after, func() {
		d.breakTask = nil
		d.spawnWave()
	})
}

// spawnWave places the next wave on the spawn ring at random bearings
func (d *Director) spawnWave() {
	d.wave++
	count := d.cfg.Waves.BaseCount + d.cfg.Waves.CountStep*(d.wave-1)
	d.waveSpeed = d.cfg.Waves.BaseSpeed + d.cfg.Waves.SpeedStep*float64(d.wave-1)

	for i := 0; i < count; i++ {
		angle := d.rng.Float64() * 2 * math.Pi
		pos := vmath.Vec3{
			X: math.Cos(angle) * d.cfg.Waves.SpawnRadius,
			Y: d.cfg.Enemies.HitRadius,
			Z: math.Sin(angle) * d.cfg.Waves.SpawnRadius,
		}
		d.enemies.AddEnemy(pos, d.cfg.Enemies.MaxHealth)
	}
}

// spawnProjectile starts tracking a bolt published by the arsenal.
// Dispatch is synchronous, so the equipped weapon is still the one that
// fired; its schema supplies impact damage and splash numbers.
func (d *Director) spawnProjectile(p *event.WeaponFiredPayload) {
	proj := &projectile{
		id:  p.ID,
		pos: p.Start,
		vel: p.Velocity,
	}

	if d.arsenal != nil {
		if s, _ := d.arsenal.Current(); s.Variant == weapon.VariantProjectile {
			proj.damage = s.Stats.Damage
			proj.splash = s.Stats.Projectile.SplashRadius
			proj.splashDm = s.Stats.Projectile.SplashDamage
		}
	}

	d.projectiles = append(d.projectiles, proj)
}

// updateProjectiles advances bolts and resolves impacts
func (d *Director) updateProjectiles(dt time.Duration) {
	live := d.projectiles[:0]

	for _, proj := range d.projectiles {
		step := vmath.Scale(proj.vel, dt.Seconds())
		stepLen := vmath.Mag(step)

		if body, hit := d.space.CastRay(proj.pos, proj.vel, stepLen); hit {
			d.impact(proj, body)
			continue
		}

		proj.pos = vmath.Add(proj.pos, step)
		proj.traveled += stepLen
		if proj.traveled <= d.cfg.Game.ArenaRadius*2 {
			live = append(live, proj)
		}
	}

	d.projectiles = live
}

// impact applies the direct hit, then splash around the impact point
// excluding the struck enemy so it is not hit twice
func (d *Director) impact(proj *projectile, body combat.Body) {
	d.bus.Dispatch(event.EventEnemyHit, &event.EnemyHitPayload{
		ID:       body.ID,
		Damage:   proj.damage,
		Position: body.Position,
	})

	// The splash effect carries its own damage numbers; resolution runs in
	// the effect handler so rendering and damage share one trigger
	if proj.splash > 0 && proj.splashDm > 0 {
		d.bus.Dispatch(event.EventEffectTriggered, &event.EffectPayload{
			Kind:     event.EffectSplashDamage,
			Instance: uuid.New(),
			Position: body.Position,
			Radius:   proj.splash,
			Damage:   proj.splashDm,
			Source:   body.ID,
		})
	}

	d.bus.Dispatch(event.EventEffectTriggered, &event.EffectPayload{
		Kind:     event.EffectExplosion,
		Instance: uuid.New(),
		Position: body.Position,
		Radius:   proj.splash,
	})
}

// updateEnemies advances enemies toward the player and runs contact attacks
func (d *Director) updateEnemies(dt time.Duration) {
	now := d.clock.Now()
	cooldown := time.Duration(d.cfg.Enemies.AttackCooldownMs) * time.Millisecond

	d.enemies.Each(func(e combat.Enemy) {
		toPlayer := vmath.Sub(PlayerEye, e.Position)
		dist := vmath.Mag(toPlayer)

		if dist > d.cfg.Enemies.ContactRange {
			step := vmath.Scale(vmath.Normalize(toPlayer), d.waveSpeed*dt.Seconds())
			d.enemies.SetPosition(e.ID, vmath.Add(e.Position, step))
			return
		}

		if last, ok := d.lastAttack[e.ID]; ok && now.Sub(last) < cooldown {
			return
		}
		d.lastAttack[e.ID] = now
		d.bus.Dispatch(event.EventPlayerTookDamage, &event.PlayerDamagePayload{
			Amount: d.cfg.Enemies.ContactDamage,
		})
	})
}

// onEnemyDied detonates the death explosion. The dead enemy's own id is
// excluded so the corpse cannot re-enter the damage pass.
func (d *Director) onEnemyDied(p *event.EnemyDiedPayload) {
	delete(d.lastAttack, p.ID)

	d.bus.Dispatch(event.EventEffectTriggered, &event.EffectPayload{
		Kind:     event.EffectEnemyDeath,
		Instance: uuid.New(),
		Position: p.Position,
		Radius:   d.cfg.Enemies.DeathSplashRadius,
	})

	if d.cfg.Enemies.DeathSplashDamage > 0 {
		d.bus.Dispatch(event.EventEffectTriggered, &event.EffectPayload{
			Kind:     event.EffectSplashDamage,
			Instance: uuid.New(),
			Position: p.Position,
			Radius:   d.cfg.Enemies.DeathSplashRadius,
			Damage:   d.cfg.Enemies.DeathSplashDamage,
			Source:   p.ID,
		})
	}
}

// Projectiles visits in-flight bolts for rendering
func (d *Director) Projectiles(fn func(id uuid.UUID, pos vmath.Vec3)) {
	for _, p := range d.projectiles {
		fn(p.id, p.pos)
	}
}
