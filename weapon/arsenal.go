package weapon

import (
	"github.com/google/uuid"

	"arcstorm/combat"
	"arcstorm/constant"
	"arcstorm/engine"
	"arcstorm/event"
	"arcstorm/vmath"
)

// AimFunc supplies the current aim ray (camera collaborator)
type AimFunc func() (origin, dir vmath.Vec3)

// equipped pairs a schema with its live state machine
type equipped struct {
	schema  *Schema
	machine *Machine
}

// Arsenal owns the loaded weapons and the currently equipped one.
// Equipping is a pointer swap; each weapon keeps its own machine, and
// switching resets the outgoing weapon's cycle.
//
// The arsenal is the weapon-specific fire logic: when a machine reaches
// Discharging, the projectile variant publishes EventWeaponFired and the
// chain variant resolves lightning against the spatial world.
type Arsenal struct {
	bus   *event.Bus
	space combat.SpatialQuery
	aim   AimFunc

	weapons []equipped
	current int
}

// NewArsenal builds machines for all schemas and equips the first.
// Schemas must already be validated.
func NewArsenal(bus *event.Bus, sched *engine.Scheduler, clock engine.Clock, space combat.SpatialQuery, aim AimFunc, schemas []*Schema) *Arsenal {
	a := &Arsenal{
		bus:   bus,
		space: space,
		aim:   aim,
	}

	for _, s := range schemas {
		s := s
		m := NewMachine(sched, clock, s.Stats, func() {
			a.discharge(s)
		})
		a.weapons = append(a.weapons, equipped{schema: s, machine: m})
	}

	return a
}

// Current returns the equipped schema and its machine
func (a *Arsenal) Current() (*Schema, *Machine) {
	w := a.weapons[a.current]
	return w.schema, w.machine
}

// Equip switches to weapon i, resetting the outgoing cycle.
// Out-of-range indices are ignored.
func (a *Arsenal) Equip(i int) {
	if i < 0 || i >= len(a.weapons) || i == a.current {
		return
	}
	a.weapons[a.current].machine.ResetState()
	a.current = i
}

// Count returns the number of loaded weapons
func (a *Arsenal) Count() int {
	return len(a.weapons)
}

// StartCharging forwards to the equipped machine
func (a *Arsenal) StartCharging() {
	a.weapons[a.current].machine.StartCharging()
}

// Fire forwards to the equipped machine
func (a *Arsenal) Fire() {
	a.weapons[a.current].machine.Fire()
}

// ResetState forwards to the equipped machine
func (a *Arsenal) ResetState() {
	a.weapons[a.current].machine.ResetState()
}

// SetStateObserver installs a transition observer on every machine
// (HUD charge meter, charge-ready audio cue)
func (a *Arsenal) SetStateObserver(fn func(from, to AnimState)) {
	for _, w := range a.weapons {
		w.machine.SetStateObserver(fn)
	}
}

// discharge runs on the Charged->Discharging edge of a weapon's machine
func (a *Arsenal) discharge(s *Schema) {
	origin, dir := a.aim()

	a.bus.Dispatch(event.EventEffectTriggered, &event.EffectPayload{
		Kind:     event.EffectDischarge,
		Instance: uuid.New(),
		Position: origin,
	})

	switch s.Variant {
	case VariantProjectile:
		a.bus.Dispatch(event.EventWeaponFired, &event.WeaponFiredPayload{
			ID:       uuid.New(),
			Start:    origin,
			Velocity: vmath.Scale(vmath.Normalize(dir), s.Stats.Projectile.ProjectileSpeed),
			Visual:   s.Visual,
		})

	case VariantHitscanChain:
		c := s.Stats.Chain
		points := combat.ResolveChain(a.space, a.bus, origin, dir, constant.AimMaxDistance, combat.ChainParams{
			BaseDamage: s.Stats.Damage,
			MaxTargets: c.MaxChainTargets,
			Radius:     c.ChainRadius,
			Falloff:    c.DamageFalloff,
		})

		a.bus.Dispatch(event.EventEffectTriggered, &event.EffectPayload{
			Kind:     event.EffectArcLightning,
			Instance: uuid.New(),
			Position: origin,
			Points:   points,
		})
	}
}
