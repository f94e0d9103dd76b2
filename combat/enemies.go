package combat

import (
	"arcstorm/constant"
	"arcstorm/core"
	"arcstorm/event"
	"arcstorm/vmath"
)

// Enemy is one live rock monster. Created with Health == MaxHealth;
// mutated only by the Coordinator in response to hits.
type Enemy struct {
	ID        core.Entity
	Position  vmath.Vec3
	Health    int
	MaxHealth int
}

// Coordinator owns the live enemy collection. It is the sole mutator:
// damage arrives via EventEnemyHit, movement goes through SetPosition,
// and spawning policy stays with the caller (the director) via AddEnemy.
//
// Because dispatch is synchronous, two hits for the same id within one
// fan-out are handled strictly in dispatch order; a hit for an id that
// already died in the same fan-out is an expected no-op.
type Coordinator struct {
	bus     *event.Bus
	enemies map[core.Entity]*Enemy
	order   []core.Entity // Stable iteration order (spawn order)
	nextID  core.Entity
}

// NewCoordinator creates a coordinator subscribed to enemy-hit events
func NewCoordinator(bus *event.Bus) *Coordinator {
	c := &Coordinator{
		bus:     bus,
		enemies: make(map[core.Entity]*Enemy),
	}
	bus.Register(c)
	return c
}

// EventTypes declares the bus subscriptions
func (c *Coordinator) EventTypes() []event.EventType {
	return []event.EventType{event.EventEnemyHit}
}

// HandleEvent applies damage events to the owned collection
func (c *Coordinator) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventEnemyHit {
		return
	}
	if p, ok := ev.Payload.(*event.EnemyHitPayload); ok {
		c.onEnemyHit(p)
	}
}

// AddEnemy inserts a new enemy at full health and returns its id.
// Ids increase monotonically and are never reused within a session.
func (c *Coordinator) AddEnemy(pos vmath.Vec3, maxHealth int) core.Entity {
	c.nextID++
	id := c.nextID
	c.enemies[id] = &Enemy{
		ID:        id,
		Position:  pos,
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}
	c.order = append(c.order, id)
	return id
}

// onEnemyHit subtracts damage; at zero or below the enemy is removed,
// exactly one EventEnemyDied fires, then the fixed kill reward.
// A hit for a missing id (already dead this fan-out) is a no-op.
func (c *Coordinator) onEnemyHit(p *event.EnemyHitPayload) {
	enemy, ok := c.enemies[p.ID]
	if !ok {
		return
	}

	enemy.Health -= p.Damage
	if enemy.Health > 0 {
		return
	}

	// Clamp happens at removal time; while alive the stored value is the
	// raw post-subtraction health
	pos := enemy.Position
	c.remove(p.ID)

	c.bus.Dispatch(event.EventEnemyDied, &event.EnemyDiedPayload{
		ID:       p.ID,
		Position: pos,
	})
	c.bus.Dispatch(event.EventIncreaseScore, &event.ScorePayload{
		Amount: constant.ScoreKillReward,
	})
}

// remove deletes an enemy from the collection and the iteration order
func (c *Coordinator) remove(id core.Entity) {
	delete(c.enemies, id)
	for i, e := range c.order {
		if e == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Enemy returns a copy of the enemy with the given id
func (c *Coordinator) Enemy(id core.Entity) (Enemy, bool) {
	e, ok := c.enemies[id]
	if !ok {
		return Enemy{}, false
	}
	return *e, true
}

// SetPosition moves an enemy. No-op for missing ids.
func (c *Coordinator) SetPosition(id core.Entity, pos vmath.Vec3) {
	if e, ok := c.enemies[id]; ok {
		e.Position = pos
	}
}

// Each visits every live enemy in spawn order
func (c *Coordinator) Each(fn func(e Enemy)) {
	for _, id := range c.order {
		if e, ok := c.enemies[id]; ok {
			fn(*e)
		}
	}
}

// Count returns the number of live enemies
func (c *Coordinator) Count() int {
	return len(c.enemies)
}

// Reset clears the collection for a new game. The id counter is kept so
// ids are never reused within a session.
func (c *Coordinator) Reset() {
	c.enemies = make(map[core.Entity]*Enemy)
	c.order = c.order[:0]
}
