package combat

import (
	"arcstorm/event"
)

// PlayerState owns health, shield and score. All mutation flows through
// the event contracts; no other component touches these fields.
//
// Death is a one-way latch: once health reaches zero, damage and shield
// events are no-ops until an explicit Reset.
type PlayerState struct {
	health    int
	maxHealth int
	shield    int
	maxShield int
	score     int
	dead      bool
}

// NewPlayerState creates a live player at full health, subscribed to
// damage, shield and score events
func NewPlayerState(bus *event.Bus, maxHealth int) *PlayerState {
	p := &PlayerState{
		health:    maxHealth,
		maxHealth: maxHealth,
	}
	bus.Register(p)
	return p
}

// EventTypes declares the bus subscriptions
func (p *PlayerState) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventPlayerTookDamage,
		event.EventPlayerAddShield,
		event.EventIncreaseScore,
	}
}

// HandleEvent routes player events to their mutations
func (p *PlayerState) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventPlayerTookDamage:
		if d, ok := ev.Payload.(*event.PlayerDamagePayload); ok {
			p.TakeDamage(d.Amount)
		}
	case event.EventPlayerAddShield:
		if s, ok := ev.Payload.(*event.ShieldPayload); ok {
			p.AddShield(s.Amount)
		}
	case event.EventIncreaseScore:
		if s, ok := ev.Payload.(*event.ScorePayload); ok {
			p.IncreaseScore(s.Amount)
		}
	}
}

// TakeDamage applies damage with shield absorption: shield floors at 0,
// the remainder spills to health, health floors at 0 and latches death
func (p *PlayerState) TakeDamage(amount int) {
	if p.dead || amount <= 0 {
		return
	}

	if p.shield > 0 {
		absorbed := amount
		if absorbed > p.shield {
			absorbed = p.shield
		}
		p.shield -= absorbed
		amount -= absorbed
	}

	p.health -= amount
	if p.health <= 0 {
		p.health = 0
		p.dead = true
	}
}

// AddShield sets the shield to the given amount, raising MaxShield if it
// was lower. The ward replaces rather than stacks; recasting early wastes
// the remainder. No-op when dead.
func (p *PlayerState) AddShield(amount int) {
	if p.dead || amount < 0 {
		return
	}
	p.shield = amount
	if p.maxShield < amount {
		p.maxShield = amount
	}
}

// IncreaseScore adds to the score, applied regardless of death state
func (p *PlayerState) IncreaseScore(amount int) {
	p.score += amount
}

// Reset restores full health, zero shield, zero score and clears the latch
func (p *PlayerState) Reset() {
	p.health = p.maxHealth
	p.shield = 0
	p.score = 0
	p.dead = false
}

func (p *PlayerState) Health() int    { return p.health }
func (p *PlayerState) MaxHealth() int { return p.maxHealth }
func (p *PlayerState) Shield() int    { return p.shield }
func (p *PlayerState) MaxShield() int { return p.maxShield }
func (p *PlayerState) Score() int     { return p.score }
func (p *PlayerState) IsDead() bool   { return p.dead }
