package combat

import (
	"testing"

	"arcstorm/event"
)

func damagePlayer(bus *event.Bus, amount int) {
	bus.Dispatch(event.EventPlayerTookDamage, &event.PlayerDamagePayload{Amount: amount})
}

func wardPlayer(bus *event.Bus, amount int) {
	bus.Dispatch(event.EventPlayerAddShield, &event.ShieldPayload{Amount: amount})
}

// TestShieldAbsorbsThenSpills tests the canonical absorption case:
// 100 health / 20 shield taking 30 leaves 90 health / 0 shield
func TestShieldAbsorbsThenSpills(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	wardPlayer(bus, 20)
	damagePlayer(bus, 30)

	if p.Health() != 90 {
		t.Errorf("expected 90 health, got %d", p.Health())
	}
	if p.Shield() != 0 {
		t.Errorf("expected 0 shield, got %d", p.Shield())
	}
	if p.IsDead() {
		t.Error("player died at 90 health")
	}
}

// TestShieldFullyAbsorbs tests damage smaller than the shield
func TestShieldFullyAbsorbs(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	wardPlayer(bus, 50)
	damagePlayer(bus, 30)

	if p.Health() != 100 {
		t.Errorf("expected untouched health, got %d", p.Health())
	}
	if p.Shield() != 20 {
		t.Errorf("expected 20 shield, got %d", p.Shield())
	}
}

// TestShieldReplacesNotStacks tests the ward recast policy
func TestShieldReplacesNotStacks(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	wardPlayer(bus, 50)
	damagePlayer(bus, 10)
	wardPlayer(bus, 50) // recast: back to 50, not 90

	if p.Shield() != 50 {
		t.Errorf("expected recast shield of 50, got %d", p.Shield())
	}
	if p.MaxShield() != 50 {
		t.Errorf("expected max shield 50, got %d", p.MaxShield())
	}
}

// TestDeathLatch tests the one-way latch on lethal damage
func TestDeathLatch(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	damagePlayer(bus, 150)

	if !p.IsDead() {
		t.Fatal("player not dead after lethal damage")
	}
	if p.Health() != 0 {
		t.Errorf("expected health floored at 0, got %d", p.Health())
	}

	// Post-death events are no-ops until Reset
	damagePlayer(bus, 10)
	wardPlayer(bus, 50)
	if p.Health() != 0 || p.Shield() != 0 {
		t.Errorf("dead player mutated: health %d shield %d", p.Health(), p.Shield())
	}
}

// TestScoreAppliesWhenDead tests that kill credit still lands post-death
// (a death explosion can finish off enemies after the player drops)
func TestScoreAppliesWhenDead(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	damagePlayer(bus, 100)
	bus.Dispatch(event.EventIncreaseScore, &event.ScorePayload{Amount: 100})

	if p.Score() != 100 {
		t.Errorf("expected score 100 after death, got %d", p.Score())
	}
}

// TestExactLethalDamage tests the health == 0 boundary
func TestExactLethalDamage(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	damagePlayer(bus, 100)

	if !p.IsDead() {
		t.Error("exactly lethal damage did not latch death")
	}
}

// TestNonPositiveDamageIgnored tests the zero/negative damage guard
func TestNonPositiveDamageIgnored(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	damagePlayer(bus, 0)
	damagePlayer(bus, -5)

	if p.Health() != 100 {
		t.Errorf("expected untouched health, got %d", p.Health())
	}
}

// TestReset tests the full restore
func TestReset(t *testing.T) {
	bus := event.NewBus()
	p := NewPlayerState(bus, 100)

	wardPlayer(bus, 50)
	damagePlayer(bus, 200)
	bus.Dispatch(event.EventIncreaseScore, &event.ScorePayload{Amount: 300})

	p.Reset()

	if p.Health() != 100 || p.Shield() != 0 || p.Score() != 0 || p.IsDead() {
		t.Errorf("reset incomplete: health %d shield %d score %d dead %v",
			p.Health(), p.Shield(), p.Score(), p.IsDead())
	}

	// Alive again: damage applies normally
	damagePlayer(bus, 10)
	if p.Health() != 90 {
		t.Errorf("expected 90 health after post-reset damage, got %d", p.Health())
	}
}
