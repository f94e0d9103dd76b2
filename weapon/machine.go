package weapon

import (
	"time"

	"arcstorm/engine"
)

// AnimState is the charge-cycle state of one equipped weapon
type AnimState int

const (
	StateIdle AnimState = iota
	StateCharging
	StateCharged
	StateDischarging
	StateDecay
)

func (s AnimState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCharging:
		return "Charging"
	case StateCharged:
		return "Charged"
	case StateDischarging:
		return "Discharging"
	case StateDecay:
		return "Decay"
	default:
		return "Unknown"
	}
}

// Machine drives the charge cycle of a single weapon:
// Idle -> Charging -> Charged -> Discharging -> Decay -> Idle.
//
// Timed transitions run as scheduler tasks guarded by a generation token,
// so cancelling a cycle (reset, weapon switch, early fire) guarantees a
// stale task never fires into the new cycle. Invalid calls are silent
// no-ops: the input layer gates imperfectly and the machine stays
// defensive rather than erroring.
type Machine struct {
	sched *engine.Scheduler
	clock engine.Clock
	stats Stats

	state   AnimState
	since   time.Time // Entry time of the current state
	gen     uint64    // Invalidates scheduled transitions on cancel/reset
	pending *engine.Task

	// onDischarge fires on the Charged->Discharging edge; this is where
	// the arsenal spawns a projectile or resolves the chain
	onDischarge func()

	// onState observes every transition (HUD, audio cues); may be nil
	onState func(from, to AnimState)
}

// NewMachine creates an idle machine for one weapon's stats
func NewMachine(sched *engine.Scheduler, clock engine.Clock, stats Stats, onDischarge func()) *Machine {
	return &Machine{
		sched:       sched,
		clock:       clock,
		stats:       stats,
		state:       StateIdle,
		since:       clock.Now(),
		onDischarge: onDischarge,
	}
}

// SetStateObserver installs a transition observer
func (m *Machine) SetStateObserver(fn func(from, to AnimState)) {
	m.onState = fn
}

// State returns the current animation state
func (m *Machine) State() AnimState {
	return m.state
}

// StateElapsed returns time spent in the current state
func (m *Machine) StateElapsed() time.Duration {
	return m.clock.Now().Sub(m.since)
}

// Stats returns the immutable stats driving this machine
func (m *Machine) Stats() Stats {
	return m.stats
}

// StartCharging begins a charge cycle. Valid only from Idle; silent no-op
// otherwise. Charged holds indefinitely until Fire.
func (m *Machine) StartCharging() {
	if m.state != StateIdle {
		return
	}
	m.transition(StateCharging)
	m.scheduleTransition(m.stats.ChargeDuration, StateCharged)
}

// Fire discharges a charged weapon, or cancels an incomplete charge.
//
// From Charged: Discharging immediately (onDischarge runs on this edge),
// then timed Discharging->Decay->Idle. From Charging: the pending charge
// task is cancelled and the machine returns to Idle with no discharge.
// From any other state: silent no-op.
func (m *Machine) Fire() {
	switch m.state {
	case StateCharged:
		m.cancelPending()
		m.transition(StateDischarging)
		if m.onDischarge != nil {
			m.onDischarge()
		}
		m.scheduleTransition(m.stats.DischargePeakDuration, StateDecay)
	case StateCharging:
		// Early release cancels rather than discharges
		m.cancelPending()
		m.transition(StateIdle)
	default:
		// Idle, Discharging, Decay: input layer noise
	}
}

// ResetState cancels all pending transitions and forces Idle.
// Used on death, weapon switch and input-focus loss. Idempotent.
func (m *Machine) ResetState() {
	m.cancelPending()
	if m.state != StateIdle {
		m.transition(StateIdle)
	}
}

// scheduleTransition arms the single pending timed transition
func (m *Machine) scheduleTransition(d time.Duration, to AnimState) {
	gen := m.gen
	m.pending = m.sched.After(d, func() {
		if m.gen != gen {
			// Stale: the cycle was cancelled or restarted
			return
		}
		m.pending = nil
		m.advance(to)
	})
}

// advance applies a timed transition and chains the next one
func (m *Machine) advance(to AnimState) {
	m.transition(to)
	switch to {
	case StateDecay:
		m.scheduleTransition(m.stats.DecayDuration, StateIdle)
	case StateCharged:
		// Holds until Fire; no auto-decay from Charged
	}
}

// cancelPending invalidates any scheduled transition, by both cancelling
// the task and bumping the generation token
func (m *Machine) cancelPending() {
	m.gen++
	if m.pending != nil {
		m.pending.Cancel()
		m.pending = nil
	}
}

// transition swaps the state and notifies the observer
func (m *Machine) transition(to AnimState) {
	from := m.state
	if from == to {
		return
	}
	m.state = to
	m.since = m.clock.Now()
	if m.onState != nil {
		m.onState(from, to)
	}
}
