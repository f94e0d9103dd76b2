package engine

import (
	"testing"
	"time"
)

func newTestScheduler() (*Scheduler, *MockClock) {
	clock := NewMockClock(time.Unix(0, 0))
	return NewScheduler(clock), clock
}

// TestTaskFiresAtDeadline tests that tasks fire once the clock reaches them
func TestTaskFiresAtDeadline(t *testing.T) {
	sched, clock := newTestScheduler()

	fired := 0
	sched.After(100*time.Millisecond, func() { fired++ })

	sched.Advance()
	if fired != 0 {
		t.Error("task fired before its deadline")
	}

	clock.Advance(99 * time.Millisecond)
	sched.Advance()
	if fired != 0 {
		t.Error("task fired 1ms early")
	}

	clock.Advance(1 * time.Millisecond)
	sched.Advance()
	if fired != 1 {
		t.Errorf("expected 1 firing at deadline, got %d", fired)
	}

	// Fired tasks never repeat
	clock.Advance(time.Second)
	sched.Advance()
	if fired != 1 {
		t.Errorf("task fired again, total %d", fired)
	}
}

// TestCancelPreventsFiring tests that a cancelled task never runs
func TestCancelPreventsFiring(t *testing.T) {
	sched, clock := newTestScheduler()

	fired := false
	task := sched.After(50*time.Millisecond, func() { fired = true })
	task.Cancel()

	clock.Advance(time.Second)
	sched.Advance()

	if fired {
		t.Error("cancelled task fired")
	}
	if !task.Done() {
		t.Error("cancelled task not reported done")
	}
}

// TestCancelIdempotent tests repeated and post-fire cancellation
func TestCancelIdempotent(t *testing.T) {
	sched, clock := newTestScheduler()

	fired := 0
	task := sched.After(10*time.Millisecond, func() { fired++ })

	clock.Advance(20 * time.Millisecond)
	sched.Advance()

	task.Cancel()
	task.Cancel()

	if fired != 1 {
		t.Errorf("expected exactly 1 firing, got %d", fired)
	}
}

// TestFiringOrder tests deadline order with schedule-order tie-breaking
func TestFiringOrder(t *testing.T) {
	sched, clock := newTestScheduler()

	var order []string
	sched.After(30*time.Millisecond, func() { order = append(order, "c") })
	sched.After(10*time.Millisecond, func() { order = append(order, "a1") })
	sched.After(10*time.Millisecond, func() { order = append(order, "a2") })
	sched.After(20*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(time.Second)
	sched.Advance()

	want := []string{"a1", "a2", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

// TestCallbackScheduledTaskWaits tests that a task scheduled from a callback
// runs on a later Advance, even when already due
func TestCallbackScheduledTaskWaits(t *testing.T) {
	sched, clock := newTestScheduler()

	var order []string
	sched.After(10*time.Millisecond, func() {
		order = append(order, "outer")
		sched.After(0, func() {
			order = append(order, "inner")
		})
	})

	clock.Advance(time.Second)
	sched.Advance()
	if len(order) != 1 || order[0] != "outer" {
		t.Fatalf("expected only outer after first Advance, got %v", order)
	}

	sched.Advance()
	if len(order) != 2 || order[1] != "inner" {
		t.Fatalf("expected inner on second Advance, got %v", order)
	}
}

// TestCallbackCancelsSibling tests cancellation within a due batch
func TestCallbackCancelsSibling(t *testing.T) {
	sched, clock := newTestScheduler()

	fired := false
	var victim *Task
	sched.After(10*time.Millisecond, func() {
		victim.Cancel()
	})
	victim = sched.After(20*time.Millisecond, func() { fired = true })

	clock.Advance(time.Second)
	sched.Advance()

	if fired {
		t.Error("task cancelled by an earlier callback in the same batch still fired")
	}
}

// TestPendingAndCancelAll tests bookkeeping
func TestPendingAndCancelAll(t *testing.T) {
	sched, clock := newTestScheduler()

	sched.After(10*time.Millisecond, func() {})
	sched.After(20*time.Millisecond, func() {})
	task := sched.After(30*time.Millisecond, func() {})

	if got := sched.Pending(); got != 3 {
		t.Errorf("expected 3 pending, got %d", got)
	}

	task.Cancel()
	if got := sched.Pending(); got != 2 {
		t.Errorf("expected 2 pending after cancel, got %d", got)
	}

	sched.CancelAll()
	if got := sched.Pending(); got != 0 {
		t.Errorf("expected 0 pending after CancelAll, got %d", got)
	}

	clock.Advance(time.Second)
	sched.Advance() // nothing should fire
}

// TestMockClockAdvance tests the test clock itself
func TestMockClockAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewMockClock(start)

	if !clock.Now().Equal(start) {
		t.Errorf("expected start time %v, got %v", start, clock.Now())
	}

	clock.Advance(5 * time.Second)
	if got := clock.Now().Sub(start); got != 5*time.Second {
		t.Errorf("expected 5s elapsed, got %v", got)
	}

	target := time.Unix(2000, 0)
	clock.SetTime(target)
	if !clock.Now().Equal(target) {
		t.Errorf("expected %v after SetTime, got %v", target, clock.Now())
	}
}
