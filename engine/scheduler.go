package engine

import (
	"sort"
	"time"
)

// Task is a single cancelable deferred action owned by a Scheduler
// A cancelled task firing later is a guaranteed no-op
type Task struct {
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool // fired or cancelled
}

// Cancel marks the task done so Advance will never run it
// Safe to call multiple times and after the task has fired
func (t *Task) Cancel() {
	t.done = true
}

// Done reports whether the task has fired or been cancelled
func (t *Task) Done() bool {
	return t.done
}

// Scheduler runs deferred actions against an injected Clock.
//
// All scheduling and firing happens on the game tick thread: timers here
// "fire asynchronously relative to the frame tick" only in the sense that
// their deadlines are independent of tick boundaries; execution is always
// inside Advance, called once per tick. No locking is required.
type Scheduler struct {
	clock   Clock
	tasks   []*Task
	nextSeq uint64
}

// NewScheduler creates a scheduler driven by the given clock
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
	}
}

// After schedules fn to run once Advance observes the deadline
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	s.nextSeq++
	t := &Task{
		deadline: s.clock.Now().Add(d),
		seq:      s.nextSeq,
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance fires every due task in deadline order (schedule order on ties).
// Task callbacks may schedule further tasks; those run on a later Advance
// even when already due, keeping callback depth bounded.
func (s *Scheduler) Advance() {
	now := s.clock.Now()

	var due []*Task
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		switch {
		case t.done:
			// Dropped: cancelled before firing
		case !t.deadline.After(now):
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	for _, t := range due {
		if t.done {
			// Cancelled by an earlier callback in this batch
			continue
		}
		t.done = true
		t.fn()
	}
}

// Pending returns the number of live scheduled tasks
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// CancelAll cancels every pending task
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.done = true
	}
	s.tasks = s.tasks[:0]
}
