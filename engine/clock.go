package engine

import "time"

// Clock provides the current time for all timed combat logic
// Production uses RealClock; tests use MockClock to step time explicitly
type Clock interface {
	Now() time.Time
}

// RealClock returns the system time with monotonic clock readings
type RealClock struct{}

// NewRealClock creates a monotonic real-time clock
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current time with monotonic clock reading
func (c *RealClock) Now() time.Time {
	return time.Now()
}
