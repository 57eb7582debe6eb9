package engine

import "time"

// Clock abstracts time.Now() so "today" can be pinned in tests.
// It stamps exported calendars and pre-fills the add-event form.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
