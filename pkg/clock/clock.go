// Package clock abstracts wall-clock time so schedules can be tested
package clock

import "time"

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the production clock backed by the standard library
type SystemClock struct{}

func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (SystemClock) Now() time.Time {
	return time.Now()
}
