// Package clock is the time source for case timings.
package clock

import "time"

var nowFunc = time.Now

// Now returns the current time from the configured clock function.
func Now() time.Time {
	return nowFunc()
}

// Since returns the time elapsed since start on the configured clock.
func Since(start time.Time) time.Duration {
	return nowFunc().Sub(start)
}

// SetNowForTest overrides the clock source and returns a restore function.
// Tests that call it must not run in parallel.
func SetNowForTest(fn func() time.Time) func() {
	previous := nowFunc
	nowFunc = fn
	return func() {
		nowFunc = previous
	}
}
