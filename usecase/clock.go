package usecase

import "time"

// Clock yields the current instant. Use cases take one so tests can pin "now".
type Clock func() time.Time

// SystemClock is the default Clock.
func SystemClock() time.Time {
	return time.Now()
}
