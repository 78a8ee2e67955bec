package clock

import "time"

// Clock supplies the current instant. Injected so that scheduling decisions
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
