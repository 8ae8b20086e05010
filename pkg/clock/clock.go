// Package clock abstracts "now" so accrual and default collection dates are
// deterministic in tests.
package clock

import "time"

// Clock supplies the current time and the current calendar day.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// System is the wall-clock implementation.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

func (f Fixed) Today() time.Time {
	return time.Date(f.T.Year(), f.T.Month(), f.T.Day(), 0, 0, 0, 0, time.UTC)
}
