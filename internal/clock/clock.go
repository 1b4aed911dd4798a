// Package clock provides an injectable time source so that scheduling and
// progress logic never read the system clock directly.
package clock

import "time"

type Clock interface {
	Now() time.Time
	// Today returns the current date truncated to UTC midnight.
	Today() time.Time
}

// System reads the real time.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

func (s System) Today() time.Time {
	return Midnight(s.Now())
}

// Fixed always reports the same instant. Useful for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time   { return f.T }
func (f Fixed) Today() time.Time { return Midnight(f.T) }

// Midnight truncates an instant to its UTC date.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
