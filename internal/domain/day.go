package domain

import (
	"fmt"
	"time"
)

// DayFormat is the wire and storage format for calendar days.
const DayFormat = "2006-01-02"

// Day represents a single calendar day in UTC. Balances are keyed by Day.
type Day struct {
	t time.Time
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q is not a valid YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return Day{t: t.UTC()}, nil
}

// DayOf truncates a timestamp to its calendar day in UTC.
func DayOf(t time.Time) Day {
	t = t.UTC()
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the YYYY-MM-DD representation.
func (d Day) String() string {
	return d.t.Format(DayFormat)
}

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// Prev returns the previous calendar day.
func (d Day) Prev() Day {
	return Day{t: d.t.AddDate(0, 0, -1)}
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return Day{t: d.t.AddDate(0, 0, 1)}
}

// AddDays returns the day n calendar days later.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is chronologically before other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d is chronologically after other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// Equal reports whether both values denote the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// StartOfDay returns 00:00:00 UTC of the day.
func (d Day) StartOfDay() time.Time {
	return d.t
}

// EndOfDay returns 23:59:59 UTC of the day, the inclusive upper bound
// used when reading a single day's ledger entries.
func (d Day) EndOfDay() time.Time {
	return d.t.Add(24*time.Hour - time.Second)
}

// Time returns the underlying midnight-UTC timestamp.
func (d Day) Time() time.Time {
	return d.t
}

// DaysUntil returns the number of whole days from d to other (negative if
// other precedes d).
func (d Day) DaysUntil(other Day) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// MarshalText implements encoding.TextMarshaler so days serialize as
// YYYY-MM-DD in JSON and cache payloads.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
