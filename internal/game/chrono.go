package game

import "fmt"

// Ship calendar: every month has 30 days and every year has 12 months.
const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
	daysPerMonth   = 30
	monthsPerYear  = 12

	startYear = 2276
)

// Chronometer is the ship clock. The zero value reads 01-01-2276  00:00.
type Chronometer struct {
	minutes int64
}

// Advance moves the clock forward by the given number of minutes. Negative
// amounts are ignored.
func (c *Chronometer) Advance(minutes int) {
	if minutes > 0 {
		c.minutes += int64(minutes)
	}
}

// Elapsed returns the number of minutes since the clock started.
func (c Chronometer) Elapsed() int64 {
	return c.minutes
}

// String gives the time formatted as DD-MM-YYYY  HH:MM.
func (c Chronometer) String() string {
	m := c.minutes
	minute := m % minutesPerHour
	hour := (m / minutesPerHour) % 24
	days := m / minutesPerDay

	day := days%daysPerMonth + 1
	months := days / daysPerMonth
	month := months%monthsPerYear + 1
	year := startYear + months/monthsPerYear

	return fmt.Sprintf("%02d-%02d-%04d  %02d:%02d", day, month, year, hour, minute)
}
