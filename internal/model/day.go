package model

import (
	"fmt"
	"time"
)

// Day is a calendar date with no time-of-day component. Every "same day"
// decision in the tracker goes through Day values minted by a Calendar;
// raw instant comparison is never day-safe across DST transitions.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// Calendar fixes the timezone used to bucket instants into days. One
// Calendar is created at startup and shared everywhere; mixing locations
// would split a single day in two around midnight.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// DayOf buckets an instant into its calendar day.
func (c Calendar) DayOf(t time.Time) Day {
	y, m, d := t.In(c.Location()).Date()
	return Day{Year: y, Month: m, Date: d}
}

// Today is DayOf for a caller-supplied reference instant. The tracker never
// reads the system clock itself.
func (c Calendar) Today(now time.Time) Day {
	return c.DayOf(now)
}

func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Date == 0
}

func (d Day) Equal(other Day) bool {
	return d == other
}

func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Date < other.Date
}

func (d Day) After(other Day) bool {
	return other.Before(d)
}

// AddDays walks the calendar by whole days. Arithmetic happens in UTC where
// days are uniformly 24h, so DST in the display timezone cannot skip or
// duplicate a date.
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	y, m, dd := t.Date()
	return Day{Year: y, Month: m, Date: dd}
}

func (d Day) Next() Day {
	return d.AddDays(1)
}

func (d Day) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Day) DayOfMonth() int {
	return d.Date
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}

const dayLayout = "2006-01-02"

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("model: parse day %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}, nil
}
