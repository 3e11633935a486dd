package model

import (
	"testing"
	"time"
)

func TestDayOfUsesCalendarLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cal := NewCalendar(ny)

	// 2026-01-25 02:30 UTC is still Jan 24 in New York.
	instant := time.Date(2026, 1, 25, 2, 30, 0, 0, time.UTC)
	got := cal.DayOf(instant)
	want := Day{Year: 2026, Month: time.January, Date: 24}
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestDayOfAcrossSpringForward(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cal := NewCalendar(ny)

	// DST starts 2026-03-08 in New York; the 23h day still buckets cleanly.
	before := time.Date(2026, 3, 8, 1, 59, 0, 0, ny)
	after := time.Date(2026, 3, 8, 3, 1, 0, 0, ny)
	if !cal.DayOf(before).Equal(cal.DayOf(after)) {
		t.Fatalf("expected same day across DST gap: %s vs %s", cal.DayOf(before), cal.DayOf(after))
	}
	next := time.Date(2026, 3, 9, 0, 1, 0, 0, ny)
	if cal.DayOf(after).Equal(cal.DayOf(next)) {
		t.Fatal("expected midnight to advance the day")
	}
}

func TestAddDaysAcrossMonthAndYear(t *testing.T) {
	d := Day{Year: 2026, Month: time.December, Date: 30}
	got := d.AddDays(3)
	want := Day{Year: 2027, Month: time.January, Date: 2}
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
	back := got.AddDays(-3)
	if !back.Equal(d) {
		t.Fatalf("round trip got %s want %s", back, d)
	}
}

func TestDayOrdering(t *testing.T) {
	a := Day{Year: 2026, Month: time.January, Date: 24}
	b := Day{Year: 2026, Month: time.January, Date: 25}
	c := Day{Year: 2026, Month: time.February, Date: 1}
	if !a.Before(b) || !b.Before(c) {
		t.Fatal("expected a < b < c")
	}
	if !c.After(a) {
		t.Fatal("expected c after a")
	}
	if a.Before(a) || a.After(a) {
		t.Fatal("expected day not before/after itself")
	}
	if !a.Next().Equal(b) {
		t.Fatalf("next day got %s want %s", a.Next(), b)
	}
}

func TestDayStringAndParse(t *testing.T) {
	d := Day{Year: 2026, Month: time.March, Date: 5}
	if d.String() != "2026-03-05" {
		t.Fatalf("unexpected string: %s", d)
	}
	parsed, err := ParseDay("2026-03-05")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if !parsed.Equal(d) {
		t.Fatalf("got %s want %s", parsed, d)
	}
	if _, err := ParseDay("not-a-day"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestWeekday(t *testing.T) {
	// 2026-01-24 is a Saturday.
	d := Day{Year: 2026, Month: time.January, Date: 24}
	if d.Weekday() != time.Saturday {
		t.Fatalf("got %s want Saturday", d.Weekday())
	}
}
