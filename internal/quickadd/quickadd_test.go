package quickadd

import (
	"errors"
	"testing"
	"time"

	"routined/internal/model"
)

func TestParsePlainTitleDefaultsToOneTime(t *testing.T) {
	in, err := Parse("renew passport")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Title != "renew passport" {
		t.Fatalf("unexpected title: %q", in.Title)
	}
	if in.Recurrence.Kind != model.RecurrenceOneTime {
		t.Fatalf("expected one-time default, got %s", in.Recurrence.Kind)
	}
}

func TestParseEveryDay(t *testing.T) {
	in, err := Parse("water the plants every day")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Title != "water the plants" || in.Recurrence.Kind != model.RecurrenceDaily {
		t.Fatalf("unexpected result: %+v", in)
	}
}

func TestParseWeekdayList(t *testing.T) {
	in, err := Parse("gym every mon,wed,fri @health")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Recurrence.Kind != model.RecurrenceWeekly {
		t.Fatalf("expected weekly, got %s", in.Recurrence.Kind)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(in.Recurrence.Weekdays) != len(want) {
		t.Fatalf("unexpected weekdays: %v", in.Recurrence.Weekdays)
	}
	for i := range want {
		if in.Recurrence.Weekdays[i] != want[i] {
			t.Fatalf("weekday %d: got %s want %s", i, in.Recurrence.Weekdays[i], want[i])
		}
	}
	if in.Category != "health" {
		t.Fatalf("unexpected category: %q", in.Category)
	}
}

func TestParseMonthlyWithDays(t *testing.T) {
	in, err := Parse("pay rent monthly 1 @finance")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Recurrence.Kind != model.RecurrenceMonthly || len(in.Recurrence.MonthDays) != 1 || in.Recurrence.MonthDays[0] != 1 {
		t.Fatalf("unexpected recurrence: %+v", in.Recurrence)
	}
	if in.Title != "pay rent" {
		t.Fatalf("unexpected title: %q", in.Title)
	}
}

func TestParseMonthlyWithoutDaysIsUnrestricted(t *testing.T) {
	in, err := Parse("check inbox monthly")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Recurrence.Kind != model.RecurrenceMonthly || len(in.Recurrence.MonthDays) != 0 {
		t.Fatalf("unexpected recurrence: %+v", in.Recurrence)
	}
}

func TestParseStartDate(t *testing.T) {
	in, err := Parse("dry january every day from 2027-01-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.StartDate == nil || in.StartDate.String() != "2027-01-01" {
		t.Fatalf("unexpected start date: %v", in.StartDate)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		raw  string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"   ", ErrCodeEmptyInput},
		{"every day", ErrCodeMissingTitle},
		{"gym every funday", ErrCodeBadRecurrence},
		{"pay rent monthly 32", ErrCodeBadRecurrence},
		{"trip once from tomorrow", ErrCodeBadStartDate},
	}
	for _, tc := range cases {
		_, err := Parse(tc.raw)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: expected ParseError, got %v", tc.raw, err)
		}
		if parseErr.Code != tc.code {
			t.Fatalf("%q: got code %s want %s", tc.raw, parseErr.Code, tc.code)
		}
	}
}
