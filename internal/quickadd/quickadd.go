// Package quickadd parses the one-line task entry syntax used by the TUI:
//
//	pay rent monthly 1 @finance
//	gym every mon,wed,fri from 2026-02-01
//	water the plants every day
//	renew passport once
//
// Validation happens here, at the edit boundary: whatever this package
// accepts is a well-formed recurrence by the time it reaches storage.
package quickadd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"routined/internal/model"
)

type ErrorCode string

const (
	ErrCodeEmptyInput    ErrorCode = "empty_input"
	ErrCodeMissingTitle  ErrorCode = "missing_title"
	ErrCodeBadRecurrence ErrorCode = "bad_recurrence"
	ErrCodeBadStartDate  ErrorCode = "bad_start_date"
)

type ParseError struct {
	Code    ErrorCode
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Input struct {
	Title      string
	Category   string
	Recurrence model.Recurrence
	StartDate  *model.Day
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func Parse(raw string) (Input, error) {
	if strings.TrimSpace(raw) == "" {
		return Input{}, &ParseError{Code: ErrCodeEmptyInput, Message: "nothing to add"}
	}

	in := Input{Recurrence: model.Recurrence{Kind: model.RecurrenceOneTime}}
	titleWords := make([]string, 0, 8)

	tokens := strings.Fields(raw)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		lower := strings.ToLower(token)

		switch {
		case strings.HasPrefix(token, "@") && len(token) > 1:
			in.Category = token[1:]

		case lower == "from" && i+1 < len(tokens):
			day, err := model.ParseDay(tokens[i+1])
			if err != nil {
				return Input{}, &ParseError{Code: ErrCodeBadStartDate, Message: fmt.Sprintf("cannot parse start date %q, want YYYY-MM-DD", tokens[i+1])}
			}
			in.StartDate = &day
			i++

		case lower == "once":
			in.Recurrence = model.Recurrence{Kind: model.RecurrenceOneTime}

		case lower == "daily":
			in.Recurrence = model.Recurrence{Kind: model.RecurrenceDaily}

		case lower == "weekly":
			in.Recurrence = model.Recurrence{Kind: model.RecurrenceWeekly}

		case lower == "every" && i+1 < len(tokens):
			recurrence, err := parseEveryClause(strings.ToLower(tokens[i+1]))
			if err != nil {
				return Input{}, err
			}
			in.Recurrence = recurrence
			i++

		case lower == "monthly":
			recurrence := model.Recurrence{Kind: model.RecurrenceMonthly}
			if i+1 < len(tokens) {
				if days, ok := parseMonthDayList(tokens[i+1]); ok {
					recurrence.MonthDays = days
					i++
				}
			}
			in.Recurrence = recurrence

		default:
			titleWords = append(titleWords, token)
		}
	}

	in.Title = strings.Join(titleWords, " ")
	if in.Title == "" {
		return Input{}, &ParseError{Code: ErrCodeMissingTitle, Message: "task needs a title"}
	}
	if err := in.Recurrence.Validate(); err != nil {
		return Input{}, &ParseError{Code: ErrCodeBadRecurrence, Message: err.Error()}
	}
	return in, nil
}

// parseEveryClause handles the token after "every": "day", "week", or a
// comma-separated weekday list like "mon,wed,fri".
func parseEveryClause(clause string) (model.Recurrence, error) {
	switch clause {
	case "day":
		return model.Recurrence{Kind: model.RecurrenceDaily}, nil
	case "week":
		return model.Recurrence{Kind: model.RecurrenceWeekly}, nil
	}

	parts := strings.Split(clause, ",")
	weekdays := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		w, ok := weekdayNames[strings.TrimSpace(part)]
		if !ok {
			return model.Recurrence{}, &ParseError{Code: ErrCodeBadRecurrence, Message: fmt.Sprintf("unknown weekday %q", part)}
		}
		weekdays = append(weekdays, w)
	}
	return model.Recurrence{Kind: model.RecurrenceWeekly, Weekdays: weekdays}, nil
}

func parseMonthDayList(clause string) ([]int, bool) {
	parts := strings.Split(clause, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		days = append(days, v)
	}
	return days, true
}
