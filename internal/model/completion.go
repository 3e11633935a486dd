package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingTaskID      = errors.New("model: completion task id is required")
	ErrMissingCompletedAt = errors.New("model: completion timestamp is required")
)

// Completion records that a task was satisfied at a precise instant. Which
// calendar day it satisfies is always derived through Calendar.DayOf, never
// stored redundantly.
type Completion struct {
	ID          string
	TaskID      string
	CompletedAt time.Time
}

func (c Completion) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(c.TaskID) == "" {
		return ErrMissingTaskID
	}
	if c.CompletedAt.IsZero() {
		return ErrMissingCompletedAt
	}
	return nil
}
