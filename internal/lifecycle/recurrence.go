package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smarttodo/internal/model"
)

var (
	// ErrNotRecurring is returned when expansion is requested for a task
	// without a recurrence configuration.
	ErrNotRecurring = errors.New("task is not recurring")

	// ErrUnknownPattern is returned for a recurrence pattern the expander
	// cannot compute an offset for.
	ErrUnknownPattern = errors.New("unknown recurrence pattern")
)

// NextDeadline computes the successor deadline from the current one.
// Monthly is a fixed 30-day offset, not calendar-month aware.
func NextDeadline(deadline time.Time, pattern model.RecurrencePattern) (time.Time, error) {
	switch pattern {
	case model.RecurrenceDaily:
		return deadline.Add(24 * time.Hour), nil
	case model.RecurrenceWeekly:
		return deadline.Add(7 * 24 * time.Hour), nil
	case model.RecurrenceMonthly:
		return deadline.Add(30 * 24 * time.Hour), nil
	case model.RecurrenceNone:
		return time.Time{}, ErrNotRecurring
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}
}

// Successor builds the next occurrence of a recurring task: a fresh ongoing
// task with the descriptive and recurrence fields carried over and all
// timing fields cleared. There is no dedup guard here; callers invoke it at
// most once per completion or expiry event.
func Successor(t *model.Task) (*model.Task, error) {
	if !t.IsRecurring {
		return nil, ErrNotRecurring
	}
	next, err := NextDeadline(t.Deadline, t.RecurrencePattern)
	if err != nil {
		return nil, err
	}
	return &model.Task{
		ID:                uuid.New(),
		Title:             t.Title,
		Description:       t.Description,
		Deadline:          next,
		Status:            model.StatusOngoing,
		Priority:          t.Priority,
		IsRecurring:       t.IsRecurring,
		RecurrencePattern: t.RecurrencePattern,
		TemplateID:        t.TemplateID,
		EstimatedDuration: t.EstimatedDuration,
		CreatedBy:         t.CreatedBy,
		Tags:              append(model.StringSlice(nil), t.Tags...),
	}, nil
}
