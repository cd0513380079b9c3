// Package lifecycle holds the pure status-transition and recurrence logic.
// Functions mutate the task in memory and return an Outcome; persisting the
// task and dispatching follow-up effects is the caller's job. Nothing here
// touches the database or the wall clock.
package lifecycle

import (
	"errors"
	"time"

	"smarttodo/internal/model"
)

// Effect is a follow-up action a transition asks its caller to dispatch.
type Effect string

const (
	// EffectExpandRecurrence asks the caller to create the successor task.
	EffectExpandRecurrence Effect = "expand_recurrence"
)

// Outcome reports whether a transition changed the task and which effects
// the caller should dispatch, at most once each.
type Outcome struct {
	Changed bool
	Effects []Effect
}

// ErrTaskNotOngoing is returned when a transition requires an ongoing task.
var ErrTaskNotOngoing = errors.New("task is not ongoing")

// Start records that work on the task began. Only valid from ongoing.
// Calling it again once started is a no-op.
func Start(t *model.Task, now time.Time) (Outcome, error) {
	if t.Status != model.StatusOngoing {
		return Outcome{}, ErrTaskNotOngoing
	}
	if t.StartedAt != nil {
		return Outcome{}, nil
	}
	started := now
	t.StartedAt = &started
	return Outcome{Changed: true}, nil
}

// Complete marks the task successful and derives the actual duration from
// StartedAt when it was set. A redundant call on an already-successful task
// changes nothing and emits no effects, which is what makes concurrent
// double-completion safe without locking. Completing a recurring task emits
// EffectExpandRecurrence exactly once, on the call that performed the
// transition.
func Complete(t *model.Task, now time.Time) Outcome {
	if t.Status == model.StatusSuccess {
		return Outcome{}
	}
	t.Status = model.StatusSuccess
	completed := now
	t.CompletedAt = &completed
	if t.StartedAt != nil {
		mins := int(now.Sub(*t.StartedAt).Minutes())
		if mins < 0 {
			mins = 0
		}
		t.ActualDuration = &mins
	}
	out := Outcome{Changed: true}
	if t.IsRecurring && t.RecurrencePattern != model.RecurrenceNone {
		out.Effects = append(out.Effects, EffectExpandRecurrence)
	}
	return out
}

// EvaluateDeadline applies deadline semantics at now: an ongoing task past
// its deadline becomes failure. Idempotent and monotonic; once failed, only
// SetStatus can move it back. When an ongoing recurring task flips to
// failure the caller is asked to expand the recurrence.
func EvaluateDeadline(t *model.Task, now time.Time) Outcome {
	next := t.EvaluateStatus(now)
	if next == t.Status {
		return Outcome{}
	}
	t.Status = next
	out := Outcome{Changed: true}
	if t.IsRecurring && t.RecurrencePattern != model.RecurrenceNone {
		out.Effects = append(out.Effects, EffectExpandRecurrence)
	}
	return out
}

// SetStatus writes the status directly for privileged callers. Deliberately
// permissive: there is no transition guard, so failure can be moved back to
// success or ongoing. It keeps the completion fields coherent but never
// emits effects.
func SetStatus(t *model.Task, status model.Status, now time.Time) Outcome {
	if t.Status == status {
		return Outcome{}
	}
	t.Status = status
	switch status {
	case model.StatusSuccess:
		if t.CompletedAt == nil {
			completed := now
			t.CompletedAt = &completed
		}
	case model.StatusOngoing:
		t.CompletedAt = nil
		t.ActualDuration = nil
	}
	return Outcome{Changed: true}
}
