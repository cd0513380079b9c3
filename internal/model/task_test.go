package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smarttodo/internal/model"
)

func validTask() *model.Task {
	return &model.Task{
		Title:             "write report",
		Deadline:          time.Now().Add(24 * time.Hour),
		Status:            model.StatusOngoing,
		Priority:          3,
		RecurrencePattern: model.RecurrenceNone,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validTask().Validate())
}

func TestValidate_PriorityBounds(t *testing.T) {
	for _, priority := range []int{0, 6, -1} {
		task := validTask()
		task.Priority = priority

		err := task.Validate()

		ve, ok := model.AsValidationError(err)
		assert.True(t, ok, "priority %d should fail validation", priority)
		assert.Equal(t, "priority", ve.Field)
	}

	for priority := 1; priority <= 5; priority++ {
		task := validTask()
		task.Priority = priority
		assert.NoError(t, task.Validate())
	}
}

func TestValidate_MissingTitle(t *testing.T) {
	task := validTask()
	task.Title = ""

	ve, ok := model.AsValidationError(task.Validate())
	assert.True(t, ok)
	assert.Equal(t, "title", ve.Field)
}

func TestValidate_MissingDeadline(t *testing.T) {
	task := validTask()
	task.Deadline = time.Time{}

	ve, ok := model.AsValidationError(task.Validate())
	assert.True(t, ok)
	assert.Equal(t, "deadline", ve.Field)
}

func TestValidate_PastDeadlineAccepted(t *testing.T) {
	task := validTask()
	task.Deadline = time.Now().Add(-time.Hour)

	assert.NoError(t, task.Validate())
}

func TestValidate_RecurringNeedsPattern(t *testing.T) {
	task := validTask()
	task.IsRecurring = true
	task.RecurrencePattern = model.RecurrenceNone

	ve, ok := model.AsValidationError(task.Validate())
	assert.True(t, ok)
	assert.Equal(t, "recurrence_pattern", ve.Field)
}

func TestValidate_UnknownPatternRejected(t *testing.T) {
	task := validTask()
	task.RecurrencePattern = model.RecurrencePattern("hourly")

	ve, ok := model.AsValidationError(task.Validate())
	assert.True(t, ok)
	assert.Equal(t, "recurrence_pattern", ve.Field)
}

func TestEvaluateStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	task := validTask()
	task.Deadline = now.Add(-time.Minute)
	assert.Equal(t, model.StatusFailure, task.EvaluateStatus(now))

	task.Deadline = now.Add(time.Minute)
	assert.Equal(t, model.StatusOngoing, task.EvaluateStatus(now))

	// terminal statuses never move
	task.Status = model.StatusSuccess
	task.Deadline = now.Add(-time.Hour)
	assert.Equal(t, model.StatusSuccess, task.EvaluateStatus(now))

	task.Status = model.StatusFailure
	assert.Equal(t, model.StatusFailure, task.EvaluateStatus(now))
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()

	task := validTask()
	task.Deadline = now.Add(-time.Second)
	assert.True(t, task.IsOverdue(now))

	task.Status = model.StatusFailure
	assert.False(t, task.IsOverdue(now))
}
