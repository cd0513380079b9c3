package lifecycle_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"smarttodo/internal/lifecycle"
	"smarttodo/internal/model"
)

func TestNextDeadline_Offsets(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		pattern model.RecurrencePattern
		offset  time.Duration
	}{
		{model.RecurrenceDaily, 24 * time.Hour},
		{model.RecurrenceWeekly, 7 * 24 * time.Hour},
		{model.RecurrenceMonthly, 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		next, err := lifecycle.NextDeadline(deadline, tt.pattern)
		assert.NoError(t, err)
		assert.Equal(t, deadline.Add(tt.offset), next, "pattern %s", tt.pattern)
	}
}

func TestNextDeadline_None(t *testing.T) {
	_, err := lifecycle.NextDeadline(time.Now(), model.RecurrenceNone)
	assert.ErrorIs(t, err, lifecycle.ErrNotRecurring)
}

func TestNextDeadline_UnknownPattern(t *testing.T) {
	_, err := lifecycle.NextDeadline(time.Now(), model.RecurrencePattern("fortnightly"))
	assert.ErrorIs(t, err, lifecycle.ErrUnknownPattern)
}

func TestSuccessor_CarriesFieldsForward(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	started := deadline.Add(-2 * time.Hour)
	completed := deadline.Add(-time.Hour)
	duration := 60
	tplID := uuid.New()

	source := &model.Task{
		ID:                uuid.New(),
		Title:             "water the plants",
		Description:       "balcony first",
		Deadline:          deadline,
		Status:            model.StatusSuccess,
		Priority:          4,
		IsRecurring:       true,
		RecurrencePattern: model.RecurrenceDaily,
		TemplateID:        &tplID,
		EstimatedDuration: 15,
		ActualDuration:    &duration,
		StartedAt:         &started,
		CompletedAt:       &completed,
		CreatedBy:         uuid.New(),
		Tags:              model.StringSlice{"home", "plants"},
	}

	successor, err := lifecycle.Successor(source)

	assert.NoError(t, err)
	assert.NotEqual(t, source.ID, successor.ID)
	assert.Equal(t, deadline.Add(24*time.Hour), successor.Deadline)
	assert.Equal(t, model.StatusOngoing, successor.Status)
	assert.Equal(t, source.Title, successor.Title)
	assert.Equal(t, source.Description, successor.Description)
	assert.Equal(t, source.Priority, successor.Priority)
	assert.Equal(t, source.EstimatedDuration, successor.EstimatedDuration)
	assert.Equal(t, source.Tags, successor.Tags)
	assert.Equal(t, source.TemplateID, successor.TemplateID)
	assert.Equal(t, source.CreatedBy, successor.CreatedBy)
	assert.True(t, successor.IsRecurring)
	assert.Equal(t, model.RecurrenceDaily, successor.RecurrencePattern)

	// timing fields start fresh
	assert.Nil(t, successor.StartedAt)
	assert.Nil(t, successor.CompletedAt)
	assert.Nil(t, successor.ActualDuration)
}

func TestSuccessor_NotRecurring(t *testing.T) {
	source := &model.Task{
		Title:    "one-off",
		Deadline: time.Now(),
	}

	successor, err := lifecycle.Successor(source)

	assert.ErrorIs(t, err, lifecycle.ErrNotRecurring)
	assert.Nil(t, successor)
}

func TestSuccessor_TagsAreCopied(t *testing.T) {
	source := &model.Task{
		Title:             "report",
		Deadline:          time.Now(),
		IsRecurring:       true,
		RecurrencePattern: model.RecurrenceWeekly,
		Tags:              model.StringSlice{"work"},
	}

	successor, err := lifecycle.Successor(source)
	assert.NoError(t, err)

	successor.Tags[0] = "changed"
	assert.Equal(t, "work", source.Tags[0])
}
