package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOngoing, StatusSuccess, StatusFailure:
		return true
	}
	return false
}

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

// StringSlice stores tags as a JSONB array column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
	return json.Unmarshal(b, s)
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `gorm:"not null;index:idx_tasks_status_deadline,priority:2" json:"deadline"`
	Status      Status    `gorm:"type:varchar(20);not null;default:ongoing;index:idx_tasks_status_deadline,priority:1" json:"status"`
	Priority    int       `gorm:"not null;default:3" json:"priority"`

	IsRecurring       bool              `gorm:"not null;default:false" json:"is_recurring"`
	RecurrencePattern RecurrencePattern `gorm:"type:varchar(20);not null;default:none" json:"recurrence_pattern"`
	NextOccurrence    *time.Time        `json:"next_occurrence,omitempty"`

	TemplateID *uuid.UUID    `gorm:"type:uuid" json:"template_id,omitempty"`
	Template   *TaskTemplate `gorm:"foreignKey:TemplateID" json:"-"`

	EstimatedDuration int        `gorm:"not null;default:60" json:"estimated_duration"`
	ActualDuration    *int       `json:"actual_duration,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator   User      `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tags StringSlice `gorm:"type:jsonb;default:'[]'" json:"tags"`
}

// ValidationError reports a field that failed write-time validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// Validate enforces structural constraints at write time. Deadlines in the
// past are accepted; an ongoing task with a past deadline simply fails on
// its next evaluation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if t.Deadline.IsZero() {
		return &ValidationError{Field: "deadline", Reason: "is required"}
	}
	if t.Priority < 1 || t.Priority > 5 {
		return &ValidationError{Field: "priority", Reason: "must be between 1 and 5"}
	}
	switch t.RecurrencePattern {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return &ValidationError{Field: "recurrence_pattern", Reason: "is not a known pattern"}
	}
	if t.IsRecurring && t.RecurrencePattern == RecurrenceNone {
		return &ValidationError{Field: "recurrence_pattern", Reason: "is required for recurring tasks"}
	}
	return nil
}

// EvaluateStatus returns the status the task should hold at now: an ongoing
// task past its deadline evaluates to failure, everything else is unchanged.
// Repeated application with a non-decreasing now is idempotent.
func (t *Task) EvaluateStatus(now time.Time) Status {
	if t.Status == StatusOngoing && t.Deadline.Before(now) {
		return StatusFailure
	}
	return t.Status
}

// IsOverdue reports whether the task is ongoing and past its deadline.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status == StatusOngoing && t.Deadline.Before(now)
}

// BeforeSave reconciles a stale ongoing row against the clock on every write
// that goes through gorm, so a task past its deadline self-corrects the
// moment it is next touched. Bulk updates bypass hooks; the sweep handles
// those rows itself.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	t.Status = t.EvaluateStatus(time.Now())
	return nil
}
