package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskTemplate pre-fills task fields at creation time. Tasks keep a weak
// reference back to it but never read it again after creation.
type TaskTemplate struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `json:"description"`
	EstimatedDuration int       `gorm:"not null;default:60" json:"estimated_duration"`
	Priority          int       `gorm:"not null;default:3" json:"priority"`
	CreatedBy         uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewTaskFromTemplate builds an ongoing task with defaults taken from the
// template.
func NewTaskFromTemplate(tpl *TaskTemplate, deadline time.Time, createdBy uuid.UUID) *Task {
	tplID := tpl.ID
	return &Task{
		ID:                uuid.New(),
		Title:             tpl.Title,
		Description:       tpl.Description,
		Deadline:          deadline,
		Status:            StatusOngoing,
		Priority:          tpl.Priority,
		RecurrencePattern: RecurrenceNone,
		EstimatedDuration: tpl.EstimatedDuration,
		TemplateID:        &tplID,
		CreatedBy:         createdBy,
	}
}
