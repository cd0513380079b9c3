package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found or belongs to
	// another owner
	ErrTaskNotFound = errors.New("task not found")

	// ErrTemplateNotFound is returned when a task template is not found
	ErrTemplateNotFound = errors.New("template not found")
)
