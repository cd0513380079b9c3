// Package jobs implements the periodic batch jobs: the deadline sweep, the
// reminder trigger, and retention cleanup. Jobs degrade gracefully: per-item
// failures are logged and reported, never allowed to abort a batch. Every
// job supports a dry run that reports what would change without mutating
// anything.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smarttodo/internal/model"
)

// TaskStore is the slice of the task repository the jobs need.
type TaskStore interface {
	FindOverdue(ctx context.Context, now time.Time) ([]model.Task, error)
	MarkFailed(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error)
	Create(ctx context.Context, task *model.Task) error
	DueWithin(ctx context.Context, from, until time.Time) ([]model.Task, error)
	CountFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
