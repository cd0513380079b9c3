package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
)

// CleanupReport summarizes one retention cleanup run.
type CleanupReport struct {
	Deleted int64 `json:"deleted"`
	DryRun  bool  `json:"dry_run"`
}

// Cleanup deletes success/failure tasks that have sat untouched longer than
// the retention window. Ongoing tasks are never deleted regardless of age.
type Cleanup struct {
	store     TaskStore
	retention time.Duration
	now       func() time.Time
}

func NewCleanup(store TaskStore, retention time.Duration) *Cleanup {
	return &Cleanup{store: store, retention: retention, now: time.Now}
}

// Run satisfies the scheduler job signature.
func (j *Cleanup) Run(ctx context.Context) error {
	_, err := j.Execute(ctx, j.now(), false)
	return err
}

func (j *Cleanup) Execute(ctx context.Context, now time.Time, dryRun bool) (*CleanupReport, error) {
	report := &CleanupReport{DryRun: dryRun}
	cutoff := now.Add(-j.retention)

	if dryRun {
		count, err := j.store.CountFinishedBefore(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("count finished tasks: %w", err)
		}
		report.Deleted = count
		return report, nil
	}

	deleted, err := j.store.DeleteFinishedBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete finished tasks: %w", err)
	}
	report.Deleted = deleted
	if deleted > 0 {
		log.Printf("cleanup: removed %d finished task(s) older than %s", deleted, j.retention)
	}
	return report, nil
}
