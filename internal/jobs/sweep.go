package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"smarttodo/internal/lifecycle"
)

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Scanned           int      `json:"scanned"`
	Failed            int64    `json:"failed"`
	SuccessorsCreated int      `json:"successors_created"`
	DryRun            bool     `json:"dry_run"`
	Errors            []string `json:"errors,omitempty"`
}

// Sweep demotes overdue ongoing tasks to failure and expands recurrences
// for the tasks it demoted.
type Sweep struct {
	store TaskStore
	now   func() time.Time
}

func NewSweep(store TaskStore) *Sweep {
	return &Sweep{store: store, now: time.Now}
}

// Run satisfies the scheduler job signature.
func (j *Sweep) Run(ctx context.Context) error {
	_, err := j.Execute(ctx, j.now(), false)
	return err
}

// Execute performs one sweep at the given instant. The status flip is a
// single bulk write; successor creation happens afterwards, task by task,
// with each failure isolated to its own report entry. A crash between the
// two steps can leave a failed recurring task without its successor, which
// an operator re-derives by re-running expansion by hand.
func (j *Sweep) Execute(ctx context.Context, now time.Time, dryRun bool) (*SweepReport, error) {
	report := &SweepReport{DryRun: dryRun}

	overdue, err := j.store.FindOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find overdue tasks: %w", err)
	}
	report.Scanned = len(overdue)
	if len(overdue) == 0 {
		return report, nil
	}

	if dryRun {
		report.Failed = int64(len(overdue))
		for _, t := range overdue {
			log.Printf("sweep (dry run): would mark task %s (%q, deadline %s) failed", t.ID, t.Title, t.Deadline.Format(time.RFC3339))
		}
		return report, nil
	}

	ids := make([]uuid.UUID, len(overdue))
	for i, t := range overdue {
		ids[i] = t.ID
	}
	failed, err := j.store.MarkFailed(ctx, ids, now)
	if err != nil {
		return nil, fmt.Errorf("mark overdue tasks failed: %w", err)
	}
	report.Failed = failed

	for _, t := range overdue {
		if !t.IsRecurring {
			continue
		}
		successor, err := lifecycle.Successor(&t)
		if err != nil {
			log.Printf("sweep: expansion failed for task %s: %v", t.ID, err)
			report.Errors = append(report.Errors, fmt.Sprintf("task %s: %v", t.ID, err))
			continue
		}
		if err := j.store.Create(ctx, successor); err != nil {
			log.Printf("sweep: could not create successor for task %s: %v", t.ID, err)
			report.Errors = append(report.Errors, fmt.Sprintf("task %s: %v", t.ID, err))
			continue
		}
		report.SuccessorsCreated++
	}

	log.Printf("sweep: marked %d task(s) failed, created %d successor(s)", report.Failed, report.SuccessorsCreated)
	return report, nil
}
