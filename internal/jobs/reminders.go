package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"smarttodo/internal/notify"
)

// ReminderWindow is how far ahead of now the trigger looks for deadlines.
const ReminderWindow = 24 * time.Hour

// ReminderReport summarizes one reminder trigger run.
type ReminderReport struct {
	Matched int  `json:"matched"`
	Sent    int  `json:"sent"`
	Skipped int  `json:"skipped"`
	DryRun  bool `json:"dry_run"`
}

// Reminders finds ongoing tasks due within the window and emits one reminder
// event per task per run. Reminders repeat run over run on purpose; there is
// no dedup.
type Reminders struct {
	store    TaskStore
	notifier notify.Notifier
	now      func() time.Time
}

func NewReminders(store TaskStore, notifier notify.Notifier) *Reminders {
	return &Reminders{store: store, notifier: notifier, now: time.Now}
}

// Run satisfies the scheduler job signature.
func (j *Reminders) Run(ctx context.Context) error {
	_, err := j.Execute(ctx, j.now(), false)
	return err
}

// Execute evaluates the reminder window at the given instant. Delivery
// errors are logged and swallowed at this boundary; a broken notifier never
// fails the run.
func (j *Reminders) Execute(ctx context.Context, now time.Time, dryRun bool) (*ReminderReport, error) {
	report := &ReminderReport{DryRun: dryRun}

	due, err := j.store.DueWithin(ctx, now, now.Add(ReminderWindow))
	if err != nil {
		return nil, fmt.Errorf("find tasks due within %s: %w", ReminderWindow, err)
	}
	report.Matched = len(due)

	for _, t := range due {
		recipient := t.Creator.Email
		if recipient == "" {
			report.Skipped++
			continue
		}
		tier := notify.TierFor(t.Deadline.Sub(now))
		if dryRun {
			log.Printf("reminders (dry run): would send %s reminder for task %s to %s", tier, t.ID, recipient)
			continue
		}
		event := notify.ReminderEvent{
			TaskID:    t.ID.String(),
			Title:     t.Title,
			OwnerID:   t.CreatedBy.String(),
			Recipient: recipient,
			Tier:      tier,
			Deadline:  t.Deadline,
			Timestamp: now,
		}
		if err := j.notifier.SendReminder(ctx, event); err != nil {
			log.Printf("reminders: send failed for task %s: %v", t.ID, err)
			continue
		}
		report.Sent++
	}

	return report, nil
}
