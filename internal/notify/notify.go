// Package notify is the boundary to the external notification system.
// Reminder delivery is fire-and-forget: callers log send errors and move on,
// nothing here retries.
package notify

import (
	"context"
	"time"
)

type ReminderTier string

const (
	TierUrgent  ReminderTier = "urgent"
	TierWarning ReminderTier = "warning"
	TierRoutine ReminderTier = "routine"
)

// TierFor classifies a reminder by how much time remains until the deadline.
func TierFor(remaining time.Duration) ReminderTier {
	switch {
	case remaining <= time.Hour:
		return TierUrgent
	case remaining <= 6*time.Hour:
		return TierWarning
	default:
		return TierRoutine
	}
}

// ReminderEvent is the payload handed to the external notifier, one per
// ongoing task inside the reminder window per trigger run.
type ReminderEvent struct {
	TaskID    string       `json:"taskId"`
	Title     string       `json:"title"`
	OwnerID   string       `json:"userId"`
	Recipient string       `json:"recipient"`
	Tier      ReminderTier `json:"tier"`
	Deadline  time.Time    `json:"deadline"`
	Timestamp time.Time    `json:"timestamp"`
}

type Notifier interface {
	SendReminder(ctx context.Context, event ReminderEvent) error
	Close() error
}
