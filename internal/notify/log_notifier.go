package notify

import (
	"context"
	"log"
	"time"
)

type logNotifier struct {
	logger *log.Logger
}

// NewLogNotifier returns a Notifier that writes reminder events to the log.
// Used in development and as the fallback when no broker is configured.
func NewLogNotifier(logger *log.Logger) Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SendReminder(ctx context.Context, event ReminderEvent) error {
	n.logger.Printf(
		"[REMINDER] tier=%s task=%s recipient=%s deadline=%s",
		event.Tier,
		event.TaskID,
		event.Recipient,
		event.Deadline.Format(time.RFC3339),
	)
	return nil
}

func (n *logNotifier) Close() error {
	return nil
}
