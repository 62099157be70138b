package notify

import (
	"fmt"
	"log/slog"
	"time"
)

// Notifier is the delivery channel for human-facing notifications
// (console for now; email/SMS/push fit behind the same interface).
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct {
	log *slog.Logger
}

func NewConsole(log *slog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	c.log.Info("notify", "subject", subject, "message", message)
	return nil
}

// HumanDateRange formats a stay for notification text.
func HumanDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s — %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
}
