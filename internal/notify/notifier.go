package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers a notification to one destination.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Hub dispatches notifications to multiple notifiers.
// Delivery is best-effort: failures are logged, never returned.
type Hub struct {
	notifiers []Notifier
}

// NewHub creates a Hub with the given notifiers.
func NewHub(notifiers ...Notifier) *Hub {
	return &Hub{notifiers: notifiers}
}

// Notify sends n to every registered notifier in order and reports whether
// all of them accepted it.
func (h *Hub) Notify(ctx context.Context, n Notification) bool {
	ok := true
	for _, nt := range h.notifiers {
		if err := nt.Send(ctx, n); err != nil {
			ok = false
			slog.Warn("notification delivery failed",
				"notifier", nt.Name(),
				"title", n.Title,
				"error", err)
			continue
		}
		slog.Debug("notification delivered", "notifier", nt.Name(), "title", n.Title)
	}
	return ok
}
