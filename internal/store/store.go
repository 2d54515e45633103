package store

import (
	"time"
)

// Store is the persistence interface for the notification history.
type Store interface {
	RecordNotification(r *NotificationRecord) error
	GetNotification(id int64) (*NotificationRecord, error)
	ListNotifications(f NotificationFilter) ([]NotificationRecord, error)

	// Maintenance
	Cleanup(retention time.Duration) (int64, error)
	Close() error
}

// NotificationRecord is one notification as produced by the dispatcher,
// together with its delivery outcome and danger audit.
type NotificationRecord struct {
	ID           int64
	CreatedAt    time.Time
	Project      string
	EventKind    string
	ToolName     string
	Title        string
	Message      string
	Type         string
	Priority     int
	Metadata     map[string]string
	Delivered    bool
	Dangerous    bool
	DangerReason string
}

// NotificationFilter specifies criteria for listing notifications.
type NotificationFilter struct {
	Project       string
	EventKind     string
	DangerousOnly bool
	Limit         int
	Since         time.Time
}
