// Package notify builds notifications and delivers them to the display service.
package notify

import (
	"fmt"
	"maps"
	"time"
)

// Type is the category tag the display service uses to pick a style.
type Type string

const (
	TypeToolUse      Type = "tool_use"
	TypeSync         Type = "sync"
	TypeAI           Type = "ai"
	TypeInfo         Type = "info"
	TypeDownload     Type = "download"
	TypeReminder     Type = "reminder"
	TypeSuccess      Type = "success"
	TypeError        Type = "error"
	TypeCelebration  Type = "celebration"
	TypeConfirmation Type = "confirmation"
)

// Priority is the urgency of a notification, 0 (lowest) to 3.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

// Notification is the message written to the display service.
type Notification struct {
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Type     Type              `json:"type"`
	Priority Priority          `json:"priority"`
	Metadata map[string]string `json:"metadata"`
}

// Composer fills in the metadata every notification carries.
type Composer struct {
	Source      string
	Project     string
	ProjectPath string
	StartedAt   time.Time

	now func() time.Time
}

// NewComposer returns a Composer whose session clock starts at startedAt.
func NewComposer(source, project, projectPath string, startedAt time.Time) *Composer {
	return &Composer{
		Source:      source,
		Project:     project,
		ProjectPath: projectPath,
		StartedAt:   startedAt,
		now:         time.Now,
	}
}

// Compose builds a notification. Keys in extra override the baseline metadata.
func (c *Composer) Compose(title, message string, typ Type, priority Priority, extra map[string]string) Notification {
	now := time.Now
	if c.now != nil {
		now = c.now
	}

	md := map[string]string{
		"source":           c.Source,
		"project":          c.Project,
		"project_path":     c.ProjectPath,
		"session_duration": fmt.Sprintf("%.1f", now().Sub(c.StartedAt).Seconds()),
	}
	maps.Copy(md, extra)

	return Notification{
		Title:    title,
		Message:  message,
		Type:     typ,
		Priority: priority,
		Metadata: md,
	}
}

// Title formats a notification title for the project.
func (c *Composer) Title(icon, label string) string {
	return fmt.Sprintf("[%s] %s %s", c.Project, icon, label)
}
