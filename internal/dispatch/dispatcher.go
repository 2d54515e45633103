// Package dispatch maps hook events to notifications and delivers them.
package dispatch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/notify"
	"github.com/btouchard/notch-hook/internal/preview"
	"github.com/btouchard/notch-hook/internal/project"
	"github.com/btouchard/notch-hook/internal/store"
)

// Previewer computes preview diffs for pending edits.
type Previewer interface {
	Generate(path string, oldText, newText *string) (*preview.Result, error)
}

// Recorder persists delivered notifications.
type Recorder interface {
	RecordNotification(r *store.NotificationRecord) error
}

// Deps holds the collaborators a Dispatcher needs.
type Deps struct {
	Project  *project.Project
	Composer *notify.Composer
	Previews Previewer
	Hub      *notify.Hub
	// History is optional.
	History Recorder
}

// Dispatcher turns one hook event into at most one notification.
type Dispatcher struct {
	project  *project.Project
	composer *notify.Composer
	previews Previewer
	hub      *notify.Hub
	history  Recorder
	pid      int
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(deps *Deps) *Dispatcher {
	hub := deps.Hub
	if hub == nil {
		hub = notify.NewHub()
	}
	return &Dispatcher{
		project:  deps.Project,
		composer: deps.Composer,
		previews: deps.Previews,
		hub:      hub,
		history:  deps.History,
		pid:      os.Getpid(),
	}
}

// Handle classifies ev, delivers the resulting notification and records it.
// Delivery and history failures are logged and otherwise ignored.
func (d *Dispatcher) Handle(ctx context.Context, ev hook.Event) {
	slog.Debug("hook event", "event", ev.Name, "tool_name", ev.ToolName)

	if ev.Kind == hook.KindUnknown {
		slog.Debug("unhandled event", "event", ev.Name)
		return
	}

	var sig Signal
	if ev.Kind == hook.KindPreToolUse {
		sig = Inspect(ev.ToolName, ev.ToolInput, d.project)
		if sig.Dangerous {
			slog.Warn("dangerous operation detected",
				"tool_name", ev.ToolName,
				"reason", sig.Reason)
		}
	}

	n := d.Dispatch(ev)
	if n == nil {
		slog.Debug("no notification for event", "event", ev.Name, "tool_name", ev.ToolName)
		return
	}

	delivered := d.hub.Notify(ctx, *n)
	d.record(ev, *n, delivered, sig)
}

// Dispatch returns the notification for ev, or nil when ev is not notified.
// Preview artifacts are written as a side effect for pending file edits.
func (d *Dispatcher) Dispatch(ev hook.Event) *notify.Notification {
	switch ev.Kind {
	case hook.KindPreToolUse:
		return d.preToolUse(ev)
	case hook.KindPostToolUse:
		return d.postToolUse(ev)
	case hook.KindStop:
		return d.stop()
	case hook.KindNotification:
		return d.notification()
	case hook.KindSessionStart:
		return d.sessionStart(ev)
	case hook.KindUserPromptSubmit:
		return d.userPromptSubmit(ev)
	case hook.KindPreCompact:
		return d.preCompact()
	case hook.KindUnknown:
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) record(ev hook.Event, n notify.Notification, delivered bool, sig Signal) {
	if d.history == nil {
		return
	}
	rec := &store.NotificationRecord{
		CreatedAt:    time.Now(),
		Project:      d.project.Name,
		EventKind:    string(ev.Kind),
		ToolName:     ev.ToolName,
		Title:        n.Title,
		Message:      n.Message,
		Type:         string(n.Type),
		Priority:     int(n.Priority),
		Metadata:     n.Metadata,
		Delivered:    delivered,
		Dangerous:    sig.Dangerous,
		DangerReason: sig.Reason,
	}
	if err := d.history.RecordNotification(rec); err != nil {
		slog.Warn("failed to record notification", "error", err)
	}
}

// emit composes a notification without extra metadata.
func (d *Dispatcher) emit(icon, label, message string, typ notify.Type, prio notify.Priority) *notify.Notification {
	return d.emitWith(icon, label, message, typ, prio, nil)
}

func (d *Dispatcher) emitWith(icon, label, message string, typ notify.Type, prio notify.Priority, extra map[string]string) *notify.Notification {
	n := d.composer.Compose(d.composer.Title(icon, label), message, typ, prio, extra)
	return &n
}
