package dispatch

import (
	"strconv"
	"strings"

	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/notify"
)

// Words that mark a prompt as a confirmation request. Matched as substrings.
var confirmationKeywords = []string{"allow", "deny", "accept", "reject", "yes", "no"}

func (d *Dispatcher) stop() *notify.Notification {
	return d.emit("🎉", "Session finished", "Claude has completed all tasks",
		notify.TypeCelebration, notify.PriorityHigh)
}

func (d *Dispatcher) notification() *notify.Notification {
	return d.emit("🔔", "Your response is needed", "Claude is waiting for your choice, check the Claude Code window",
		notify.TypeReminder, notify.PriorityUrgent)
}

func (d *Dispatcher) sessionStart(ev hook.Event) *notify.Notification {
	sessionID := ev.SessionID
	if sessionID == "" {
		sessionID = strconv.Itoa(d.pid)
	}
	return d.emitWith("🚀", "Session started", "Claude Code session started",
		notify.TypeAI, notify.PriorityLow, map[string]string{
			"event_type": "session_start",
			"session_id": sessionID,
			"project":    d.project.Name,
		})
}

func (d *Dispatcher) userPromptSubmit(ev hook.Event) *notify.Notification {
	text, ok := ev.PromptText()
	if !ok || !containsAny(text, confirmationKeywords) {
		return nil
	}
	return d.emitWith("📋", "Response needed", truncate(text, longExcerpt),
		notify.TypeConfirmation, notify.PriorityUrgent, map[string]string{
			"prompt_type": "user_confirmation",
			"prompt_text": text,
		})
}

func (d *Dispatcher) preCompact() *notify.Notification {
	return d.emit("🗜️", "Memory optimization", "Compacting context to save memory",
		notify.TypeInfo, notify.PriorityLow)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
