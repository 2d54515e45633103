package dispatch

import (
	"fmt"
	"strings"

	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/notify"
)

func (d *Dispatcher) postToolUse(ev hook.Event) *notify.Notification {
	if ev.Error != "" {
		return d.emitWith("❌", "Tool failed", ev.ToolName+": "+truncate(ev.Error, mediumExcerpt),
			notify.TypeError, notify.PriorityUrgent, map[string]string{
				"event_type":    "tool_error",
				"tool_name":     ev.ToolName,
				"error_message": ev.Error,
			})
	}

	kind := KindOf(ev.ToolName)
	switch kind {
	case ToolMultiEdit:
		path, ok := d.targetPath(kind, ev.ToolInput)
		if !ok {
			return nil
		}
		msg := d.project.Relative(path)
		if count := editCount(ev.ToolInput); count > 0 {
			msg = fmt.Sprintf("%s (%d edits applied)", msg, count)
		}
		return d.emit("✅", "Batch edit complete", msg, notify.TypeSuccess, notify.PriorityLow)
	case ToolIDEReplace, ToolIDECreate:
		path, ok := d.targetPath(kind, ev.ToolInput)
		if !ok {
			return nil
		}
		label := "JetBrains IDE edit complete"
		if kind == ToolIDECreate {
			label = "JetBrains file created"
		}
		return d.emit("✅", label, d.project.Relative(path), notify.TypeSuccess, notify.PriorityLow)
	case ToolEdit, ToolWrite:
		path, ok := d.targetPath(kind, ev.ToolInput)
		if !ok {
			return nil
		}
		return d.emit("✅", "Edit complete", d.project.Relative(path), notify.TypeSuccess, notify.PriorityLow)
	case ToolTask:
		return d.emit("✨", "Agent finished", "AI task complete", notify.TypeSuccess, notify.PriorityNormal)
	case ToolBash:
		summary := outputSummary(ev.ToolOutput)
		if summary == "" {
			return nil
		}
		return d.emit("✅", "Command finished", summary, notify.TypeSuccess, notify.PriorityLow)
	default:
		return nil
	}
}

// outputSummary joins the first two lines of a command's output. The output
// is either a plain string or an object carrying a stdout field.
func outputSummary(out hook.Value) string {
	text, ok := out.Text()
	if !ok {
		text, ok = out.Str("stdout")
	}
	if !ok {
		return ""
	}

	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return ""
	}
	lines := strings.SplitN(text, "\n", 3)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return truncate(strings.Join(lines, " | "), mediumExcerpt)
}
