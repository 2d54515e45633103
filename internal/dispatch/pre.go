package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/notify"
)

func (d *Dispatcher) preToolUse(ev hook.Event) *notify.Notification {
	kind := KindOf(ev.ToolName)
	in := ev.ToolInput
	// Namespaced IDE tools still report their action label without arguments.
	if in.IsZero() && kind != ToolUnknown && kind != ToolIDEGeneric {
		return nil
	}

	switch kind {
	case ToolEdit, ToolWrite:
		return d.preFileEdit(ev, kind)
	case ToolMultiEdit:
		return d.preMultiEdit(ev)
	case ToolIDEReplace:
		return d.preIDEReplace(ev)
	case ToolIDECreate:
		path, ok := d.targetPath(kind, in)
		if !ok {
			return nil
		}
		return d.emit("🆕", "JetBrains create file", d.project.Relative(path), notify.TypeSync, notify.PriorityHigh)
	case ToolIDENavigate:
		// The first present key wins, even when empty.
		target, ok := in.FirstPresent("symbol", "query").Text()
		if !ok {
			target = "unknown target"
		}
		icon, label := navigateAction(ev.ToolName)
		return d.emit(icon, "JetBrains "+label, truncate(target, shortExcerpt), notify.TypeSync, notify.PriorityNormal)
	case ToolIDERun:
		config, ok := in.Str("configuration")
		if !ok {
			config = "default configuration"
		}
		icon, label := runAction(ev.ToolName)
		return d.emit(icon, "JetBrains "+label, config, notify.TypeSync, notify.PriorityHigh)
	case ToolIDETerminal:
		cmd, ok := in.Str("command")
		if !ok {
			return nil
		}
		return d.emit("💻", "JetBrains terminal", truncate(cmd, shortExcerpt), notify.TypeSync, notify.PriorityHigh)
	case ToolBash:
		return d.preBash(in)
	case ToolTask:
		return d.preTask(in)
	case ToolReadOnly:
		return d.preReadOnly(ev.ToolName, in)
	case ToolWeb:
		return d.preWeb(ev.ToolName, in)
	case ToolTodo:
		return d.preTodo(in)
	case ToolIDEGeneric:
		return d.preIDEGeneric(ev.ToolName, in)
	case ToolUnknown:
		return nil
	default:
		return nil
	}
}

// targetPath extracts and resolves the file a mutating tool operates on.
func (d *Dispatcher) targetPath(kind ToolKind, in hook.Value) (string, bool) {
	field := kind.pathField()
	if field == "" {
		return "", false
	}
	raw, ok := in.Str(field)
	if !ok {
		return "", false
	}
	return d.project.Resolve(raw), true
}

// fragments returns the before/after text of an edit; nil means absent.
func fragments(kind ToolKind, in hook.Value) (oldText, newText *string) {
	oldField, newField := kind.fragmentFields()
	if oldField != "" {
		oldText = in.OptStr(oldField)
	}
	if newField != "" {
		newText = in.OptStr(newField)
	}
	return oldText, newText
}

func (d *Dispatcher) preFileEdit(ev hook.Event, kind ToolKind) *notify.Notification {
	path, ok := d.targetPath(kind, ev.ToolInput)
	if !ok {
		return nil
	}
	oldText, newText := fragments(kind, ev.ToolInput)

	if n := d.previewNotification(ev.ToolName, path, oldText, newText, "⏸️", "About to modify", notify.TypeToolUse); n != nil {
		return n
	}
	return d.emit("✏️", "About to modify", d.project.Relative(path), notify.TypeToolUse, notify.PriorityHigh)
}

func (d *Dispatcher) preIDEReplace(ev hook.Event) *notify.Notification {
	path, ok := d.targetPath(ToolIDEReplace, ev.ToolInput)
	if !ok {
		return nil
	}
	oldText, newText := fragments(ToolIDEReplace, ev.ToolInput)

	if oldText != nil && newText != nil {
		if n := d.previewNotification(ev.ToolName, path, oldText, newText, "✏️", "JetBrains IDE edit", notify.TypeSync); n != nil {
			return n
		}
	}
	return d.emit("✏️", "JetBrains IDE edit", d.project.Relative(path), notify.TypeSync, notify.PriorityHigh)
}

// previewNotification generates the preview diff and builds the notification
// carrying it. It returns nil when the preview could not be produced, so the
// caller can fall back to a plain notification.
func (d *Dispatcher) previewNotification(toolName, path string, oldText, newText *string, icon, label string, typ notify.Type) *notify.Notification {
	if d.previews == nil {
		return nil
	}
	res, err := d.previews.Generate(path, oldText, newText)
	if err != nil {
		slog.Warn("preview generation failed", "path", path, "error", err)
		return nil
	}

	slog.Debug("preview generated", "diff_path", res.DiffPath, "added", res.Stats.Added, "removed", res.Stats.Removed)

	msg := fmt.Sprintf("%s (expected +%d -%d)", d.project.Relative(path), res.Stats.Added, res.Stats.Removed)
	return d.emitWith(icon, label, msg, typ, notify.PriorityHigh, map[string]string{
		"tool_name":  toolName,
		"event_type": "PreToolUse",
		"file_path":  path,
		"diff_path":  res.DiffPath,
		"is_preview": "true",
	})
}

func (d *Dispatcher) preMultiEdit(ev hook.Event) *notify.Notification {
	path, ok := d.targetPath(ToolMultiEdit, ev.ToolInput)
	if !ok {
		return nil
	}
	rel := d.project.Relative(path)

	msg := rel + " (batch edit)"
	if count := editCount(ev.ToolInput); count > 0 {
		msg = fmt.Sprintf("%s (%d edits)", rel, count)
	}
	return d.emit("📝", "Batch edit", msg, notify.TypeToolUse, notify.PriorityHigh)
}

func editCount(in hook.Value) int {
	edits, _ := in.Field("edits").Array()
	return len(edits)
}

func (d *Dispatcher) preBash(in hook.Value) *notify.Notification {
	cmd, ok := in.Str("command")
	if !ok {
		return nil
	}
	class := ClassifyCommand(cmd)
	if !class.Notify() {
		return nil
	}
	return d.emitWith(class.Icon, "Running command", truncate(cmd, shortExcerpt)+"...", notify.TypeToolUse, class.Priority,
		map[string]string{"command_category": string(class.Category)})
}

func (d *Dispatcher) preTask(in hook.Value) *notify.Notification {
	subagent, ok := in.Str("subagent_type")
	if !ok {
		subagent = "general-purpose"
	}
	desc, ok := in.Str("description")
	if !ok {
		desc = "AI task in progress"
	}

	icon := "🤖"
	switch subagent {
	case "statusline-setup":
		icon = "⚙️"
	case "output-style-setup":
		icon = "🎨"
	}

	return d.emit(icon, "Agent started", fmt.Sprintf("%s (%s)", desc, subagent), notify.TypeAI, notify.PriorityHigh)
}

func (d *Dispatcher) preReadOnly(toolName string, in hook.Value) *notify.Notification {
	var (
		field string
		icon  string
	)
	switch toolName {
	case "Read":
		field, icon = "file_path", "📖"
	case "Grep":
		field, icon = "pattern", "🔍"
	case "Glob":
		field, icon = "pattern", "📁"
	case "LS":
		field, icon = "path", "📋"
	default:
		return nil
	}

	target, ok := in.Str(field)
	if !ok {
		return nil
	}
	return d.emit(icon, toolName, truncate(target, mediumExcerpt), notify.TypeInfo, notify.PriorityLow)
}

func (d *Dispatcher) preWeb(toolName string, in hook.Value) *notify.Notification {
	target, _ := in.FirstPresent("url", "query").Text()
	icon := "🌐"
	if toolName == "WebSearch" {
		icon = "🔎"
	}
	return d.emit(icon, "Network access", truncate(target, mediumExcerpt), notify.TypeDownload, notify.PriorityNormal)
}

func (d *Dispatcher) preTodo(in hook.Value) *notify.Notification {
	todos, ok := in.Field("todos").Array()
	if !ok {
		return nil
	}
	completed := 0
	for _, t := range todos {
		if status, _ := t.Str("status"); status == "completed" {
			completed++
		}
	}
	return d.emit("📋", "Tasks updated", fmt.Sprintf("Progress: %d/%d completed", completed, len(todos)), notify.TypeReminder, notify.PriorityNormal)
}

func (d *Dispatcher) preIDEGeneric(toolName string, in hook.Value) *notify.Notification {
	action := lookupIDEAction(toolName)
	detail := ideDetail(in)

	// Low-priority lookups are only worth showing when they carry a detail.
	if action.priority == notify.PriorityLow && detail == "" {
		return nil
	}

	msg := detail
	if msg == "" {
		msg = action.label
	}
	return d.emit(action.icon, action.title(), msg, notify.TypeSync, action.priority)
}
