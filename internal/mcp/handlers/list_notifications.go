package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/btouchard/notch-hook/internal/store"
)

// HistoryLister reads the notification history.
type HistoryLister interface {
	ListNotifications(f store.NotificationFilter) ([]store.NotificationRecord, error)
}

// ListNotifications returns a handler that lists recent notifications with optional filters.
func ListNotifications(h HistoryLister) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if h == nil {
			return mcp.NewToolResultError("Notification history is disabled (history.enabled: false)"), nil
		}

		args := req.GetArguments()

		filter := store.NotificationFilter{
			Limit: 20,
		}

		if project, ok := args["project"].(string); ok {
			filter.Project = project
		}
		if event, ok := args["event"].(string); ok {
			filter.EventKind = event
		}
		if dangerous, ok := args["dangerous_only"].(bool); ok {
			filter.DangerousOnly = dangerous
		}
		if limit, ok := args["limit"].(float64); ok && limit > 0 {
			filter.Limit = int(limit)
		}
		if since, ok := args["since"].(string); ok && since != "" {
			ts, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid since (expected RFC 3339): %s", since)), nil
			}
			filter.Since = ts
		}

		records, err := h.ListNotifications(filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read history: %s", err)), nil
		}

		if len(records) == 0 {
			return mcp.NewToolResultText("No notifications found matching the given filters."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "🔔 Notifications (%d found)\n\n", len(records))

		for _, r := range records {
			fmt.Fprintf(&sb, "%s **%s** — %s\n", deliveryIcon(r.Delivered), r.Title, r.CreatedAt.Format(time.RFC3339))
			if r.Message != "" {
				fmt.Fprintf(&sb, "  %s\n", r.Message)
			}
			fmt.Fprintf(&sb, "  Event: %s", r.EventKind)
			if r.ToolName != "" {
				fmt.Fprintf(&sb, " | Tool: %s", r.ToolName)
			}
			fmt.Fprintf(&sb, " | Type: %s | Priority: %d\n", r.Type, r.Priority)
			if r.Dangerous {
				fmt.Fprintf(&sb, "  ⚠️ %s\n", r.DangerReason)
			}
			if diff := r.Metadata["diff_path"]; diff != "" {
				fmt.Fprintf(&sb, "  Diff: %s\n", diff)
			}
			sb.WriteString("\n")
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func deliveryIcon(delivered bool) string {
	if delivered {
		return "✅"
	}
	return "❌"
}
