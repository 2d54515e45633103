package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/btouchard/notch-hook/internal/mcp/handlers"
)

func registerTools(s *server.MCPServer, deps *Deps) {
	// list_notifications: recent notifications from the history
	s.AddTool(
		mcp.NewTool("list_notifications",
			mcp.WithDescription("List notifications recently sent to the notch display, newest first. Includes delivery status and flagged dangerous operations."),
			mcp.WithString("project",
				mcp.Description("Filter by project name"),
			),
			mcp.WithString("event",
				mcp.Description("Filter by hook event"),
				mcp.Enum("pre_tool_use", "post_tool_use", "stop", "notification", "session_start", "user_prompt_submit", "pre_compact"),
			),
			mcp.WithBoolean("dangerous_only",
				mcp.Description("Only return notifications flagged as dangerous operations"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of notifications to return (default: 20)"),
			),
			mcp.WithString("since",
				mcp.Description("RFC 3339 datetime, only notifications after this time"),
			),
		),
		handlers.ListNotifications(deps.History),
	)

	// get_preview: read back the last preview diff of a file
	s.AddTool(
		mcp.NewTool("get_preview",
			mcp.WithDescription("Get the last preview diff generated for a file of the current project."),
			mcp.WithString("file_path",
				mcp.Description("Path relative to the project root"),
			),
			mcp.WithString("id",
				mcp.Description("Preview file ID (SHA-256 of the absolute path), as found in a diff_path"),
			),
		),
		handlers.GetPreview(deps.Previews, deps.Project),
	)

	// preview_diff: compute the diff of a pending edit
	s.AddTool(
		mcp.NewTool("preview_diff",
			mcp.WithDescription("Compute the unified diff an edit would produce without modifying the file. With old_text, the first occurrence is replaced by new_text; without it, new_text becomes the whole file."),
			mcp.WithString("file_path",
				mcp.Required(),
				mcp.Description("Path relative to the project root"),
			),
			mcp.WithString("old_text",
				mcp.Description("Text to replace (first occurrence)"),
			),
			mcp.WithString("new_text",
				mcp.Required(),
				mcp.Description("Replacement text, or the full new content when old_text is omitted"),
			),
		),
		handlers.PreviewDiff(deps.Previews, deps.Project),
	)
}
