package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/btouchard/notch-hook/internal/preview"
	"github.com/btouchard/notch-hook/internal/project"
)

const maxDiffSize = 64 * 1024

// GetPreview returns a handler that reads back the last preview stored for a file.
func GetPreview(g *preview.Generator, p *project.Project) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		id, _ := args["id"].(string)
		filePath, _ := args["file_path"].(string)
		if id == "" && filePath == "" {
			return mcp.NewToolResultError("file_path or id is required"), nil
		}

		var (
			a   *preview.Artifact
			err error
		)
		if id != "" {
			a, err = g.LoadID(id)
		} else {
			var path string
			path, err = SafePath(p.Root, filePath)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Access denied: %s", err)), nil
			}
			a, err = g.Load(path)
		}
		if errors.Is(err, preview.ErrNoPreview) {
			return mcp.NewToolResultText("No preview available for this file."), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load preview: %s", err)), nil
		}

		return mcp.NewToolResultText(renderArtifact(p, a.Stats, a.Diff)), nil
	}
}

// PreviewDiff returns a handler that computes the diff an edit would produce,
// without touching the file itself.
func PreviewDiff(g *preview.Generator, p *project.Project) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		filePath, ok := args["file_path"].(string)
		if !ok || filePath == "" {
			return mcp.NewToolResultError("file_path is required"), nil
		}

		path, err := SafePath(p.Root, filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Access denied: %s", err)), nil
		}

		oldText := optString(args, "old_text")
		newText := optString(args, "new_text")
		if newText == nil {
			return mcp.NewToolResultError("new_text is required"), nil
		}

		res, err := g.Generate(path, oldText, newText)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to generate preview: %s", err)), nil
		}

		a, err := g.Load(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load preview: %s", err)), nil
		}

		return mcp.NewToolResultText(renderArtifact(p, res.Stats, a.Diff)), nil
	}
}

func optString(args map[string]any, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func renderArtifact(p *project.Project, st preview.Stats, diff string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 %s (+%d -%d)\n\n", p.Relative(st.File), st.Added, st.Removed)

	if diff == "" {
		sb.WriteString("No changes.\n")
		return sb.String()
	}

	truncated := false
	if len(diff) > maxDiffSize {
		diff = diff[:maxDiffSize]
		truncated = true
	}
	sb.WriteString("```diff\n")
	sb.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	if truncated {
		sb.WriteString("\n[... diff truncated]\n")
	}
	return sb.String()
}
