// Package project holds the working project context and resolves tool paths against it.
package project

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Project is the project the agent session runs in.
type Project struct {
	Root string
	Name string
}

// New returns a Project rooted at root. The name is the last path element.
func New(root string) *Project {
	name := filepath.Base(filepath.Clean(root))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "unknown"
	}
	return &Project{Root: root, Name: name}
}

// Resolve turns a tool-reported path into an absolute path.
// Segments such as "." and ".." are kept as reported, so the path (and the
// preview id derived from it) matches what the agent sent.
//
// Agents sometimes emit "/README.md" for a file at the project root, so a
// leading slash only means "absolute" when that path exists on disk. Otherwise
// the slash is stripped and the path is joined with the project root.
func (p *Project) Resolve(raw string) string {
	if strings.HasPrefix(raw, "/") {
		if _, err := os.Stat(raw); err == nil {
			slog.Debug("using absolute path", "path", raw)
			return raw
		}
		resolved := join(p.Root, strings.TrimLeft(raw, "/"))
		slog.Debug("converted false absolute path", "raw", raw, "path", resolved)
		return resolved
	}

	resolved := join(p.Root, raw)
	slog.Debug("resolved relative path", "raw", raw, "path", resolved)
	return resolved
}

// join appends rel to root without cleaning the result.
func join(root, rel string) string {
	if rel == "" {
		return root
	}
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root + rel
	}
	return root + string(filepath.Separator) + rel
}

// Relative returns path relative to the project root for display.
// Paths outside the root are returned unchanged.
func (p *Project) Relative(path string) string {
	root := strings.TrimRight(p.Root, string(filepath.Separator))
	if root == "" {
		return path
	}
	if rel, ok := strings.CutPrefix(path, root+string(filepath.Separator)); ok {
		return rel
	}
	return path
}
