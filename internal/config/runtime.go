package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/btouchard/notch-hook/internal/project"
)

// ProjectDirEnv names the variable Claude Code sets to the project root.
const ProjectDirEnv = "CLAUDE_PROJECT_DIR"

// Runtime is the per-invocation context derived from the configuration and
// the process environment.
type Runtime struct {
	Project    *project.Project
	PreviewDir string
	SocketPath string
	StartedAt  time.Time
}

// NewRuntime resolves the project from CLAUDE_PROJECT_DIR, falling back to
// the working directory.
func NewRuntime(cfg *Config) (*Runtime, error) {
	root := os.Getenv(ProjectDirEnv)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving project directory: %w", err)
		}
		slog.Warn(ProjectDirEnv+" not set, falling back to working directory", "path", wd)
		root = wd
	}
	return newRuntime(cfg, root, time.Now()), nil
}

func newRuntime(cfg *Config, root string, now time.Time) *Runtime {
	p := project.New(root)
	return &Runtime{
		Project:    p,
		PreviewDir: filepath.Join(cfg.Preview.Dir, p.Name),
		SocketPath: cfg.Socket.Path,
		StartedAt:  now,
	}
}
