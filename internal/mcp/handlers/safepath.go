package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SafePath validates that the requested path stays within the project root.
// This prevents path traversal (e.g. ../../etc/passwd) and symlink escapes.
func SafePath(projectRoot, requestedPath string) (string, error) {
	if filepath.IsAbs(requestedPath) {
		return "", fmt.Errorf("absolute paths are not allowed: %s", requestedPath)
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("resolving project root: %w", err)
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving project root symlinks: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(absRoot, requestedPath))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %s resolves outside project root", requestedPath)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// A preview may target a file that does not exist yet.
		if os.IsNotExist(err) {
			return absPath, nil
		}
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}

	if !strings.HasPrefix(realPath, realRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("symlink escape detected: %s resolves outside project root", requestedPath)
	}

	// Preview IDs are keyed on the path as the hook sees it, not the symlink target.
	return absPath, nil
}
