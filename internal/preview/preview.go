// Package preview computes the diff a pending file edit would produce and
// persists it where the display service can pick it up.
package preview

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	diffSuffix  = ".preview.diff"
	statsSuffix = ".preview.stats.json"

	contextLines = 3
)

// Stats summarizes a preview diff. Field names are read by the display service.
type Stats struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	File    string `json:"file"`
	Preview bool   `json:"preview"`
}

// Result is the outcome of a preview generation.
type Result struct {
	DiffPath  string
	StatsPath string
	Stats     Stats
	Modified  string
}

// Generator writes preview artifacts into Dir.
type Generator struct {
	Dir string
}

// NewGenerator returns a Generator writing into dir.
func NewGenerator(dir string) *Generator {
	return &Generator{Dir: dir}
}

// FileID returns the artifact key for an absolute file path.
func FileID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

// DiffPath returns where the diff artifact for path is stored.
func (g *Generator) DiffPath(path string) string {
	return filepath.Join(g.Dir, FileID(path)+diffSuffix)
}

// StatsPath returns where the stats artifact for path is stored.
func (g *Generator) StatsPath(path string) string {
	return filepath.Join(g.Dir, FileID(path)+statsSuffix)
}

// Generate previews an edit of path.
//
// With both fragments, the first occurrence of oldText is replaced by newText
// in the current content. With only newText, newText becomes the whole file.
// With neither, the content is unchanged and the diff is empty.
func (g *Generator) Generate(path string, oldText, newText *string) (*Result, error) {
	original, err := readBaseline(path)
	if err != nil {
		return nil, err
	}

	var modified string
	switch {
	case oldText != nil && newText != nil:
		modified = strings.Replace(original, *oldText, *newText, 1)
		if modified == original {
			slog.Debug("preview replacement did not occur", "path", path, "old_text", *oldText)
		}
	case newText != nil:
		modified = *newText
	default:
		modified = original
	}

	a, b := splitLines(original), splitLines(modified)
	added, removed := countChanges(a, b)

	text, err := unifiedDiff(path, a, b)
	if err != nil {
		return nil, fmt.Errorf("building diff: %w", err)
	}

	if err := os.MkdirAll(g.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating preview dir: %w", err)
	}

	res := &Result{
		DiffPath:  g.DiffPath(path),
		StatsPath: g.StatsPath(path),
		Stats: Stats{
			Added:   added,
			Removed: removed,
			File:    path,
			Preview: true,
		},
		Modified: modified,
	}

	if err := os.WriteFile(res.DiffPath, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("writing diff: %w", err)
	}

	data, err := json.Marshal(res.Stats)
	if err != nil {
		return nil, fmt.Errorf("encoding stats: %w", err)
	}
	if err := os.WriteFile(res.StatsPath, data, 0644); err != nil {
		return nil, fmt.Errorf("writing stats: %w", err)
	}

	return res, nil
}

func readBaseline(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the file the agent is about to edit
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// splitLines splits s into lines, each keeping its trailing newline.
// A final line without newline is kept as is.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func countChanges(a, b []string) (added, removed int) {
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			removed += op.I2 - op.I1
			added += op.J2 - op.J1
		case 'd':
			removed += op.I2 - op.I1
		case 'i':
			added += op.J2 - op.J1
		}
	}
	return added, removed
}

func unifiedDiff(path string, a, b []string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminate(a),
		B:        terminate(b),
		FromFile: path,
		ToFile:   path,
		Context:  contextLines,
	})
}

// terminate appends a newline to an unterminated last line so that the
// rendered diff keeps one line per row.
func terminate(lines []string) []string {
	if len(lines) == 0 || strings.HasSuffix(lines[len(lines)-1], "\n") {
		return lines
	}
	out := make([]string, len(lines))
	copy(out, lines)
	out[len(out)-1] += "\n"
	return out
}
