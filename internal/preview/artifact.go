package preview

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrNoPreview is returned when no artifacts exist for a file.
var ErrNoPreview = errors.New("no preview available")

var fileIDPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Artifact is a previously persisted preview.
type Artifact struct {
	ID    string `json:"id"`
	Stats Stats  `json:"stats"`
	Diff  string `json:"diff"`
}

// Load reads back the artifacts stored for path.
func (g *Generator) Load(path string) (*Artifact, error) {
	return g.LoadID(FileID(path))
}

// LoadID reads back the artifacts stored under a file ID.
func (g *Generator) LoadID(id string) (*Artifact, error) {
	if !fileIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid file id %q", id)
	}

	diff, err := os.ReadFile(filepath.Join(g.Dir, id+diffSuffix))
	if os.IsNotExist(err) {
		return nil, ErrNoPreview
	}
	if err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}

	a := &Artifact{ID: id, Diff: string(diff)}

	data, err := os.ReadFile(filepath.Join(g.Dir, id+statsSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoPreview
		}
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	if err := json.Unmarshal(data, &a.Stats); err != nil {
		return nil, fmt.Errorf("parsing stats: %w", err)
	}

	return a, nil
}
