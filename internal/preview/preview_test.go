package preview

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestFileID_IsStableHexDigest(t *testing.T) {
	t.Parallel()

	id := FileID("/work/app/main.go")
	assert.Len(t, id, 64)
	assert.Equal(t, id, FileID("/work/app/main.go"))
	assert.NotEqual(t, id, FileID("/work/app/main_test.go"))
}

func TestGenerate_WhenEditingExistingFile_ReplacesFirstOccurrence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("foo\nbaz\n"), 0600))

	g := NewGenerator(dir)
	res, err := g.Generate(file, ptr("foo"), ptr("bar"))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Added)
	assert.Equal(t, 1, res.Stats.Removed)
	assert.Equal(t, "bar\nbaz\n", res.Modified)
	assert.True(t, res.Stats.Preview)
	assert.Equal(t, file, res.Stats.File)

	diff, err := os.ReadFile(res.DiffPath)
	require.NoError(t, err)
	assert.Contains(t, string(diff), "--- "+file)
	assert.Contains(t, string(diff), "+++ "+file)
	assert.Contains(t, string(diff), "-foo\n")
	assert.Contains(t, string(diff), "+bar\n")
	assert.Contains(t, string(diff), " baz\n")

	var stats Stats
	data, err := os.ReadFile(res.StatsPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Equal(t, res.Stats, stats)

	// the file itself is never touched
	orig, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "foo\nbaz\n", string(orig))
}

func TestGenerate_OnlyFirstOccurrenceIsReplaced(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "dup.txt")
	require.NoError(t, os.WriteFile(file, []byte("x\nx\n"), 0600))

	res, err := NewGenerator(t.TempDir()).Generate(file, ptr("x"), ptr("y"))
	require.NoError(t, err)
	assert.Equal(t, "y\nx\n", res.Modified)
	assert.Equal(t, 1, res.Stats.Added)
	assert.Equal(t, 1, res.Stats.Removed)
}

func TestGenerate_WhenWritingNewFile_CountsAllLinesAdded(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "new.go")
	content := "package main\n\nfunc main() {}\n"

	res, err := NewGenerator(t.TempDir()).Generate(file, nil, ptr(content))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.Added)
	assert.Equal(t, 0, res.Stats.Removed)
	assert.Equal(t, content, res.Modified)
}

func TestGenerate_WhenWritingWithoutTrailingNewline_CountsLastLine(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "new.txt")

	res, err := NewGenerator(t.TempDir()).Generate(file, nil, ptr("a\nb"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Added)

	diff, err := os.ReadFile(res.DiffPath)
	require.NoError(t, err)
	assert.Contains(t, string(diff), "+a\n+b\n")
}

func TestGenerate_WhenNoFragments_ProducesEmptyDiff(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "same.txt")
	require.NoError(t, os.WriteFile(file, []byte("one\ntwo\n"), 0600))

	res, err := NewGenerator(t.TempDir()).Generate(file, nil, nil)
	require.NoError(t, err)

	assert.Zero(t, res.Stats.Added)
	assert.Zero(t, res.Stats.Removed)

	diff, err := os.ReadFile(res.DiffPath)
	require.NoError(t, err)
	assert.Empty(t, string(diff))
}

func TestGenerate_WhenOldTextNotFound_LeavesContentUnchanged(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("alpha\n"), 0600))

	res, err := NewGenerator(t.TempDir()).Generate(file, ptr("missing"), ptr("x"))
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", res.Modified)
	assert.Zero(t, res.Stats.Added+res.Stats.Removed)
}

func TestGenerate_WhenRepeated_OverwritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(t.TempDir(), "main.go")
	g := NewGenerator(dir)

	first, err := g.Generate(file, nil, ptr("a\n"))
	require.NoError(t, err)
	second, err := g.Generate(file, nil, ptr("a\nb\nc\n"))
	require.NoError(t, err)

	assert.Equal(t, first.DiffPath, second.DiffPath)
	assert.Equal(t, first.StatsPath, second.StatsPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	art, err := g.Load(file)
	require.NoError(t, err)
	assert.Equal(t, 3, art.Stats.Added)
}

func TestGenerate_WhenDirNotWritable_ReturnsError(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	file := filepath.Join(t.TempDir(), "main.go")
	_, err := NewGenerator(blocker).Generate(file, nil, ptr("x\n"))
	assert.Error(t, err)
}

func TestGenerate_WhenTargetUnreadable_ReturnsError(t *testing.T) {
	t.Parallel()

	// a directory exists but cannot be read as a file
	target := t.TempDir()
	_, err := NewGenerator(t.TempDir()).Generate(target, ptr("a"), ptr("b"))
	assert.Error(t, err)
}

func TestGenerate_HandlesMultiByteContent(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "i18n.txt")
	require.NoError(t, os.WriteFile(file, []byte("你好\n🎉 party\n"), 0600))

	res, err := NewGenerator(t.TempDir()).Generate(file, ptr("你好"), ptr("再见"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Modified, "再见\n"))
	assert.Equal(t, 1, res.Stats.Added)
	assert.Equal(t, 1, res.Stats.Removed)
}

func TestLoadID_RejectsInvalidIDs(t *testing.T) {
	t.Parallel()

	g := NewGenerator(t.TempDir())

	_, err := g.LoadID("../../etc/passwd")
	assert.Error(t, err)

	_, err = g.LoadID(FileID("/nope"))
	assert.ErrorIs(t, err, ErrNoPreview)
}
