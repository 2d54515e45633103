package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btouchard/notch-hook/internal/store"
)

func sampleRecords() []store.NotificationRecord {
	return []store.NotificationRecord{
		{
			ID:        2,
			CreatedAt: time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC),
			Project:   "api",
			EventKind: "pre_tool_use",
			ToolName:  "Bash",
			Title:     "[api] 🔀 Running command",
			Message:   "git push...",
			Type:      "tool_use",
			Priority:  2,
			Delivered: true,
			Metadata:  map[string]string{"command_category": "vcs"},
		},
		{
			ID:           1,
			CreatedAt:    time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
			Project:      "api",
			EventKind:    "stop",
			Title:        "[api] 🎉 Session finished",
			Message:      "line one\nline two",
			Type:         "celebration",
			Priority:     2,
			Dangerous:    true,
			DangerReason: "sensitive file: .env",
		},
	}
}

func TestWriteHistory_Plain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteHistory(&buf, sampleRecords(), true, "plain"))

	expected := strings.Join([]string{
		"timestamp\tproject\tevent\ttool\tpriority\tdelivered\ttitle\tmessage",
		"2025-10-02T09:30:00Z\tapi\tpre_tool_use\tBash\t2\ttrue\t[api] 🔀 Running command\tgit push...",
		"2025-10-01T12:00:00Z\tapi\tstop\t\t2\tfalse\t[api] 🎉 Session finished\tline one\\nline two",
	}, "\n") + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteHistory_PlainWithoutHeader(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteHistory(&buf, sampleRecords(), false, "plain"))
	assert.False(t, strings.HasPrefix(buf.String(), "timestamp"))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestWriteHistory_Table(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteHistory(&buf, sampleRecords(), true, "TABLE"))

	out := buf.String()
	assert.Contains(t, out, "EVENT")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "pre_tool_use Bash")
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "failed !")
	assert.Less(t, strings.Index(out, "git push"), strings.Index(out, "Session finished"))
}

func TestWriteHistory_WhenEmpty_TableShowsPlaceholder(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteHistory(&buf, nil, true, ""))
	assert.Contains(t, buf.String(), "(no notifications)")
}

func TestWriteHistory_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteHistory(&buf, sampleRecords(), true, "json"))

	var items []Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, "Bash", items[0].Tool)
	assert.Equal(t, "vcs", items[0].Metadata["command_category"])
	assert.True(t, items[1].Dangerous)
	assert.Equal(t, "sensitive file: .env", items[1].DangerReason)
}

func TestWriteHistory_WhenEmpty_JSONIsEmptyArray(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, WriteHistory(&buf, nil, false, "json"))
	assert.JSONEq(t, "[]", buf.String())
}

func TestWriteHistory_InvalidFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	err := WriteHistory(&buf, sampleRecords(), true, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
