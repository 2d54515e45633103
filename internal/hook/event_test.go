package hook

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind_AcceptsBothNamingConventions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pascal string
		snake  string
		want   Kind
	}{
		{"PreToolUse", "pre_tool_use", KindPreToolUse},
		{"PostToolUse", "post_tool_use", KindPostToolUse},
		{"Stop", "stop", KindStop},
		{"Notification", "notification", KindNotification},
		{"SessionStart", "session_start", KindSessionStart},
		{"UserPromptSubmit", "user_prompt_submit", KindUserPromptSubmit},
		{"PreCompact", "pre_compact", KindPreCompact},
	}

	for _, tt := range tests {
		t.Run(tt.pascal, func(t *testing.T) {
			t.Parallel()
			k1, ok1 := ParseKind(tt.pascal)
			k2, ok2 := ParseKind(tt.snake)
			assert.True(t, ok1)
			assert.True(t, ok2)
			assert.Equal(t, tt.want, k1)
			assert.Equal(t, k1, k2)
		})
	}
}

func TestParseKind_WhenUnknown_ReturnsKindUnknown(t *testing.T) {
	t.Parallel()

	k, ok := ParseKind("SubagentStop")
	assert.False(t, ok)
	assert.Equal(t, KindUnknown, k)

	k, ok = ParseKind("")
	assert.False(t, ok)
	assert.Equal(t, KindUnknown, k)
}

func TestDecode_ParsesToolEvent(t *testing.T) {
	t.Parallel()

	input := `{
		"hook_event_name": "PreToolUse",
		"session_id": "abc",
		"tool_name": "Edit",
		"tool_input": {"file_path": "main.go", "old_string": "a", "new_string": "b"}
	}`

	ev, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, KindPreToolUse, ev.Kind)
	assert.Equal(t, "PreToolUse", ev.Name)
	assert.Equal(t, "Edit", ev.ToolName)
	assert.Equal(t, "abc", ev.SessionID)

	path, ok := ev.ToolInput.Str("file_path")
	assert.True(t, ok)
	assert.Equal(t, "main.go", path)
}

func TestDecode_WhenInvalidJSON_ReturnsMalformedEvent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "{", "not json", "[1,2]", "null"} {
		_, err := Decode(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrMalformedEvent), "input %q", input)
	}
}

func TestDecode_WhenDiscriminatorMissing_ReturnsMalformedEvent(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"tool_name": "Bash"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = Decode(strings.NewReader(`{"hook_event_name": "  "}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestDecode_WhenUnknownKind_DecodesWithoutError(t *testing.T) {
	t.Parallel()

	ev, err := Decode(strings.NewReader(`{"hook_event_name": "SubagentStop"}`))
	require.NoError(t, err)
	assert.Equal(t, KindUnknown, ev.Kind)
	assert.Equal(t, "SubagentStop", ev.Name)
}

func TestDecode_FallsBackToToolResponse(t *testing.T) {
	t.Parallel()

	ev, err := Decode(strings.NewReader(`{"hook_event_name": "PostToolUse", "tool_name": "Bash", "tool_response": {"stdout": "ok"}}`))
	require.NoError(t, err)

	out, ok := ev.ToolOutput.Str("stdout")
	assert.True(t, ok)
	assert.Equal(t, "ok", out)
}

func TestDecode_PrefersLegacyToolOutput(t *testing.T) {
	t.Parallel()

	ev, err := Decode(strings.NewReader(`{"hook_event_name": "post_tool_use", "tool_output": "line", "tool_response": "other"}`))
	require.NoError(t, err)

	out, ok := ev.ToolOutput.Text()
	assert.True(t, ok)
	assert.Equal(t, "line", out)
}

func TestEvent_PromptText(t *testing.T) {
	t.Parallel()

	ev, err := Parse([]byte(`{"hook_event_name": "UserPromptSubmit", "tool_input": "allow this?"}`))
	require.NoError(t, err)
	text, ok := ev.PromptText()
	assert.True(t, ok)
	assert.Equal(t, "allow this?", text)

	ev, err = Parse([]byte(`{"hook_event_name": "UserPromptSubmit", "prompt": "yes please"}`))
	require.NoError(t, err)
	text, ok = ev.PromptText()
	assert.True(t, ok)
	assert.Equal(t, "yes please", text)

	ev, err = Parse([]byte(`{"hook_event_name": "UserPromptSubmit", "tool_input": {"x": 1}}`))
	require.NoError(t, err)
	_, ok = ev.PromptText()
	assert.False(t, ok)
}
