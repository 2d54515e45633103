// Package hook decodes Claude Code hook events read from stdin.
package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedEvent is returned when the input is not a usable hook event.
var ErrMalformedEvent = errors.New("malformed event")

// Kind is the normalized lifecycle event tag.
type Kind string

const (
	KindPreToolUse       Kind = "pre_tool_use"
	KindPostToolUse      Kind = "post_tool_use"
	KindStop             Kind = "stop"
	KindNotification     Kind = "notification"
	KindSessionStart     Kind = "session_start"
	KindUserPromptSubmit Kind = "user_prompt_submit"
	KindPreCompact       Kind = "pre_compact"
	KindUnknown          Kind = "unknown"
)

var kinds = []Kind{
	KindPreToolUse,
	KindPostToolUse,
	KindStop,
	KindNotification,
	KindSessionStart,
	KindUserPromptSubmit,
	KindPreCompact,
}

// ParseKind maps both "PreToolUse" and "pre_tool_use" style names to a Kind.
// Matching ignores case and word separators.
func ParseKind(name string) (Kind, bool) {
	key := foldName(name)
	if key == "" {
		return KindUnknown, false
	}
	for _, k := range kinds {
		if foldName(string(k)) == key {
			return k, true
		}
	}
	return KindUnknown, false
}

func foldName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Event is one hook invocation.
type Event struct {
	Kind Kind
	// Name is the discriminator exactly as received.
	Name string

	ToolName   string
	ToolInput  Value
	ToolOutput Value
	Error      string

	SessionID string
	Cwd       string
	Prompt    string
}

// wireEvent mirrors the JSON document Claude Code writes to the hook's stdin.
type wireEvent struct {
	HookEventName *string `json:"hook_event_name"`
	ToolName      string  `json:"tool_name"`
	ToolInput     Value   `json:"tool_input"`
	ToolOutput    Value   `json:"tool_output"`
	ToolResponse  Value   `json:"tool_response"`
	Error         string  `json:"error"`
	SessionID     string  `json:"session_id"`
	Cwd           string  `json:"cwd"`
	Prompt        string  `json:"prompt"`
}

// Decode reads r to EOF and parses a single hook event.
// An unrecognized event name is not an error: the event decodes with KindUnknown.
func Decode(r io.Reader) (Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Event{}, fmt.Errorf("reading event: %w", err)
	}
	return Parse(data)
}

// Parse decodes a hook event from raw JSON.
func Parse(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if w.HookEventName == nil || strings.TrimSpace(*w.HookEventName) == "" {
		return Event{}, fmt.Errorf("%w: missing hook_event_name", ErrMalformedEvent)
	}

	kind, _ := ParseKind(*w.HookEventName)

	output := w.ToolOutput
	if output.IsZero() {
		output = w.ToolResponse
	}

	return Event{
		Kind:       kind,
		Name:       *w.HookEventName,
		ToolName:   w.ToolName,
		ToolInput:  w.ToolInput,
		ToolOutput: output,
		Error:      w.Error,
		SessionID:  w.SessionID,
		Cwd:        w.Cwd,
		Prompt:     w.Prompt,
	}, nil
}

// PromptText returns the free text of a prompt-submit event. Older hook
// payloads carry it as a string tool_input, newer ones as "prompt".
func (e Event) PromptText() (string, bool) {
	if s, ok := e.ToolInput.Text(); ok {
		return s, true
	}
	if e.Prompt != "" {
		return e.Prompt, true
	}
	return "", false
}
