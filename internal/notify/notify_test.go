package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortSocketPath keeps socket paths under the sun_path limit.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "nh")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

// listen starts a sink that records one message per connection and
// optionally answers.
func listen(t *testing.T, reply string) (string, <-chan []byte) {
	t.Helper()
	path := shortSocketPath(t)
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	got := make(chan []byte, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			data, _ := io.ReadAll(conn)
			got <- data
			if reply != "" {
				_, _ = conn.Write([]byte(reply))
			}
			_ = conn.Close()
		}
	}()
	return path, got
}

func fixedComposer(elapsed time.Duration) *Composer {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewComposer("claude-code", "demo", "/work/demo", start)
	c.now = func() time.Time { return start.Add(elapsed) }
	return c
}

func TestComposer_Compose_AddsBaselineMetadata(t *testing.T) {
	t.Parallel()

	c := fixedComposer(1500 * time.Millisecond)
	n := c.Compose("title", "msg", TypeInfo, PriorityLow, nil)

	assert.Equal(t, "claude-code", n.Metadata["source"])
	assert.Equal(t, "demo", n.Metadata["project"])
	assert.Equal(t, "/work/demo", n.Metadata["project_path"])
	assert.Equal(t, "1.5", n.Metadata["session_duration"])
	assert.Equal(t, TypeInfo, n.Type)
}

func TestComposer_Compose_ExtraMetadataWins(t *testing.T) {
	t.Parallel()

	c := fixedComposer(0)
	n := c.Compose("t", "m", TypeError, PriorityUrgent, map[string]string{
		"project":   "override",
		"tool_name": "Bash",
	})

	assert.Equal(t, "override", n.Metadata["project"])
	assert.Equal(t, "Bash", n.Metadata["tool_name"])
	assert.Equal(t, "claude-code", n.Metadata["source"])
}

func TestComposer_Title(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[demo] 🎉 Session finished", fixedComposer(0).Title("🎉", "Session finished"))
}

func TestNotification_WireFormat(t *testing.T) {
	t.Parallel()

	n := Notification{Title: "t", Message: "m", Type: TypeSuccess, Priority: PriorityHigh, Metadata: map[string]string{"k": "v"}}
	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","message":"m","type":"success","priority":2,"metadata":{"k":"v"}}`, string(data))
}

func TestSocketNotifier_Send_WritesJSON(t *testing.T) {
	t.Parallel()

	path, got := listen(t, `{"ok":true}`)
	s := NewSocketNotifier(path)

	n := fixedComposer(0).Compose("hello", "world", TypeInfo, PriorityNormal, nil)
	require.NoError(t, s.Send(context.Background(), n))

	select {
	case data := <-got:
		var decoded Notification
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "hello", decoded.Title)
		assert.Equal(t, "world", decoded.Message)
		assert.Equal(t, PriorityNormal, decoded.Priority)
	case <-time.After(5 * time.Second):
		t.Fatal("sink did not receive the notification")
	}
}

func TestSocketNotifier_Send_WhenNoReply_Succeeds(t *testing.T) {
	t.Parallel()

	path, got := listen(t, "")
	s := NewSocketNotifier(path)

	require.NoError(t, s.Send(context.Background(), Notification{Title: "x"}))
	<-got
}

func TestSocketNotifier_Send_WhenSinkNeverCloses_GivesUpOnReply(t *testing.T) {
	t.Parallel()

	path := shortSocketPath(t)
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		<-release
		_ = conn.Close()
	}()

	s := NewSocketNotifier(path)
	s.ReplyTimeout = 50 * time.Millisecond

	start := time.Now()
	require.NoError(t, s.Send(context.Background(), Notification{Title: "x"}))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSocketNotifier_Send_WhenNoListener_ReturnsError(t *testing.T) {
	t.Parallel()

	s := NewSocketNotifier(shortSocketPath(t))
	err := s.Send(context.Background(), Notification{Title: "x"})
	assert.Error(t, err)
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) Name() string { return "failing" }

func (f *failingNotifier) Send(context.Context, Notification) error {
	f.calls++
	return errors.New("boom")
}

type recordingNotifier struct{ got []Notification }

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Send(_ context.Context, n Notification) error {
	r.got = append(r.got, n)
	return nil
}

func TestHub_Notify_WhenDeliveryFails_ContinuesAndReportsFalse(t *testing.T) {
	t.Parallel()

	f := &failingNotifier{}
	r := &recordingNotifier{}
	h := NewHub(f, r)

	ok := h.Notify(context.Background(), Notification{Title: "x"})

	assert.False(t, ok)
	assert.Equal(t, 1, f.calls)
	assert.Len(t, r.got, 1)
}

func TestHub_Notify_WhenSocketMissing_DoesNotPanic(t *testing.T) {
	t.Parallel()

	h := NewHub(NewSocketNotifier(shortSocketPath(t)))
	assert.NotPanics(t, func() {
		assert.False(t, h.Notify(context.Background(), Notification{Title: "x"}))
	})
}

func TestHub_Notify_WhenAllSucceed_ReportsTrue(t *testing.T) {
	t.Parallel()

	r := &recordingNotifier{}
	assert.True(t, NewHub(r).Notify(context.Background(), Notification{Title: "x"}))
	assert.True(t, NewHub().Notify(context.Background(), Notification{Title: "y"}))
}
