package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"
)

// DefaultReplyTimeout bounds the wait for the display service's reply.
const DefaultReplyTimeout = 2 * time.Second

// SocketNotifier writes notifications to the display service's Unix socket.
// One connection per notification; the optional reply is read and discarded.
type SocketNotifier struct {
	Path string
	// ReplyTimeout bounds the wait for a reply; zero means DefaultReplyTimeout.
	ReplyTimeout time.Duration

	dialer net.Dialer
}

// NewSocketNotifier returns a notifier for the socket at path.
func NewSocketNotifier(path string) *SocketNotifier {
	return &SocketNotifier{Path: path}
}

func (s *SocketNotifier) Name() string { return "socket" }

// Send connects, writes n as JSON and drains the response.
// Only connect, encode and write failures are reported.
func (s *SocketNotifier) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	conn, err := s.dialer.DialContext(ctx, "unix", s.Path)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", s.Path, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("writing to socket: %w", err)
	}

	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	timeout := s.ReplyTimeout
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	readBy := time.Now().Add(timeout)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(readBy) {
		readBy = deadline
	}
	_ = conn.SetReadDeadline(readBy)

	// The reply is optional; a failed read still counts as delivered.
	_, _ = io.Copy(io.Discard, conn)

	return nil
}
