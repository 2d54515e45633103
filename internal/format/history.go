// Package format renders notification history for the terminal.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/btouchard/notch-hook/internal/store"
)

// Item is the JSON shape of one history record.
type Item struct {
	ID           int64             `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	Project      string            `json:"project"`
	Event        string            `json:"event"`
	Tool         string            `json:"tool,omitempty"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	Type         string            `json:"type"`
	Priority     int               `json:"priority"`
	Delivered    bool              `json:"delivered"`
	Dangerous    bool              `json:"dangerous,omitempty"`
	DangerReason string            `json:"danger_reason,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewItem converts a stored record.
func NewItem(r store.NotificationRecord) Item {
	return Item{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Project:      r.Project,
		Event:        r.EventKind,
		Tool:         r.ToolName,
		Title:        r.Title,
		Message:      r.Message,
		Type:         r.Type,
		Priority:     r.Priority,
		Delivered:    r.Delivered,
		Dangerous:    r.Dangerous,
		DangerReason: r.DangerReason,
		Metadata:     r.Metadata,
	}
}

// WriteHistory writes records to w in the requested format.
func WriteHistory(w io.Writer, records []store.NotificationRecord, includeHeader bool, format string) error {
	format = strings.ToLower(format)
	switch format {
	case "", "table":
		return writeHistoryTable(w, records, includeHeader)
	case "plain":
		return writeHistoryPlain(w, records, includeHeader)
	case "json":
		return writeHistoryJSON(w, records)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeHistoryPlain(w io.Writer, records []store.NotificationRecord, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "timestamp\tproject\tevent\ttool\tpriority\tdelivered\ttitle\tmessage"); err != nil {
			return err
		}
	}

	for _, r := range records {
		line := fmt.Sprintf(
			"%s\t%s\t%s\t%s\t%d\t%t\t%s\t%s",
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.Project,
			r.EventKind,
			r.ToolName,
			r.Priority,
			r.Delivered,
			r.Title,
			escapeNewlines(r.Message),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeHistoryJSON(w io.Writer, records []store.NotificationRecord) error {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, NewItem(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}

func writeHistoryTable(w io.Writer, records []store.NotificationRecord, includeHeader bool) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 50},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 60},
		{Number: 6, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Time", "Event", "Prio", "Title", "Message", "Status"})
	}

	for _, r := range records {
		tw.AppendRow(table.Row{
			r.CreatedAt.Local().Format(time.DateTime),
			eventLabel(r),
			r.Priority,
			r.Title,
			escapeNewlines(r.Message),
			status(r),
		})
	}

	if len(records) == 0 {
		tw.AppendRow(table.Row{"-", "(no notifications)", "-", "-", "-", "-"})
	}

	_ = tw.Render()
	return nil
}

func eventLabel(r store.NotificationRecord) string {
	if r.ToolName == "" {
		return r.EventKind
	}
	return r.EventKind + " " + r.ToolName
}

func status(r store.NotificationRecord) string {
	var s string
	if r.Delivered {
		s = "sent"
	} else {
		s = "failed"
	}
	if r.Dangerous {
		s += " !"
	}
	return s
}
