package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed-width so that stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, zero CGO).
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database and runs migrations.
// The database file is created with 0600 permissions and its parent directory with 0700.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
			if err != nil {
				return nil, fmt.Errorf("creating database file: %w", err)
			}
			_ = f.Close()
		}
	}

	// Several hook processes may write concurrently; wait instead of failing.
	// busy_timeout comes first so that switching to WAL waits too, and
	// transactions take the write lock at BEGIN.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate applies pending migrations in a single transaction so that
// concurrent processes opening a fresh database never apply one twice.
func (s *SQLiteStore) migrate() (err error) {
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting migration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current int
	row := tx.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err = row.Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		slog.Debug("applying migration", "version", i+1)
		if _, err = tx.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Notifications ---

const notificationColumns = `id, created_at, project, event_kind, tool_name, title, message,
	type, priority, metadata, delivered, dangerous, danger_reason`

// RecordNotification inserts r and sets its ID.
func (s *SQLiteStore) RecordNotification(r *NotificationRecord) error {
	md, err := encodeMetadata(r.Metadata)
	if err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(`INSERT INTO notifications (created_at, project, event_kind, tool_name,
		title, message, type, priority, metadata, delivered, dangerous, danger_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(r.CreatedAt), r.Project, r.EventKind, r.ToolName,
		r.Title, r.Message, r.Type, r.Priority, md,
		boolToInt(r.Delivered), boolToInt(r.Dangerous), r.DangerReason)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading notification id: %w", err)
	}
	r.ID = id
	return nil
}

// GetNotification returns the record with the given id.
func (s *SQLiteStore) GetNotification(id int64) (*NotificationRecord, error) {
	row := s.db.QueryRow("SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id)
	return scanNotification(row)
}

// ListNotifications returns records matching f, newest first.
func (s *SQLiteStore) ListNotifications(f NotificationFilter) ([]NotificationRecord, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE 1=1"
	var args []any

	if f.Project != "" {
		query += " AND project = ?"
		args = append(args, f.Project)
	}
	if f.EventKind != "" {
		query += " AND event_kind = ?"
		args = append(args, f.EventKind)
	}
	if f.DangerousOnly {
		query += " AND dangerous = 1"
	}
	if !f.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, formatTime(f.Since))
	}

	query += " ORDER BY created_at DESC, id DESC"

	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []NotificationRecord
	for rows.Next() {
		r, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// --- Maintenance ---

// Cleanup deletes records older than retention and reports how many were removed.
// A non-positive retention keeps everything.
func (s *SQLiteStore) Cleanup(retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := formatTime(time.Now().Add(-retention))

	res, err := s.db.Exec("DELETE FROM notifications WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning notifications: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleaned notifications: %w", err)
	}
	return n, nil
}

// --- Helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(row scanner) (*NotificationRecord, error) {
	var r NotificationRecord
	var createdAt, md string
	var delivered, dangerous int

	err := row.Scan(&r.ID, &createdAt, &r.Project, &r.EventKind, &r.ToolName,
		&r.Title, &r.Message, &r.Type, &r.Priority, &md,
		&delivered, &dangerous, &r.DangerReason)
	if err != nil {
		return nil, fmt.Errorf("scanning notification: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	r.Delivered = delivered != 0
	r.Dangerous = dangerous != 0
	if err := json.Unmarshal([]byte(md), &r.Metadata); err != nil {
		return nil, fmt.Errorf("decoding metadata of notification %d: %w", r.ID, err)
	}

	return &r, nil
}

func encodeMetadata(md map[string]string) (string, error) {
	if md == nil {
		return "{}", nil
	}
	data, err := json.Marshal(md)
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(timeFormat, s)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
