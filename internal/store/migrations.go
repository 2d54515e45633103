package store

// migrations are applied in order; the index+1 is the schema version.
var migrations = []string{
	`CREATE TABLE notifications (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at    TEXT NOT NULL,
		project       TEXT NOT NULL DEFAULT '',
		event_kind    TEXT NOT NULL,
		tool_name     TEXT NOT NULL DEFAULT '',
		title         TEXT NOT NULL,
		message       TEXT NOT NULL DEFAULT '',
		type          TEXT NOT NULL,
		priority      INTEGER NOT NULL DEFAULT 0,
		metadata      TEXT NOT NULL DEFAULT '{}',
		delivered     INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX idx_notifications_project ON notifications(project, created_at);`,

	`ALTER TABLE notifications ADD COLUMN dangerous INTEGER NOT NULL DEFAULT 0;
	ALTER TABLE notifications ADD COLUMN danger_reason TEXT NOT NULL DEFAULT '';`,
}
