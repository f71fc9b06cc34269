package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/mlahtinen/taskserv/pkg/api"
)

// SQLite stores task events in SQLite.
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements Journal.
var _ Journal = (*SQLite)(nil)

// NewSQLite creates a SQLite-backed journal on the given database,
// initializing the schema if needed.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS task_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_task_events_task_id ON task_events(task_id, id);
	`)
	return err
}

func (s *SQLite) Append(ctx context.Context, ev api.TaskEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_events (task_id, at, type, name, detail)
		VALUES (?, ?, ?, ?, ?)`,
		int64(ev.TaskID),
		at.UnixNano(),
		string(ev.Type),
		ev.Name,
		ev.Detail,
	)
	return err
}

func (s *SQLite) ListEvents(ctx context.Context, id api.TaskID) ([]api.TaskEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, at, type, name, detail
		FROM task_events
		WHERE task_id = ?
		ORDER BY id ASC`, int64(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.TaskEvent
	for rows.Next() {
		var (
			taskID uint64
			atN    int64
			typ    string
			name   string
			detail string
		)
		if err := rows.Scan(&taskID, &atN, &typ, &name, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.TaskEvent{
			TaskID: api.TaskID(taskID),
			At:     time.Unix(0, atN),
			Type:   api.EventType(typ),
			Name:   name,
			Detail: detail,
		})
	}
	return out, rows.Err()
}
