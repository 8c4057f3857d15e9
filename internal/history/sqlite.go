package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
)

// SQLiteJournal implements Journal using SQLite.
type SQLiteJournal struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteJournal opens (creating if needed) a journal at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, terrors.HistoryFailed("open", err).WithContext("path", dbPath)
	}
	// A second pooled connection to ":memory:" would see a different database.
	db.SetMaxOpenConns(1)

	j := &SQLiteJournal{db: db}
	if err := j.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, terrors.HistoryFailed("initialize schema", err).WithContext("path", dbPath)
	}

	return j, nil
}

func (j *SQLiteJournal) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		task TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		stopped_at INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_task ON sessions(task);
	CREATE INDEX IF NOT EXISTS idx_sessions_stopped_at ON sessions(stopped_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record appends a completed session.
func (j *SQLiteJournal) Record(ctx context.Context, s Session) (Session, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO sessions (id, task, started_at, stopped_at, elapsed_ms) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.Task, s.StartedAt.UnixMilli(), s.StoppedAt.UnixMilli(), s.ElapsedMS,
	)
	if err != nil {
		return s, terrors.HistoryFailed("insert", err).WithContext("task", s.Task)
	}
	return s, nil
}

// List returns sessions matching q, most recently stopped first.
func (j *SQLiteJournal) List(ctx context.Context, q Query) ([]Session, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if q.Task != "" {
		where = append(where, "task = ?")
		args = append(args, q.Task)
	}
	if !q.Since.IsZero() {
		where = append(where, "stopped_at >= ?")
		args = append(args, q.Since.UnixMilli())
	}

	query := "SELECT id, task, started_at, stopped_at, elapsed_ms FROM sessions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY stopped_at DESC, rowid DESC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, terrors.HistoryFailed("query", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			s                Session
			started, stopped int64
		)
		if err := rows.Scan(&s.ID, &s.Task, &started, &stopped, &s.ElapsedMS); err != nil {
			return nil, terrors.HistoryFailed("scan", err)
		}
		s.StartedAt = time.UnixMilli(started)
		s.StoppedAt = time.UnixMilli(stopped)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, terrors.HistoryFailed("iterate", err)
	}

	return sessions, nil
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}
