package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
)

// SQLiteConfig configures the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns the default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/audit.db",
	}
}

// SQLiteStore implements Store on SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the audit database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database")
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema")
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dispatches (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		request_id TEXT NOT NULL,
		commander TEXT,
		command TEXT NOT NULL,
		arguments TEXT,
		handled INTEGER NOT NULL,
		feedback TEXT NOT NULL,
		message TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		results TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_dispatches_timestamp ON dispatches(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_dispatches_commander ON dispatches(commander);
	CREATE INDEX IF NOT EXISTS idx_dispatches_command ON dispatches(command);
	CREATE INDEX IF NOT EXISTS idx_dispatches_feedback ON dispatches(feedback);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores an entry
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	argsJSON, _ := json.Marshal(entry.Arguments)
	var resultsJSON []byte
	if len(entry.Results) > 0 {
		resultsJSON, _ = json.Marshal(entry.Results)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dispatches (id, timestamp, request_id, commander, command, arguments,
			handled, feedback, message, error, duration_ms, results)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, entry.RequestID, entry.Commander, entry.Command, string(argsJSON),
		entry.Handled, entry.Feedback, entry.Message, entry.Error, entry.DurationMS, string(resultsJSON))
	if err != nil {
		return dbError(err, "failed to insert audit entry")
	}
	return nil
}

// Query returns entries matching filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, request_id, commander, command, arguments, handled,
		feedback, message, error, duration_ms, results FROM dispatches WHERE 1=1`
	var args []interface{}

	if filter.Commander != "" {
		query += " AND commander = ?"
		args = append(args, filter.Commander)
	}
	if filter.Command != "" {
		query += " AND command = ?"
		args = append(args, filter.Command)
	}
	if filter.Feedback != "" {
		query += " AND feedback = ?"
		args = append(args, filter.Feedback)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since)
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query audit entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			entry                         Entry
			commander, arguments, errText sql.NullString
			results                       sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.RequestID, &commander, &entry.Command,
			&arguments, &entry.Handled, &entry.Feedback, &entry.Message, &errText, &entry.DurationMS, &results); err != nil {
			return nil, dbError(err, "failed to scan audit entry")
		}

		entry.Commander = commander.String
		entry.Error = errText.String
		if arguments.Valid && arguments.String != "" {
			json.Unmarshal([]byte(arguments.String), &entry.Arguments)
		}
		if results.Valid && results.String != "" {
			json.Unmarshal([]byte(results.String), &entry.Results)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read audit entries")
	}
	return entries, nil
}

// Recent returns the n newest entries
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]*Entry, error) {
	return s.Query(ctx, Filter{Limit: n})
}

// Stats counts entries per feedback type plus the total
func (s *SQLiteStore) Stats(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT feedback, COUNT(*) FROM dispatches GROUP BY feedback`)
	if err != nil {
		return nil, dbError(err, "failed to query audit stats")
	}
	defer rows.Close()

	stats := map[string]int64{"total": 0}
	for rows.Next() {
		var feedback string
		var count int64
		if err := rows.Scan(&feedback, &count); err != nil {
			return nil, dbError(err, "failed to scan audit stats")
		}
		stats[feedback] = count
		stats["total"] += count
	}
	return stats, rows.Err()
}

// Prune removes entries older than olderThan
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, `DELETE FROM dispatches WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune audit entries")
	}
	return result.RowsAffected()
}

// Vacuum compacts the database file
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `VACUUM`)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, message string) error {
	return dlgerror.Wrap(err, message).WithCode(dlgerror.CodeDatabaseError)
}
