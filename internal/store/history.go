package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transform statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// TransformRecord is one row of transform history.
type TransformRecord struct {
	ID          string
	AgentID     string
	Instruction string
	SentText    string
	Reply       string
	Status      string // StatusOK | StatusError
	Error       string
	CreatedAt   time.Time
}

// HistoryStore records completed transforms and lists recent ones,
// newest first.
type HistoryStore interface {
	Record(rec TransformRecord) error
	Recent(limit int) ([]TransformRecord, error)
}

// SQLiteHistoryStore implements HistoryStore backed by SQLite.
type SQLiteHistoryStore struct {
	db *DB
}

// NewSQLiteHistoryStore creates a history store using the given database.
func NewSQLiteHistoryStore(db *DB) *SQLiteHistoryStore {
	return &SQLiteHistoryStore{db: db}
}

// Record inserts a transform record, filling ID and CreatedAt when unset.
func (s *SQLiteHistoryStore) Record(rec TransformRecord) error {
	fillDefaults(&rec)

	_, err := s.db.sql.Exec(
		`INSERT INTO transforms (id, agent_id, instruction, sent_text, reply, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AgentID, rec.Instruction, rec.SentText, rec.Reply,
		rec.Status, rec.Error, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording transform: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQLiteHistoryStore) Recent(limit int) ([]TransformRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.sql.Query(
		`SELECT id, agent_id, instruction, sent_text, reply, status, error, created_at
		 FROM transforms ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transforms: %w", err)
	}
	defer rows.Close()

	var out []TransformRecord
	for rows.Next() {
		var rec TransformRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &rec.AgentID, &rec.Instruction, &rec.SentText,
			&rec.Reply, &rec.Status, &rec.Error, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transform: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func fillDefaults(rec *TransformRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
}
