// Package history persists an audit record of every skill invocation.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"kpi-performance-skill/internal/common/database"
	"kpi-performance-skill/internal/common/logger"
)

const insertQuery = `INSERT INTO skill_invocations
	(id, skill, arguments, status, error_code, duration_ms, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listQuery = `SELECT id, skill, arguments, status, error_code, duration_ms, created_at
	FROM skill_invocations WHERE skill = $1 ORDER BY created_at DESC LIMIT $2`

// Record is one stored invocation.
type Record struct {
	ID         string          `json:"id"`
	Skill      string          `json:"skill"`
	Arguments  json.RawMessage `json:"arguments"`
	Status     string          `json:"status"`
	ErrorCode  string          `json:"errorCode,omitempty"`
	DurationMs int64           `json:"durationMs"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Store writes and reads invocation records in PostgreSQL.
type Store struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewStore(db *database.PostgresClient, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "history-store"}),
	}
}

// RecordInvocation implements skillfw.InvocationRecorder. Persistence
// failures are logged, never surfaced to the invocation path.
func (s *Store) RecordInvocation(skill, invocationID string, args map[string]interface{}, status, errorCode string, duration time.Duration) {
	if invocationID == "" {
		invocationID = uuid.NewString()
	}

	argsJSON := []byte("{}")
	if args != nil {
		if encoded, err := json.Marshal(args); err == nil {
			argsJSON = encoded
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Insert(ctx, &Record{
		ID:         invocationID,
		Skill:      skill,
		Arguments:  argsJSON,
		Status:     status,
		ErrorCode:  errorCode,
		DurationMs: duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		s.logger.Error("invocation history write failed", map[string]interface{}{
			"skill": skill,
			"error": err.Error(),
		})
	}
}

// Insert writes one record.
func (s *Store) Insert(ctx context.Context, rec *Record) error {
	_, err := s.db.Exec(ctx, insertQuery,
		rec.ID, rec.Skill, string(rec.Arguments), rec.Status, rec.ErrorCode, rec.DurationMs, rec.CreatedAt)
	return err
}

// ListRecent returns the latest records for one skill, newest first.
func (s *Store) ListRecent(ctx context.Context, skill string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, listQuery, skill, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var args string
		if err := rows.Scan(&rec.ID, &rec.Skill, &args, &rec.Status, &rec.ErrorCode, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Arguments = json.RawMessage(args)
		records = append(records, rec)
	}
	return records, rows.Err()
}
