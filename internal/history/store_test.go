// internal/history/store_test.go
package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpi-performance-skill/internal/common/database"
	"kpi-performance-skill/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(&database.PostgresClient{DB: db}, logger.NewTestLogger(t)), mock
}

func TestInsert(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO skill_invocations`).
		WithArgs("inv-1", "kpi-performance", `{"metrics":["Spend"]}`, "completed", "", int64(120), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Insert(context.Background(), &Record{
		ID:         "inv-1",
		Skill:      "kpi-performance",
		Arguments:  json.RawMessage(`{"metrics":["Spend"]}`),
		Status:     "completed",
		DurationMs: 120,
		CreatedAt:  time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordInvocationSwallowsWriteFailures(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO skill_invocations`).
		WillReturnError(assert.AnError)

	// Must not panic or propagate; the invocation path never sees the failure.
	store.RecordInvocation("kpi-performance", "inv-2",
		map[string]interface{}{"metrics": []string{"Spend"}}, "failed", "ANALYSIS_TIMEOUT", 300*time.Millisecond)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordInvocationAssignsIDWhenMissing(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO skill_invocations`).
		WithArgs(sqlmock.AnyArg(), "kpi-performance", "{}", "completed", "", int64(0), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store.RecordInvocation("kpi-performance", "", nil, "completed", "", 0)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecent(t *testing.T) {
	store, mock := newTestStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "skill", "arguments", "status", "error_code", "duration_ms", "created_at"}).
		AddRow("inv-2", "kpi-performance", `{"limit_n":2}`, "completed", "", int64(95), now).
		AddRow("inv-1", "kpi-performance", `{}`, "failed", "ANALYSIS_TIMEOUT", int64(60000), now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT .+ FROM skill_invocations WHERE skill = \$1`).
		WithArgs("kpi-performance", 10).
		WillReturnRows(rows)

	records, err := store.ListRecent(context.Background(), "kpi-performance", 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "inv-2", records[0].ID)
	assert.Equal(t, json.RawMessage(`{"limit_n":2}`), records[0].Arguments)
	assert.Equal(t, "ANALYSIS_TIMEOUT", records[1].ErrorCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentDefaultsLimit(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM skill_invocations WHERE skill = \$1`).
		WithArgs("kpi-performance", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "skill", "arguments", "status", "error_code", "duration_ms", "created_at"}))

	records, err := store.ListRecent(context.Background(), "kpi-performance", 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
