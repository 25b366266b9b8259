package dbmetrics

import (
	"context"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCollector struct {
	mu      sync.Mutex
	queries []string
}

func (c *recordingCollector) ObserveDBQuery(operation, status string, _ float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, operation+":"+status)
}

func (c *recordingCollector) SetDBConnections(int, int, int) {}

func TestDB_ObservesQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	collector := &recordingCollector{}
	db := Wrap(sqlDB, collector)

	mock.ExpectExec("DELETE FROM registered_users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM registered_users").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err = db.ExecContext(context.Background(), "DELETE FROM registered_users WHERE id = $1", 1)
	require.NoError(t, err)

	var id int64
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT id FROM registered_users").Scan(&id))

	assert.Equal(t, []string{"delete:ok", "select:ok"}, collector.queries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "insert", operation("  INSERT INTO x VALUES ($1)"))
	assert.Equal(t, "unknown", operation(""))
}
