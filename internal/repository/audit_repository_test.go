package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alkan41/yakit-takip-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAuditRepositoryInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(models.AuditEditApproved, "admin", "FR-1", "receiptNumber", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), models.AuditLog{
		Action:    models.AuditEditApproved,
		Actor:     "admin",
		Subject:   "FR-1",
		Detail:    "receiptNumber",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "action", "actor", "subject", "detail", "created_at"}).
		AddRow(2, models.AuditEditRejected, "admin", "FR-2", "", time.Now()).
		AddRow(1, models.AuditEditApproved, "admin", "FR-1", "", time.Now())
	mock.ExpectQuery("SELECT id, action, actor, subject, detail, created_at").
		WithArgs(10).
		WillReturnRows(rows)

	entries, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditEditRejected, entries[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
