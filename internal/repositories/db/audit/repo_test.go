package auditrepo

import (
	"context"
	"errors"
	"ipbtracker/internal/models"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, NewRepository(sqlxDB)
}

func TestAddEntry_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	entry := models.AuditEntry{
		ID:        "a1",
		UserID:    "u1",
		Action:    models.ActionDeleteIPB,
		Details:   "Deleted IPB ID: ipb1",
		Timestamp: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audit_logs (id, user_id, action, details, timestamp) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(entry.ID, entry.UserID, "DELETE_IPB", entry.Details, entry.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.AddEntry(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddEntry_Error(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("db failure"))

	err := repo.AddEntry(context.Background(), models.AuditEntry{ID: "a1"})
	assert.ErrorContains(t, err, "AddEntry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntries_FilteredWithLimit(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT.+FROM audit_logs a.+LIMIT \\$2").
		WithArgs("DELETE_IPB", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "details", "timestamp"}).
			AddRow("a2", "u1", "DELETE_IPB", "Deleted IPB ID: 2", now).
			AddRow("a1", "u1", "DELETE_IPB", "Deleted IPB ID: 1", now.Add(-time.Minute)))

	entries, err := repo.ListEntries(context.Background(), models.AuditFilter{Action: models.ActionDeleteIPB, Limit: 5})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a2", entries[0].ID)
	assert.Equal(t, models.ActionDeleteIPB, entries[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntries_Unfiltered(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery("SELECT.+FROM audit_logs").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "details", "timestamp"}))

	entries, err := repo.ListEntries(context.Background(), models.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
