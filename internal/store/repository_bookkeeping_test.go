package store

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

func TestRelatedRepository_ReplaceIsWholesale(t *testing.T) {
	ctx := testContext()
	repo := NewRelatedRepository(newTestSQLite(t), logger.Nop())

	require.NoError(t, repo.ReplaceRelated(ctx, "contractors", "c1", []models.RelatedRecord{
		{ContentItemID: "k1", Payload: json.RawMessage(`{"name":"A"}`)},
		{ContentItemID: "k2", Payload: json.RawMessage(`{"name":"B"}`)},
	}))
	require.NoError(t, repo.ReplaceRelated(ctx, "contractors", "c2", []models.RelatedRecord{
		{ContentItemID: "k9"},
	}))

	require.NoError(t, repo.ReplaceRelated(ctx, "contractors", "c1", []models.RelatedRecord{
		{ContentItemID: "k3", Payload: json.RawMessage(`{"name":"C"}`)},
	}))

	got, err := repo.ListRelated(ctx, "contractors", "c1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "k3", got[0].ContentItemID)
	assert.JSONEq(t, `{"name":"C"}`, string(got[0].Payload))

	other, err := repo.ListRelated(ctx, "contractors", "c2")
	require.NoError(t, err)
	assert.Len(t, other, 1, "other parents untouched")

	require.NoError(t, repo.ReplaceRelated(ctx, "contractors", "c1", nil))
	got, err = repo.ListRelated(ctx, "contractors", "c1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRelatedRepository_RollbackOnInsertError(t *testing.T) {
	db, mock := newMockDB(t, config.DriverSQLite)
	repo := NewRelatedRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM related_records")).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO related_records")).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.ReplaceRelated(testContext(), "payments", "c1", []models.RelatedRecord{{ContentItemID: "p"}})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldSettingsRepository(t *testing.T) {
	ctx := testContext()
	repo := NewFieldSettingsRepository(newTestSQLite(t), logger.Nop())

	ok, err := repo.HasFieldSettings(ctx, models.KindCase, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	fs := models.FieldSettings{Kind: models.KindCase, TypeID: "t1", Payload: json.RawMessage(`[1]`), SyncedAt: time.Now()}
	require.NoError(t, repo.SaveFieldSettings(ctx, fs))
	require.NoError(t, repo.SaveFieldSettings(ctx, fs), "save replaces")

	ok, err = repo.HasFieldSettings(ctx, models.KindCase, "t1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasFieldSettings(ctx, models.KindLicense, "t1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryRepository_NewestFirstWithLimit(t *testing.T) {
	ctx := testContext()
	repo := NewHistoryRepository(newTestSQLite(t), logger.Nop())

	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"h1", "h2", "h3"} {
		require.NoError(t, repo.AppendHistory(ctx, models.HistoryEntry{
			ID:             id,
			Kind:           models.KindAdminNote,
			ContentItemID:  "n" + id,
			OldDisplayText: "old",
			NewDisplayText: "new",
			CorrelationID:  "corr",
			IsForceSync:    i == 2,
			SyncedAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := repo.ListHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "h3", all[0].ID)
	assert.True(t, all[0].IsForceSync)
	assert.Equal(t, models.KindAdminNote, all[0].Kind)
	assert.Equal(t, base.Add(2*time.Minute), all[0].SyncedAt)

	two, err := repo.ListHistory(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestErrorClassifiers(t *testing.T) {
	sqliteC := NewSQLiteErrorClassifier()
	assert.Equal(t, Retryable, sqliteC.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, NonRetryable, sqliteC.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, sqliteC.Classify(errors.New("plain")))
	assert.True(t, sqliteC.IsDuplicate(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, sqliteC.IsDuplicate(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))

	pgC := NewPostgresErrorClassifier()
	assert.Equal(t, Retryable, pgC.Classify(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	assert.Equal(t, NonRetryable, pgC.Classify(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, NonRetryable, pgC.Classify(nil))
	assert.True(t, pgC.IsDuplicate(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))

	db := &DB{errorClassificator: sqliteC}
	assert.True(t, db.IsRetryable(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.False(t, (&DB{}).IsRetryable(errors.New("x")))
}

func TestNewConnect_UnknownDriver(t *testing.T) {
	_, err := NewConnect(testContext(), config.DB{Driver: "mysql", DSN: "x"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
