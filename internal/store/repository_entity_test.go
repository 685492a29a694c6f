package store

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

func sampleRecord(kind models.EntityKind, id string) models.Record {
	return models.Record{
		ContentItemID: id,
		Kind:          kind,
		DisplayText:   "record " + id,
		ModifiedUTC:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Permissions:   models.Permissions{IsAllowEdit: true},
		Payload:       json.RawMessage(`{"status":"open"}`),
	}
}

func TestEntityRepository_InsertFindGet(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	rec := sampleRecord(models.KindCase, "c1")
	rec.TypeID = "t1"
	rec.IsEnableMultiline = true
	rec.Flags = models.SyncFlags{IsEdited: true, IsPermission: true}
	require.NoError(t, repo.InsertRecord(ctx, rec))

	got, err := repo.FindRecord(ctx, models.KindCase, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)

	missing, err := repo.FindRecord(ctx, models.KindCase, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetRecord(ctx, models.KindCase, "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// same id in another kind table is independent
	other, err := repo.FindRecord(ctx, models.KindLicense, "c1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestEntityRepository_InsertDuplicate(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	require.NoError(t, repo.InsertRecord(ctx, sampleRecord(models.KindForm, "f1")))
	err := repo.InsertRecord(ctx, sampleRecord(models.KindForm, "f1"))
	assert.ErrorIs(t, err, ErrDuplicateRecord)
}

func TestEntityRepository_Updates(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())
	require.NoError(t, repo.InsertRecord(ctx, sampleRecord(models.KindContact, "k1")))

	rec := sampleRecord(models.KindContact, "k1")
	rec.DisplayText = "renamed"
	rec.ModifiedUTC = rec.ModifiedUTC.Add(time.Hour)
	require.NoError(t, repo.UpdateRecord(ctx, rec))

	require.NoError(t, repo.UpdatePermissions(ctx, models.KindContact, "k1",
		models.Permissions{IsAllowViewInspection: true}, true))
	require.NoError(t, repo.UpdateSyncFlags(ctx, models.KindContact, "k1",
		models.SyncFlags{IsForceSync: true, IsPermission: true}))

	got, err := repo.GetRecord(ctx, models.KindContact, "k1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.DisplayText)
	assert.Equal(t, rec.ModifiedUTC, got.ModifiedUTC)
	assert.Equal(t, models.Permissions{IsAllowViewInspection: true}, got.Permissions)
	assert.Equal(t, models.SyncFlags{IsForceSync: true, IsPermission: true}, got.Flags)

	err = repo.UpdateSyncFlags(ctx, models.KindContact, "ghost", models.SyncFlags{})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestEntityRepository_ListDirtyAndCount(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, flags := range []models.SyncFlags{
		{IsEdited: true},
		{},
		{IsForceSync: true},
		{IsPermission: true},
	} {
		rec := sampleRecord(models.KindCase, string(rune('a'+i)))
		rec.ModifiedUTC = base.Add(time.Duration(3-i) * time.Hour)
		rec.Flags = flags
		require.NoError(t, repo.InsertRecord(ctx, rec))
	}

	dirty, err := repo.ListDirty(ctx, models.KindCase, models.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, dirty, 2)
	// oldest first
	assert.Equal(t, "c", dirty[0].ContentItemID)
	assert.Equal(t, "a", dirty[1].ContentItemID)

	n, err := repo.CountDirty(ctx, models.KindCase)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.ListRecords(ctx, models.KindCase, models.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "a", all[0].ContentItemID, "newest first")

	forced, err := repo.ListRecords(ctx, models.KindCase, models.RecordFilter{OnlyForce: true})
	require.NoError(t, err)
	require.Len(t, forced, 1)
	assert.Equal(t, "c", forced[0].ContentItemID)
}

func TestEntityRepository_ListIDs(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	for _, r := range []struct {
		id, parent string
		isNew      bool
	}{
		{"s1", "p1", false},
		{"s2", "p1", true},
		{"s3", "p2", false},
	} {
		rec := sampleRecord(models.KindSetting, r.id)
		rec.ParentID = r.parent
		rec.IsNew = r.isNew
		require.NoError(t, repo.InsertRecord(ctx, rec))
	}

	ids, err := repo.ListIDs(ctx, models.KindSetting, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids)

	ids, err = repo.ListIDs(ctx, models.KindSetting, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids)

	ids, err = repo.ListLocalOnlyIDs(ctx, models.KindSetting, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, ids)

	n, err := repo.DeleteRecords(ctx, models.KindSetting, []string{"s1", "s3", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteRecords(ctx, models.KindSetting, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEntityRepository_DeleteRecords_RootCascades(t *testing.T) {
	ctx := testContext()
	db := newTestSQLite(t)
	repo := NewEntityRepository(db, logger.Nop())
	related := NewRelatedRepository(db, logger.Nop())

	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, repo.InsertRecord(ctx, sampleRecord(models.KindCase, id)))
		require.NoError(t, related.ReplaceRelated(ctx, "payments", id,
			[]models.RelatedRecord{{ContentItemID: "pay-" + id, Payload: json.RawMessage(`{}`)}}))
	}

	synced := sampleRecord(models.KindContact, "ct1")
	synced.ParentID = "c1"
	require.NoError(t, repo.InsertRecord(ctx, synced))

	offline := sampleRecord(models.KindAdminNote, "n1")
	offline.ParentID = "c1"
	offline.IsNew = true
	require.NoError(t, repo.InsertRecord(ctx, offline))

	other := sampleRecord(models.KindContact, "ct2")
	other.ParentID = "c2"
	require.NoError(t, repo.InsertRecord(ctx, other))

	n, err := repo.DeleteRecords(ctx, models.KindCase, []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only root rows are counted")

	gone, err := repo.FindRecord(ctx, models.KindContact, "ct1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	rel, err := related.ListRelated(ctx, "payments", "c1")
	require.NoError(t, err)
	assert.Empty(t, rel)

	// созданные офлайн дочерние записи остаются
	kept, err := repo.GetRecord(ctx, models.KindAdminNote, "n1")
	require.NoError(t, err)
	assert.Equal(t, "c1", kept.ParentID)

	untouched, err := repo.GetRecord(ctx, models.KindContact, "ct2")
	require.NoError(t, err)
	assert.Equal(t, "c2", untouched.ParentID)

	rel, err = related.ListRelated(ctx, "payments", "c2")
	require.NoError(t, err)
	assert.Len(t, rel, 1)
}

func TestEntityRepository_DiscardDraft(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	synced := sampleRecord(models.KindComment, "m1")
	synced.Flags = models.SyncFlags{IsEdited: true, IsSync: true, IsForceSync: true}
	require.NoError(t, repo.InsertRecord(ctx, synced))

	local := sampleRecord(models.KindComment, "m2")
	local.IsNew = true
	local.Flags.IsEdited = true
	require.NoError(t, repo.InsertRecord(ctx, local))

	require.NoError(t, repo.DiscardDraft(ctx, models.KindComment, "m1"))
	got, err := repo.GetRecord(ctx, models.KindComment, "m1")
	require.NoError(t, err)
	assert.False(t, got.Flags.Dirty())
	assert.False(t, got.Flags.IsSync)
	assert.True(t, got.ModifiedUTC.IsZero())

	require.NoError(t, repo.DiscardDraft(ctx, models.KindComment, "m2"))
	gone, err := repo.FindRecord(ctx, models.KindComment, "m2")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, repo.DiscardDraft(ctx, models.KindComment, "m3"), ErrRecordNotFound)
}

func TestEntityRepository_ReplaceRecordID(t *testing.T) {
	ctx := testContext()
	db := newTestSQLite(t)
	repo := NewEntityRepository(db, logger.Nop())
	related := NewRelatedRepository(db, logger.Nop())
	history := NewHistoryRepository(db, logger.Nop())

	root := sampleRecord(models.KindCase, "local-1")
	root.IsNew = true
	require.NoError(t, repo.InsertRecord(ctx, root))

	child := sampleRecord(models.KindAdminNote, "n1")
	child.ParentID = "local-1"
	require.NoError(t, repo.InsertRecord(ctx, child))
	require.NoError(t, related.ReplaceRelated(ctx, "payments", "local-1",
		[]models.RelatedRecord{{ContentItemID: "pay-1", Payload: json.RawMessage(`{}`)}}))
	require.NoError(t, history.AppendHistory(ctx, models.HistoryEntry{
		ID: "h1", Kind: models.KindCase, ContentItemID: "local-1", SyncedAt: time.Now(),
	}))

	require.NoError(t, repo.ReplaceRecordID(ctx, models.KindCase, "local-1", "srv-1"))

	old, err := repo.FindRecord(ctx, models.KindCase, "local-1")
	require.NoError(t, err)
	assert.Nil(t, old)

	renamed, err := repo.GetRecord(ctx, models.KindCase, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, root.DisplayText, renamed.DisplayText)

	gotChild, err := repo.GetRecord(ctx, models.KindAdminNote, "n1")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", gotChild.ParentID)

	rel, err := related.ListRelated(ctx, "payments", "srv-1")
	require.NoError(t, err)
	assert.Len(t, rel, 1)

	entries, err := history.ListHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "srv-1", entries[0].ContentItemID)

	// no-op and missing source
	assert.NoError(t, repo.ReplaceRecordID(ctx, models.KindCase, "srv-1", "srv-1"))
	assert.ErrorIs(t, repo.ReplaceRecordID(ctx, models.KindCase, "ghost", "x"), ErrRecordNotFound)
}

func TestEntityRepository_ReplaceRecordID_TargetExists(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	require.NoError(t, repo.InsertRecord(ctx, sampleRecord(models.KindForm, "local")))
	server := sampleRecord(models.KindForm, "srv")
	server.DisplayText = "server copy"
	require.NoError(t, repo.InsertRecord(ctx, server))

	require.NoError(t, repo.ReplaceRecordID(ctx, models.KindForm, "local", "srv"))

	ids, err := repo.ListIDs(ctx, models.KindForm, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"srv"}, ids)
}

func TestEntityRepository_SetFileReference(t *testing.T) {
	ctx := testContext()
	repo := NewEntityRepository(newTestSQLite(t), logger.Nop())

	rec := sampleRecord(models.KindAttachment, "a1")
	rec.FilePath = "/tmp/photo.jpg"
	require.NoError(t, repo.InsertRecord(ctx, rec))

	require.NoError(t, repo.SetFileReference(ctx, models.KindAttachment, "a1", "blob-77"))

	got, err := repo.GetRecord(ctx, models.KindAttachment, "a1")
	require.NoError(t, err)
	assert.Equal(t, "blob-77", got.FileRef)
	assert.Empty(t, got.FilePath)
}

// ── sqlmock error paths ─────────────────────────────────────────────────────

func TestEntityRepository_InsertExecError(t *testing.T) {
	db, mock := newMockDB(t, config.DriverPostgres)
	repo := NewEntityRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cases")).WillReturnError(errors.New("disk full"))

	err := repo.InsertRecord(testContext(), sampleRecord(models.KindCase, "c1"))
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepository_UpdateNoRows(t *testing.T) {
	db, mock := newMockDB(t, config.DriverPostgres)
	repo := NewEntityRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE licenses SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRecord(testContext(), sampleRecord(models.KindLicense, "l1"))
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepository_ListQueryError(t *testing.T) {
	db, mock := newMockDB(t, config.DriverSQLite)
	repo := NewEntityRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM forms")).WillReturnError(errors.New("boom"))

	_, err := repo.ListDirty(testContext(), models.KindForm, models.RecordFilter{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepository_FindScanError(t *testing.T) {
	db, mock := newMockDB(t, config.DriverSQLite)
	repo := NewEntityRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM cases")).
		WillReturnRows(sqlmock.NewRows([]string{"content_item_id"}).AddRow("c1"))

	_, err := repo.FindRecord(testContext(), models.KindCase, "c1")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestEntityRepository_InvalidKind(t *testing.T) {
	db, _ := newMockDB(t, config.DriverSQLite)
	repo := NewEntityRepository(db, logger.Nop())

	_, err := repo.ListIDs(testContext(), models.EntityKind(42), "")
	assert.ErrorIs(t, err, ErrInvalidKind)
}
