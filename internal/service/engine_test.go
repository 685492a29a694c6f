package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/mock"
	"github.com/MKhiriev/go-field-sync/models"
)

func newMockEngine(t *testing.T) (*EntityEngine, *mock.MockEntityRepository, *mock.MockReporter) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockEntityRepository(ctrl)
	rep := mock.NewMockReporter(ctrl)
	return NewEntityEngine(repo, rep, logger.Nop()), repo, rep
}

func TestEngine_Store(t *testing.T) {
	e, repo, _ := newMockEngine(t)
	remote := models.RemoteRecord{ContentItemID: "c1", DisplayText: "One", ModifiedUTC: t1, Raw: json.RawMessage(`{"a":1}`)}

	repo.EXPECT().InsertRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec models.Record) error {
		assert.Equal(t, models.KindCase, rec.Kind)
		assert.Equal(t, "c1", rec.ContentItemID)
		assert.Equal(t, t1, rec.ModifiedUTC)
		assert.Equal(t, models.SyncFlags{}, rec.Flags)
		assert.False(t, rec.IsNew)
		return nil
	})

	assert.True(t, e.Store(context.Background(), models.KindCase, remote))
}

func TestEngine_ErrorIsReportedAndFalse(t *testing.T) {
	e, repo, rep := newMockEngine(t)

	repo.EXPECT().InsertRecord(gomock.Any(), gomock.Any()).Return(assert.AnError)
	rep.EXPECT().Report(gomock.Any(), assert.AnError, gomock.Any()).DoAndReturn(func(_ context.Context, _ error, fields map[string]string) {
		assert.Equal(t, "store", fields["op"])
		assert.Equal(t, "c1", fields["content_item_id"])
	})

	assert.False(t, e.Store(context.Background(), models.KindCase, models.RemoteRecord{ContentItemID: "c1"}))
}

func TestEngine_PanicIsRecovered(t *testing.T) {
	e, repo, rep := newMockEngine(t)

	repo.EXPECT().UpdatePermissions(gomock.Any(), models.KindForm, "f1", gomock.Any(), true).
		DoAndReturn(func(context.Context, models.EntityKind, string, models.Permissions, bool) error {
			panic("driver exploded")
		})
	rep.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any())

	assert.NotPanics(t, func() {
		assert.False(t, e.UpdatePermission(context.Background(), models.KindForm, "f1", models.Permissions{}, true))
	})
}

func TestEngine_UpdateKeepsLocalOnlyColumns(t *testing.T) {
	e, repo, _ := newMockEngine(t)
	local := models.Record{
		ContentItemID: "c1",
		Kind:          models.KindAttachment,
		ParentID:      "p1",
		DisplayText:   "old",
		ModifiedUTC:   t0,
		Flags:         models.SyncFlags{IsEdited: true, IsPermission: true},
		FilePath:      "/tmp/x.pdf",
		FileRef:       "ref",
	}
	remote := models.RemoteRecord{ContentItemID: "c1", DisplayText: "new", ModifiedUTC: t1}

	repo.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec models.Record) error {
		assert.Equal(t, "new", rec.DisplayText)
		assert.Equal(t, t1, rec.ModifiedUTC)
		assert.Equal(t, "p1", rec.ParentID)
		assert.Equal(t, "/tmp/x.pdf", rec.FilePath)
		assert.Equal(t, "ref", rec.FileRef)
		assert.False(t, rec.Flags.IsEdited, "push confirmation clears the edit marker")
		assert.False(t, rec.Flags.IsPermission)
		return nil
	})

	assert.True(t, e.Update(context.Background(), models.KindAttachment, local, remote, true))
}

func TestEngine_UpdateOnlyMovesToServerID(t *testing.T) {
	e, repo, _ := newMockEngine(t)
	local := models.Record{ContentItemID: "local-1", Kind: models.KindCase, IsNew: true, Flags: models.SyncFlags{IsEdited: true}}
	remote := models.RemoteRecord{ContentItemID: "srv-1", DisplayText: "Server"}

	gomock.InOrder(
		repo.EXPECT().ReplaceRecordID(gomock.Any(), models.KindCase, "local-1", "srv-1").Return(nil),
		repo.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec models.Record) error {
			assert.Equal(t, "srv-1", rec.ContentItemID)
			assert.False(t, rec.IsNew)
			assert.Equal(t, models.SyncFlags{IsForceSyncSuccess: true}, rec.Flags)
			return nil
		}),
	)

	assert.True(t, e.UpdateOnly(context.Background(), models.KindCase, local, remote, models.SyncFlags{IsForceSyncSuccess: true}))
}

func TestEngine_Apply(t *testing.T) {
	local := &models.Record{ContentItemID: "c1", Kind: models.KindCase, Flags: models.SyncFlags{IsEdited: true}}
	remote := models.RemoteRecord{ContentItemID: "c1", Permissions: models.Permissions{IsAllowEdit: true}}

	t.Run("skip writes nothing", func(t *testing.T) {
		e, _, _ := newMockEngine(t)
		assert.True(t, e.Apply(context.Background(), models.KindCase, models.Decision{Action: models.ActionSkip}, local, remote))
	})

	t.Run("permission only", func(t *testing.T) {
		e, repo, _ := newMockEngine(t)
		repo.EXPECT().UpdatePermissions(gomock.Any(), models.KindCase, "c1", remote.Permissions, true).Return(nil)
		assert.True(t, e.Apply(context.Background(), models.KindCase,
			models.Decision{Action: models.ActionUpdatePermissionOnly, MarkPermission: true}, local, remote))
	})

	t.Run("update only clears local flags", func(t *testing.T) {
		e, repo, _ := newMockEngine(t)
		repo.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec models.Record) error {
			assert.False(t, rec.Flags.Dirty())
			return nil
		})
		assert.True(t, e.Apply(context.Background(), models.KindCase, models.Decision{Action: models.ActionUpdateOnly}, local, remote))
	})

	t.Run("update without local row fails", func(t *testing.T) {
		e, _, rep := newMockEngine(t)
		rep.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any())
		assert.False(t, e.Apply(context.Background(), models.KindCase, models.Decision{Action: models.ActionUpdateFull}, nil, remote))
	})
}
