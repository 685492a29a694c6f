package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-field-sync/models"
)

func TestClassify(t *testing.T) {
	editPerms := models.Permissions{IsAllowEdit: true}

	local := func(flags models.SyncFlags, modified bool) *models.Record {
		ts := t0
		if modified {
			ts = t1
		}
		return &models.Record{
			ContentItemID: "c1",
			Kind:          models.KindCase,
			ModifiedUTC:   ts,
			Flags:         flags,
			Permissions:   editPerms,
		}
	}
	tests := []struct {
		name   string
		local  *models.Record
		remote models.RemoteRecord
		opts   ClassifyOptions
		want   models.Decision
	}{
		{
			name:   "no local row creates",
			local:  nil,
			remote: models.RemoteRecord{ContentItemID: "c1", ModifiedUTC: t1},
			want:   models.Decision{Action: models.ActionCreate},
		},
		{
			name:   "clean and remote newer updates fully",
			local:  local(models.SyncFlags{}, false),
			remote: models.RemoteRecord{ModifiedUTC: t1, Permissions: editPerms},
			want:   models.Decision{Action: models.ActionUpdateFull},
		},
		{
			name:   "edited row is skipped even when remote is newer",
			local:  local(models.SyncFlags{IsEdited: true}, false),
			remote: models.RemoteRecord{ModifiedUTC: t1},
			want:   models.Decision{Action: models.ActionSkip},
		},
		{
			name:   "force-dirty row is skipped",
			local:  local(models.SyncFlags{IsForceSync: true}, false),
			remote: models.RemoteRecord{ModifiedUTC: t1},
			want:   models.Decision{Action: models.ActionSkip},
		},
		{
			name:   "tie with same permissions is a no-op",
			local:  local(models.SyncFlags{}, false),
			remote: models.RemoteRecord{ModifiedUTC: t0, Permissions: editPerms},
			want:   models.Decision{Action: models.ActionSkip},
		},
		{
			name:   "stale remote with same permissions is a no-op flagged stale",
			local:  local(models.SyncFlags{}, true),
			remote: models.RemoteRecord{ModifiedUTC: t0, Permissions: editPerms},
			want:   models.Decision{Action: models.ActionSkip, Stale: true},
		},
		{
			name:   "tie with changed permissions patches permissions",
			local:  local(models.SyncFlags{}, false),
			remote: models.RemoteRecord{ModifiedUTC: t0, Permissions: models.Permissions{IsAllowViewInspection: true}},
			want:   models.Decision{Action: models.ActionUpdatePermissionOnly},
		},
		{
			name:   "permission refresh marks the row",
			local:  local(models.SyncFlags{}, false),
			remote: models.RemoteRecord{ModifiedUTC: t0, Permissions: editPerms},
			opts:   ClassifyOptions{PermissionRefresh: true},
			want:   models.Decision{Action: models.ActionUpdatePermissionOnly, MarkPermission: true},
		},
		{
			name:   "permission refresh on an already marked row is a no-op",
			local:  local(models.SyncFlags{IsPermission: true}, false),
			remote: models.RemoteRecord{ModifiedUTC: t0, Permissions: editPerms},
			opts:   ClassifyOptions{PermissionRefresh: true},
			want:   models.Decision{Action: models.ActionSkip},
		},
		{
			name:   "permission-only row still takes newer content",
			local:  local(models.SyncFlags{IsPermission: true}, false),
			remote: models.RemoteRecord{ModifiedUTC: t1},
			want:   models.Decision{Action: models.ActionUpdateFull},
		},
		{
			name:   "targeted refresh overwrites a dirty row",
			local:  local(models.SyncFlags{IsEdited: true, IsForceSync: true}, true),
			remote: models.RemoteRecord{ModifiedUTC: t0},
			opts:   ClassifyOptions{UpdateOnlyThisRecord: true},
			want:   models.Decision{Action: models.ActionUpdateOnly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.local, tt.remote, tt.opts))
		})
	}
}

func TestClassify_CaseMultilineFlag(t *testing.T) {
	local := &models.Record{Kind: models.KindCase, ModifiedUTC: t0}
	remote := models.RemoteRecord{ModifiedUTC: t0, IsEnableMultiline: true}

	assert.Equal(t, models.ActionUpdateFull, Classify(local, remote, ClassifyOptions{}).Action)

	// the secondary flag only matters for cases
	local.Kind = models.KindLicense
	assert.Equal(t, models.ActionSkip, Classify(local, remote, ClassifyOptions{}).Action)
}

func TestClassify_MillisecondGranularity(t *testing.T) {
	local := &models.Record{Kind: models.KindContact, ModifiedUTC: t0}
	remote := models.RemoteRecord{ModifiedUTC: t0.Add(500 * time.Microsecond)}

	assert.Equal(t, models.ActionSkip, Classify(local, remote, ClassifyOptions{}).Action)
}
