package service

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// EntityEngine applies one classified action to the local store for one
// record. All kinds share one table shape, so the four operations are the
// same for every kind.
//
// None of the operations delete rows. Every operation returns false instead
// of an error: failures and panics are logged and reported, and the caller
// treats the record as "retry on the next cycle".
type EntityEngine struct {
	entities store.EntityRepository
	reporter Reporter
	logger   *logger.Logger
}

func NewEntityEngine(entities store.EntityRepository, reporter Reporter, logger *logger.Logger) *EntityEngine {
	return &EntityEngine{
		entities: entities,
		reporter: reporter,
		logger:   logger,
	}
}

// Store inserts a record that has no local row yet.
func (e *EntityEngine) Store(ctx context.Context, kind models.EntityKind, remote models.RemoteRecord) bool {
	return e.guard(ctx, "store", kind, remote.ContentItemID, func() error {
		return e.entities.InsertRecord(ctx, recordFromRemote(kind, remote))
	})
}

// Update overwrites content and permissions with the remote copy and takes
// its modifiedUtc. Pending-edit markers survive unless fromPush is set.
func (e *EntityEngine) Update(ctx context.Context, kind models.EntityKind, local models.Record, remote models.RemoteRecord, fromPush bool) bool {
	return e.guard(ctx, "update", kind, local.ContentItemID, func() error {
		rec := mergeRemote(kind, local, remote)
		rec.Flags = local.Flags
		rec.Flags.IsPermission = false
		if fromPush {
			rec.Flags.IsEdited = false
		}
		rec.IsNew = local.IsNew
		return e.entities.UpdateRecord(ctx, rec)
	})
}

// UpdateOnly is the targeted refresh of a single record after the server
// accepted it. It overwrites regardless of local flags, stores flags as
// given, and moves the row to the server-assigned id when it differs.
func (e *EntityEngine) UpdateOnly(ctx context.Context, kind models.EntityKind, local models.Record, remote models.RemoteRecord, flags models.SyncFlags) bool {
	return e.guard(ctx, "update_only", kind, local.ContentItemID, func() error {
		if remote.ContentItemID != "" && remote.ContentItemID != local.ContentItemID {
			if err := e.entities.ReplaceRecordID(ctx, kind, local.ContentItemID, remote.ContentItemID); err != nil {
				return fmt.Errorf("replace id %s -> %s: %w", local.ContentItemID, remote.ContentItemID, err)
			}
		}

		rec := mergeRemote(kind, local, remote)
		rec.Flags = flags
		rec.Flags.IsPermission = false
		rec.IsNew = false
		return e.entities.UpdateRecord(ctx, rec)
	})
}

// UpdatePermission patches the permission columns only.
func (e *EntityEngine) UpdatePermission(ctx context.Context, kind models.EntityKind, id string, perms models.Permissions, markPermission bool) bool {
	return e.guard(ctx, "update_permission", kind, id, func() error {
		return e.entities.UpdatePermissions(ctx, kind, id, perms, markPermission)
	})
}

// Apply dispatches a classifier decision. Skip succeeds without writing.
func (e *EntityEngine) Apply(ctx context.Context, kind models.EntityKind, d models.Decision, local *models.Record, remote models.RemoteRecord) bool {
	switch d.Action {
	case models.ActionSkip:
		return true
	case models.ActionCreate:
		return e.Store(ctx, kind, remote)
	}

	if local == nil {
		e.report(ctx, fmt.Errorf("%s without local row", d.Action), "apply", kind, remote.ContentItemID)
		return false
	}

	switch d.Action {
	case models.ActionUpdateFull:
		return e.Update(ctx, kind, *local, remote, false)
	case models.ActionUpdateOnly:
		return e.UpdateOnly(ctx, kind, *local, remote, local.Flags.Cleared())
	case models.ActionUpdatePermissionOnly:
		return e.UpdatePermission(ctx, kind, local.ContentItemID, remote.Permissions, d.MarkPermission)
	}

	e.report(ctx, fmt.Errorf("unknown action %d", d.Action), "apply", kind, remote.ContentItemID)
	return false
}

func (e *EntityEngine) guard(ctx context.Context, op string, kind models.EntityKind, id string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("stack", string(debug.Stack())).Msg("panic in entity engine")
			e.report(ctx, fmt.Errorf("panic: %v", r), op, kind, id)
			ok = false
		}
	}()

	if err := fn(); err != nil {
		e.report(ctx, err, op, kind, id)
		return false
	}
	return true
}

func (e *EntityEngine) report(ctx context.Context, err error, op string, kind models.EntityKind, id string) {
	e.logger.Error().Err(err).
		Str("op", op).
		Str("kind", kind.String()).
		Str("content_item_id", id).
		Msg("entity sync failed")
	e.reporter.Report(ctx, err, map[string]string{
		"op":              op,
		"kind":            kind.String(),
		"content_item_id": id,
	})
}

// mergeRemote lays the remote copy over the local row. Fields the server
// left empty keep their local values; local-only columns are preserved.
func mergeRemote(kind models.EntityKind, local models.Record, remote models.RemoteRecord) models.Record {
	rec := recordFromRemote(kind, remote)
	if rec.ContentItemID == "" {
		rec.ContentItemID = local.ContentItemID
	}
	if rec.ParentID == "" {
		rec.ParentID = local.ParentID
	}
	if rec.TypeID == "" {
		rec.TypeID = local.TypeID
	}
	if rec.DisplayText == "" {
		rec.DisplayText = local.DisplayText
	}
	if remote.Category == "" {
		rec.Category = models.NormalizeCategory(kind, local.Category)
	}
	if rec.ModifiedUTC.IsZero() {
		rec.ModifiedUTC = local.ModifiedUTC
	}
	if rec.CorrelationID == "" {
		rec.CorrelationID = local.CorrelationID
	}
	if len(rec.Payload) == 0 {
		rec.Payload = local.Payload
	}
	rec.FilePath = local.FilePath
	rec.FileRef = local.FileRef
	return rec
}
