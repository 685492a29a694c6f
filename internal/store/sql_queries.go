package store

import (
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

const (
	colID          = "content_item_id"
	colParentID    = "parent_id"
	colModifiedUTC = "modified_utc"
	colIsEdited    = "is_edited"
	colIsForceSync = "is_force_sync"
	colIsNew       = "is_new"

	tableRelated       = "related_records"
	tableFieldSettings = "field_settings"
	tableHistory       = "sync_history"
)

// recordColumns is the column order used by every SELECT and INSERT on a
// kind table. scanRecord depends on it.
var recordColumns = []string{
	colID,
	colParentID,
	"type_id",
	"display_text",
	"category",
	colModifiedUTC,
	colIsEdited,
	"is_sync",
	colIsForceSync,
	"is_force_sync_success",
	"is_permission",
	"is_allow_edit",
	"is_allow_view_inspection",
	"is_allow_add_admin_notes",
	"is_enable_multiline",
	colIsNew,
	"correlation_id",
	"file_path",
	"file_ref",
	"payload",
}

var historyColumns = []string{
	"id", "kind", colID, "old_display_text", "new_display_text",
	"correlation_id", "is_force_sync", "synced_at",
}

var dirtyPredicate = sq.Or{sq.Eq{colIsEdited: 1}, sq.Eq{colIsForceSync: 1}}

func tableFor(kind models.EntityKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	return kind.Table(), nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func payloadText(p json.RawMessage) string {
	if len(p) == 0 {
		return "{}"
	}
	return string(p)
}

func flagColumns(f models.SyncFlags) map[string]any {
	return map[string]any{
		colIsEdited:             b2i(f.IsEdited),
		"is_sync":               b2i(f.IsSync),
		colIsForceSync:          b2i(f.IsForceSync),
		"is_force_sync_success": b2i(f.IsForceSyncSuccess),
		"is_permission":         b2i(f.IsPermission),
	}
}

func permissionColumns(p models.Permissions) map[string]any {
	return map[string]any{
		"is_allow_edit":            b2i(p.IsAllowEdit),
		"is_allow_view_inspection": b2i(p.IsAllowViewInspection),
		"is_allow_add_admin_notes": b2i(p.IsAllowAddAdminNotes),
	}
}

func recordValues(rec models.Record) []any {
	return []any{
		rec.ContentItemID,
		rec.ParentID,
		rec.TypeID,
		rec.DisplayText,
		rec.Category,
		utils.EpochMillis(rec.ModifiedUTC),
		b2i(rec.Flags.IsEdited),
		b2i(rec.Flags.IsSync),
		b2i(rec.Flags.IsForceSync),
		b2i(rec.Flags.IsForceSyncSuccess),
		b2i(rec.Flags.IsPermission),
		b2i(rec.Permissions.IsAllowEdit),
		b2i(rec.Permissions.IsAllowViewInspection),
		b2i(rec.Permissions.IsAllowAddAdminNotes),
		b2i(rec.IsEnableMultiline),
		b2i(rec.IsNew),
		rec.CorrelationID,
		rec.FilePath,
		rec.FileRef,
		payloadText(rec.Payload),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner, kind models.EntityKind) (models.Record, error) {
	var (
		rec      models.Record
		modified int64
		flags    [11]int64
		payload  string
	)

	err := s.Scan(
		&rec.ContentItemID,
		&rec.ParentID,
		&rec.TypeID,
		&rec.DisplayText,
		&rec.Category,
		&modified,
		&flags[0], &flags[1], &flags[2], &flags[3], &flags[4],
		&flags[5], &flags[6], &flags[7],
		&flags[8], &flags[9],
		&rec.CorrelationID,
		&rec.FilePath,
		&rec.FileRef,
		&payload,
	)
	if err != nil {
		return models.Record{}, err
	}

	rec.Kind = kind
	rec.ModifiedUTC = utils.FromEpochMillis(modified)
	rec.Flags = models.SyncFlags{
		IsEdited:           flags[0] != 0,
		IsSync:             flags[1] != 0,
		IsForceSync:        flags[2] != 0,
		IsForceSyncSuccess: flags[3] != 0,
		IsPermission:       flags[4] != 0,
	}
	rec.Permissions = models.Permissions{
		IsAllowEdit:           flags[5] != 0,
		IsAllowViewInspection: flags[6] != 0,
		IsAllowAddAdminNotes:  flags[7] != 0,
	}
	rec.IsEnableMultiline = flags[8] != 0
	rec.IsNew = flags[9] != 0
	if payload != "" && payload != "{}" {
		rec.Payload = json.RawMessage(payload)
	}

	return rec, nil
}

func buildSelectRecordQuery(b sq.StatementBuilderType, kind models.EntityKind, id string) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return b.Select(recordColumns...).
		From(table).
		Where(sq.Eq{colID: id}).
		ToSql()
}

func buildInsertRecordQuery(b sq.StatementBuilderType, rec models.Record) (string, []any, error) {
	table, err := tableFor(rec.Kind)
	if err != nil {
		return "", nil, err
	}

	return b.Insert(table).
		Columns(recordColumns...).
		Values(recordValues(rec)...).
		ToSql()
}

func buildUpdateRecordQuery(b sq.StatementBuilderType, rec models.Record) (string, []any, error) {
	table, err := tableFor(rec.Kind)
	if err != nil {
		return "", nil, err
	}

	values := recordValues(rec)
	set := make(map[string]any, len(recordColumns)-1)
	for i, col := range recordColumns {
		if col == colID {
			continue
		}
		set[col] = values[i]
	}

	return b.Update(table).
		SetMap(set).
		Where(sq.Eq{colID: rec.ContentItemID}).
		ToSql()
}

func buildUpdatePermissionsQuery(b sq.StatementBuilderType, kind models.EntityKind, id string, perms models.Permissions, markPermission bool) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	set := permissionColumns(perms)
	if markPermission {
		set["is_permission"] = 1
	}

	return b.Update(table).
		SetMap(set).
		Where(sq.Eq{colID: id}).
		ToSql()
}

func buildUpdateSyncFlagsQuery(b sq.StatementBuilderType, kind models.EntityKind, id string, flags models.SyncFlags) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return b.Update(table).
		SetMap(flagColumns(flags)).
		Where(sq.Eq{colID: id}).
		ToSql()
}

func buildListRecordsQuery(b sq.StatementBuilderType, kind models.EntityKind, filter models.RecordFilter, oldestFirst bool) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	q := b.Select(recordColumns...).From(table)

	if filter.ParentID != "" {
		q = q.Where(sq.Eq{colParentID: filter.ParentID})
	}
	if filter.TypeID != "" {
		q = q.Where(sq.Eq{"type_id": filter.TypeID})
	}
	if filter.Category != "" {
		q = q.Where(sq.Eq{"category": filter.Category})
	}
	if filter.ExcludeCategory != "" {
		q = q.Where(sq.NotEq{"category": filter.ExcludeCategory})
	}
	if filter.OnlyDirty {
		q = q.Where(dirtyPredicate)
	}
	if filter.OnlyForce {
		q = q.Where(sq.Eq{colIsForceSync: 1})
	}
	if filter.OnlyNew != nil {
		q = q.Where(sq.Eq{colIsNew: b2i(*filter.OnlyNew)})
	}
	if filter.WithFile != nil {
		if *filter.WithFile {
			q = q.Where(sq.NotEq{"file_path": ""})
		} else {
			q = q.Where(sq.Eq{"file_path": ""})
		}
	}
	if filter.SearchText != "" {
		q = q.Where(sq.Like{"LOWER(display_text)": "%" + strings.ToLower(filter.SearchText) + "%"})
	}

	if oldestFirst {
		q = q.OrderBy(colModifiedUTC+" ASC", colID)
	} else {
		q = q.OrderBy(colModifiedUTC+" DESC", colID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return q.ToSql()
}

func buildListIDsQuery(b sq.StatementBuilderType, kind models.EntityKind, parentID string, onlyLocal bool) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	q := b.Select(colID).From(table)
	if parentID != "" {
		q = q.Where(sq.Eq{colParentID: parentID})
	}
	if onlyLocal {
		q = q.Where(sq.Eq{colIsNew: 1})
	}

	return q.OrderBy(colID).ToSql()
}

func buildDeleteRecordsQuery(b sq.StatementBuilderType, kind models.EntityKind, ids []string) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return b.Delete(table).
		Where(sq.Eq{colID: ids}).
		ToSql()
}

func buildCountDirtyQuery(b sq.StatementBuilderType, kind models.EntityKind) (string, []any, error) {
	table, err := tableFor(kind)
	if err != nil {
		return "", nil, err
	}

	return b.Select("COUNT(*)").
		From(table).
		Where(dirtyPredicate).
		ToSql()
}

func buildInsertHistoryQuery(b sq.StatementBuilderType, e models.HistoryEntry) (string, []any, error) {
	return b.Insert(tableHistory).
		Columns(historyColumns...).
		Values(
			e.ID,
			e.Kind.String(),
			e.ContentItemID,
			e.OldDisplayText,
			e.NewDisplayText,
			e.CorrelationID,
			b2i(e.IsForceSync),
			utils.EpochMillis(e.SyncedAt),
		).
		ToSql()
}

func buildListHistoryQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	q := b.Select(historyColumns...).
		From(tableHistory).
		OrderBy("synced_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	return q.ToSql()
}
