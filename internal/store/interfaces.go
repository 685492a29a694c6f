// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// EntityRepository persists syncable records. Every kind lives in its own
// table with an identical column set, so one implementation serves all
// kinds; kind selects the table.
type EntityRepository interface {
	// FindRecord returns nil without error when no row exists.
	FindRecord(ctx context.Context, kind models.EntityKind, id string) (*models.Record, error)
	// GetRecord returns [ErrRecordNotFound] when no row exists.
	GetRecord(ctx context.Context, kind models.EntityKind, id string) (models.Record, error)

	InsertRecord(ctx context.Context, rec models.Record) error
	// UpdateRecord overwrites content, flags and permissions of rec.
	UpdateRecord(ctx context.Context, rec models.Record) error
	// UpdatePermissions patches the permission columns only. When
	// markPermission is set is_permission becomes 1.
	UpdatePermissions(ctx context.Context, kind models.EntityKind, id string, perms models.Permissions, markPermission bool) error
	UpdateSyncFlags(ctx context.Context, kind models.EntityKind, id string, flags models.SyncFlags) error
	// ReplaceRecordID swaps a locally generated id for the server-assigned
	// one and rebinds children, related rows and history to it.
	ReplaceRecordID(ctx context.Context, kind models.EntityKind, oldID, newID string) error
	SetFileReference(ctx context.Context, kind models.EntityKind, id, fileRef string) error

	ListRecords(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error)
	// ListDirty returns rows with is_edited=1 OR is_force_sync=1, oldest first.
	ListDirty(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error)
	// ListIDs returns all ids of kind, or those under parentID when it is set.
	ListIDs(ctx context.Context, kind models.EntityKind, parentID string) ([]string, error)
	// ListLocalOnlyIDs returns ids created offline and not yet acknowledged.
	ListLocalOnlyIDs(ctx context.Context, kind models.EntityKind, parentID string) ([]string, error)
	// DeleteRecords removes ids of kind. For root kinds the related lists and
	// children already known to the server go in the same transaction.
	DeleteRecords(ctx context.Context, kind models.EntityKind, ids []string) (int64, error)
	// DiscardDraft drops a pending local change. Rows that never reached the
	// server are deleted.
	DiscardDraft(ctx context.Context, kind models.EntityKind, id string) error
	CountDirty(ctx context.Context, kind models.EntityKind) (int, error)
}

// RelatedRepository stores read-only lists attached to a root record
// (contractors, payments, inspections, ...).
type RelatedRepository interface {
	// ReplaceRelated swaps the whole list for (relation, parentID) atomically.
	ReplaceRelated(ctx context.Context, relation, parentID string, records []models.RelatedRecord) error
	ListRelated(ctx context.Context, relation, parentID string) ([]models.RelatedRecord, error)
}

// FieldSettingsRepository caches per-type field configuration.
type FieldSettingsRepository interface {
	HasFieldSettings(ctx context.Context, kind models.EntityKind, typeID string) (bool, error)
	SaveFieldSettings(ctx context.Context, settings models.FieldSettings) error
}

// HistoryRepository is the append-only log of successful pushes.
type HistoryRepository interface {
	AppendHistory(ctx context.Context, entry models.HistoryEntry) error
	// ListHistory returns the newest entries first. A zero limit means all.
	ListHistory(ctx context.Context, limit uint64) ([]models.HistoryEntry, error)
}
