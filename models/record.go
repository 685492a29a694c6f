package models

import (
	"encoding/json"
	"time"
)

// SyncFlags is the per-row sync bookkeeping persisted as 0/1 columns.
type SyncFlags struct {
	IsEdited           bool `json:"isEdited"`
	IsSync             bool `json:"isSync"`
	IsForceSync        bool `json:"isForceSync"`
	IsForceSyncSuccess bool `json:"isForceSyncSuccess"`
	IsPermission       bool `json:"isPermission"`
}

// Dirty reports whether an un-pushed local change exists.
func (f SyncFlags) Dirty() bool {
	return f.IsEdited || f.IsForceSync
}

// Cleared returns the flags after a confirmed push: edit, in-flight and force
// markers are reset, the rest is kept.
func (f SyncFlags) Cleared() SyncFlags {
	f.IsEdited = false
	f.IsSync = false
	f.IsForceSync = false
	return f
}

// Permissions are the access flags the server sends alongside records.
type Permissions struct {
	IsAllowEdit           bool `json:"isAllowEdit"`
	IsAllowViewInspection bool `json:"isAllowViewInspection"`
	IsAllowAddAdminNotes  bool `json:"isAllowAddAdminNotes"`
}

// Record is one locally cached syncable entity.
type Record struct {
	ContentItemID     string          `json:"contentItemId"`
	Kind              EntityKind      `json:"kind"`
	ParentID          string          `json:"parentId,omitempty"`
	TypeID            string          `json:"typeId,omitempty"`
	DisplayText       string          `json:"displayText"`
	Category          string          `json:"category,omitempty"`
	ModifiedUTC       time.Time       `json:"modifiedUtc"`
	Flags             SyncFlags       `json:"flags"`
	Permissions       Permissions     `json:"permissions"`
	CorrelationID     string          `json:"correlationId,omitempty"`
	IsEnableMultiline bool            `json:"isEnableMultiline"`
	IsNew             bool            `json:"isNew"`
	FilePath          string          `json:"filePath,omitempty"`
	FileRef           string          `json:"fileRef,omitempty"`
	Payload           json.RawMessage `json:"payload,omitempty"`
}

// RecordFilter narrows ListRecords queries. Zero values mean "no constraint".
type RecordFilter struct {
	ParentID string
	TypeID   string
	Category string
	// ExcludeCategory drops rows of this category.
	ExcludeCategory string
	OnlyDirty       bool
	OnlyForce       bool
	OnlyNew         *bool
	WithFile        *bool
	SearchText      string
	Limit           uint64
}

// RelatedRecord is a read-only secondary row (payments, inspections, ...)
// that is replaced wholesale on every refresh of its parent.
type RelatedRecord struct {
	Relation      string          `json:"relation"`
	ParentID      string          `json:"parentId"`
	ContentItemID string          `json:"contentItemId"`
	Payload       json.RawMessage `json:"payload"`
	SyncedAt      time.Time       `json:"syncedAt"`
}

// FieldSettings is the cached field configuration of a case or license type.
type FieldSettings struct {
	Kind     EntityKind      `json:"kind"`
	TypeID   string          `json:"typeId"`
	Payload  json.RawMessage `json:"payload"`
	SyncedAt time.Time       `json:"syncedAt"`
}
