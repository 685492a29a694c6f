// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is the merge-relevant state of a local row, derived from its flags.
type SyncState int

const (
	// StateClean means no local change is pending.
	StateClean SyncState = iota
	// StateLocallyDirty means an edit is pending and may still lose to a newer server copy on push.
	StateLocallyDirty
	// StateForceDirty means an edit is pending and the user chose to overwrite the server.
	StateForceDirty
	// StatePermissionOnly means the row was last touched by a permission refresh only.
	StatePermissionOnly
)

func (s SyncState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateLocallyDirty:
		return "locally_dirty"
	case StateForceDirty:
		return "force_dirty"
	case StatePermissionOnly:
		return "permission_only"
	default:
		return "unknown"
	}
}

// StateOf derives the SyncState of a row from its persisted flags.
func StateOf(f SyncFlags) SyncState {
	switch {
	case f.IsForceSync:
		return StateForceDirty
	case f.IsEdited:
		return StateLocallyDirty
	case f.IsPermission:
		return StatePermissionOnly
	default:
		return StateClean
	}
}

// Action is what the pull path does with one incoming remote record.
type Action int

const (
	ActionSkip Action = iota
	ActionCreate
	ActionUpdateFull
	ActionUpdatePermissionOnly
	ActionUpdateOnly
)

func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionCreate:
		return "create"
	case ActionUpdateFull:
		return "update_full"
	case ActionUpdatePermissionOnly:
		return "update_permission_only"
	case ActionUpdateOnly:
		return "update_only"
	default:
		return "unknown"
	}
}

// Decision is the classifier output for one record.
type Decision struct {
	Action Action
	// MarkPermission sets is_permission=1 together with the permission columns.
	MarkPermission bool
	// Stale is true when the remote copy is strictly older than the local one.
	Stale bool
}

// AppStatus answers GET /api/status.
type AppStatus struct {
	Version string `json:"version"`
	// LastPushAt is the newest history entry, zero before the first push.
	LastPushAt time.Time `json:"lastPushAt"`
	// LastPushedKind is the kind of that entry.
	LastPushedKind EntityKind `json:"lastPushedKind"`
}
