// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// ClassifyOptions tunes [Classify] for the caller's path.
type ClassifyOptions struct {
	// PermissionRefresh marks clean rows touched only for permissions with
	// is_permission=1.
	PermissionRefresh bool
	// UpdateOnlyThisRecord selects the targeted refresh used right after a
	// confirmed push. It may overwrite a dirty row.
	UpdateOnlyThisRecord bool
}

// Classify decides what the pull path does with one remote record given the
// local row for the same id (nil when there is none). It has no side effects.
//
// Timestamps are compared as UTC epoch milliseconds. A remote copy that is
// equal to or older than the local one never overwrites content.
func Classify(local *models.Record, remote models.RemoteRecord, opts ClassifyOptions) models.Decision {
	if local == nil {
		return models.Decision{Action: models.ActionCreate}
	}

	if opts.UpdateOnlyThisRecord {
		return models.Decision{Action: models.ActionUpdateOnly}
	}

	switch models.StateOf(local.Flags) {
	case models.StateLocallyDirty, models.StateForceDirty:
		// a pending local edit is never clobbered by a listing refresh
		return models.Decision{Action: models.ActionSkip}
	}

	remoteMs := utils.EpochMillis(remote.ModifiedUTC)
	localMs := utils.EpochMillis(local.ModifiedUTC)
	stale := remoteMs < localMs

	multilineChanged := local.Kind == models.KindCase && remote.IsEnableMultiline != local.IsEnableMultiline
	if remoteMs > localMs || multilineChanged {
		return models.Decision{Action: models.ActionUpdateFull}
	}

	samePerms := local.Permissions == remote.Permissions
	if opts.PermissionRefresh {
		if samePerms && local.Flags.IsPermission {
			return models.Decision{Action: models.ActionSkip, Stale: stale}
		}
		return models.Decision{Action: models.ActionUpdatePermissionOnly, MarkPermission: true, Stale: stale}
	}

	if samePerms {
		return models.Decision{Action: models.ActionSkip, Stale: stale}
	}
	return models.Decision{Action: models.ActionUpdatePermissionOnly, Stale: stale}
}
