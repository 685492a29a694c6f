package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// ClientSyncService drives both sync directions against the remote API.
type ClientSyncService interface {
	// IsOnline probes the remote API. Pull and push use it as their
	// connectivity guard.
	IsOnline(ctx context.Context) bool

	// PullAll refreshes cases, then licenses, including their child kinds,
	// related lists and field settings. Rows with a pending local edit are
	// never overwritten. Rows the server no longer lists are pruned once a
	// listing has been read to the end. When offline it returns a summary
	// with Offline set and no error. A failed listing aborts that family
	// only and is returned as an error.
	PullAll(ctx context.Context, sc *SyncContext) (models.PullSummary, error)

	// PullFamily is PullAll restricted to one root kind.
	PullFamily(ctx context.Context, sc *SyncContext, kind models.EntityKind) (models.PullSummary, error)

	// PushAll submits every dirty row in a fixed task order, sequentially.
	// Accepted rows are reconciled with the server copy, their flags are
	// cleared and one history entry is written. Rejected rows stay dirty.
	PushAll(ctx context.Context, sc *SyncContext, isOnline bool) models.PushResult

	// ForceSyncRecord pushes one row so that it overwrites the server copy.
	// It returns 200 on success and 500 otherwise.
	ForceSyncRecord(ctx context.Context, kind models.EntityKind, id string, isOnline bool) int
}

// ClientSyncQueueService is the read side used by the pending and history
// screens, plus draft discarding.
type ClientSyncQueueService interface {
	// ListHistory returns the newest pushes first. Zero limit means all.
	ListHistory(ctx context.Context, limit uint64) ([]models.HistoryEntry, error)
	// ItemsToSync groups dirty rows by their case or license.
	ItemsToSync(ctx context.Context) ([]models.PendingItem, error)
	FetchRecords(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error)
	FetchForSyncScreen(ctx context.Context, kind models.EntityKind) ([]models.Record, error)
	FetchToForceSync(ctx context.Context, kind models.EntityKind) ([]models.Record, error)
	FetchRelated(ctx context.Context, relation, parentID string) ([]models.RelatedRecord, error)
	// DiscardDraft drops a pending local change. Rows never pushed are
	// deleted; others are reset so that the next pull restores them.
	DiscardDraft(ctx context.Context, kind models.EntityKind, id string) error
}

// ClientLocalEditService records offline changes for the next push.
type ClientLocalEditService interface {
	CreateLocal(ctx context.Context, kind models.EntityKind, parentID, displayText string, payload json.RawMessage) (models.Record, error)
	SaveLocalEdit(ctx context.Context, kind models.EntityKind, id, displayText string, payload json.RawMessage, force bool) (models.Record, error)
	AttachFile(ctx context.Context, kind models.EntityKind, id, filePath string) (models.Record, error)
}

// ClientSyncJob defines the contract for a background worker that pulls
// and then pushes on a fixed interval.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the running cycle, signals the goroutine to exit and
	// blocks until it has fully terminated.
	Stop()
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// GetStatus adds the newest push history entry to the version.
	GetStatus(ctx context.Context) (models.AppStatus, error)
}
