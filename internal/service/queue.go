package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

type clientSyncQueueService struct {
	entities store.EntityRepository
	related  store.RelatedRepository
	history  store.HistoryRepository

	logger *logger.Logger
}

func NewClientSyncQueueService(repos *store.Repositories, logger *logger.Logger) ClientSyncQueueService {
	return &clientSyncQueueService{
		entities: repos.Entities,
		related:  repos.Related,
		history:  repos.History,
		logger:   logger,
	}
}

func (q *clientSyncQueueService) ListHistory(ctx context.Context, limit uint64) ([]models.HistoryEntry, error) {
	return q.history.ListHistory(ctx, limit)
}

func (q *clientSyncQueueService) FetchRecords(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error) {
	return q.entities.ListRecords(ctx, kind, filter)
}

func (q *clientSyncQueueService) FetchForSyncScreen(ctx context.Context, kind models.EntityKind) ([]models.Record, error) {
	return q.entities.ListDirty(ctx, kind, models.RecordFilter{})
}

func (q *clientSyncQueueService) FetchToForceSync(ctx context.Context, kind models.EntityKind) ([]models.Record, error) {
	return q.entities.ListRecords(ctx, kind, models.RecordFilter{OnlyForce: true})
}

func (q *clientSyncQueueService) FetchRelated(ctx context.Context, relation, parentID string) ([]models.RelatedRecord, error) {
	return q.related.ListRelated(ctx, relation, parentID)
}

func (q *clientSyncQueueService) DiscardDraft(ctx context.Context, kind models.EntityKind, id string) error {
	if err := q.entities.DiscardDraft(ctx, kind, id); err != nil {
		return fmt.Errorf("discard draft %s %s: %w", kind, id, err)
	}
	q.logger.Info().Str("kind", kind.String()).Str("content_item_id", id).Msg("draft discarded")
	return nil
}

// ItemsToSync groups the dirty rows of every kind by the case or license
// they belong to, one PendingItem per root, newest first.
func (q *clientSyncQueueService) ItemsToSync(ctx context.Context) ([]models.PendingItem, error) {
	items := make(map[string]*models.PendingItem)

	for _, kind := range models.AllKinds {
		rows, err := q.entities.ListDirty(ctx, kind, models.RecordFilter{})
		if err != nil {
			return nil, fmt.Errorf("list dirty %s: %w", kind, err)
		}

		for _, rec := range rows {
			rootID := rec.ParentID
			if kind.IsRoot() {
				rootID = rec.ContentItemID
			}

			item, ok := items[rootID]
			if !ok {
				item = &models.PendingItem{RootID: rootID}
				items[rootID] = item
			}
			if kind.IsRoot() {
				item.RootKind = kind
				item.DisplayText = rec.DisplayText
			}

			addArea(item, kind, rec.Flags.IsForceSync)
			item.IsForceSync = item.IsForceSync || rec.Flags.IsForceSync
			if rec.ModifiedUTC.After(item.LastModified) {
				item.LastModified = rec.ModifiedUTC
			}
		}
	}

	out := make([]models.PendingItem, 0, len(items))
	for _, item := range items {
		if item.RootKind == 0 {
			q.resolveRoot(ctx, item)
		}
		out = append(out, *item)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastModified.Equal(out[j].LastModified) {
			return out[i].LastModified.After(out[j].LastModified)
		}
		return out[i].RootID < out[j].RootID
	})

	return out, nil
}

// resolveRoot fills in kind and title of a root that is clean itself but
// has dirty children.
func (q *clientSyncQueueService) resolveRoot(ctx context.Context, item *models.PendingItem) {
	for _, kind := range families {
		rec, err := q.entities.FindRecord(ctx, kind, item.RootID)
		if err != nil {
			q.logger.Warn().Err(err).Str("root_id", item.RootID).Msg("failed to resolve pending root")
			return
		}
		if rec != nil {
			item.RootKind = kind
			item.DisplayText = rec.DisplayText
			return
		}
	}
}

func addArea(item *models.PendingItem, kind models.EntityKind, force bool) {
	for i := range item.Areas {
		if item.Areas[i].Area == kind {
			item.Areas[i].Count++
			item.Areas[i].IsForceSync = item.Areas[i].IsForceSync || force
			return
		}
	}
	item.Areas = append(item.Areas, models.SyncedArea{Area: kind, Count: 1, IsForceSync: force})
}
