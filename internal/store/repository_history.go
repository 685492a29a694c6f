package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type historyRepository struct {
	*DB
	logger *logger.Logger
}

func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	return &historyRepository{DB: db, logger: logger}
}

func (r *historyRepository) AppendHistory(ctx context.Context, entry models.HistoryEntry) error {
	query, args, err := buildInsertHistoryQuery(r.builder, entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "historyRepository.AppendHistory").
			Str("content_item_id", entry.ContentItemID).
			Msg("failed to append history entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *historyRepository) ListHistory(ctx context.Context, limit uint64) ([]models.HistoryEntry, error) {
	query, args, err := buildListHistoryQuery(r.builder, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0, 16)
	for rows.Next() {
		var (
			e        models.HistoryEntry
			kind     string
			force    int64
			syncedAt int64
		)
		if err = rows.Scan(&e.ID, &kind, &e.ContentItemID, &e.OldDisplayText, &e.NewDisplayText,
			&e.CorrelationID, &force, &syncedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		// unknown kinds from older schema versions stay zero
		e.Kind, _ = models.ParseEntityKind(kind)
		e.IsForceSync = force != 0
		e.SyncedAt = utils.FromEpochMillis(syncedAt)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
