package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type relatedRepository struct {
	*DB
	logger *logger.Logger
}

func NewRelatedRepository(db *DB, logger *logger.Logger) RelatedRepository {
	return &relatedRepository{DB: db, logger: logger}
}

func (r *relatedRepository) ReplaceRelated(ctx context.Context, relation, parentID string, records []models.RelatedRecord) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		query, args, err := r.builder.Delete(tableRelated).
			Where(sq.Eq{"relation": relation, colParentID: parentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if len(records) == 0 {
			return nil
		}

		ins := r.builder.Insert(tableRelated).
			Columns("relation", colParentID, colID, "payload", "synced_at")
		for _, rec := range records {
			ins = ins.Values(relation, parentID, rec.ContentItemID, payloadText(rec.Payload), utils.EpochMillis(rec.SyncedAt))
		}

		query, args, err = ins.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "relatedRepository.ReplaceRelated").
				Str("relation", relation).
				Str("parent_id", parentID).
				Msg("failed to insert related records")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
}

func (r *relatedRepository) ListRelated(ctx context.Context, relation, parentID string) ([]models.RelatedRecord, error) {
	query, args, err := r.builder.Select(colID, "payload", "synced_at").
		From(tableRelated).
		Where(sq.Eq{"relation": relation, colParentID: parentID}).
		OrderBy(colID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.RelatedRecord
	for rows.Next() {
		var (
			rec      = models.RelatedRecord{Relation: relation, ParentID: parentID}
			payload  string
			syncedAt int64
		)
		if err = rows.Scan(&rec.ContentItemID, &payload, &syncedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rec.Payload = json.RawMessage(payload)
		rec.SyncedAt = utils.FromEpochMillis(syncedAt)
		out = append(out, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}
