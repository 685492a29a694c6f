package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type fieldSettingsRepository struct {
	*DB
	logger *logger.Logger
}

func NewFieldSettingsRepository(db *DB, logger *logger.Logger) FieldSettingsRepository {
	return &fieldSettingsRepository{DB: db, logger: logger}
}

func (r *fieldSettingsRepository) HasFieldSettings(ctx context.Context, kind models.EntityKind, typeID string) (bool, error) {
	query, args, err := r.builder.Select("COUNT(*)").
		From(tableFieldSettings).
		Where(sq.Eq{"kind": kind.String(), "type_id": typeID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = r.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n > 0, nil
}

// SaveFieldSettings replaces the cached settings for (kind, type id).
func (r *fieldSettingsRepository) SaveFieldSettings(ctx context.Context, fs models.FieldSettings) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		del, args, err := r.builder.Delete(tableFieldSettings).
			Where(sq.Eq{"kind": fs.Kind.String(), "type_id": fs.TypeID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, del, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		ins, args, err := r.builder.Insert(tableFieldSettings).
			Columns("kind", "type_id", "payload", "synced_at").
			Values(fs.Kind.String(), fs.TypeID, payloadText(fs.Payload), utils.EpochMillis(fs.SyncedAt)).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, ins, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
}
