package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// entityRepository is the SQL implementation of [EntityRepository].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database interactions are traced with the
// kind and content item id involved.
type entityRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) FindRecord(ctx context.Context, kind models.EntityKind, id string) (*models.Record, error) {
	rec, err := r.getRecord(ctx, r.DB, kind, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *entityRepository) GetRecord(ctx context.Context, kind models.EntityKind, id string) (models.Record, error) {
	return r.getRecord(ctx, r.DB, kind, id)
}

func (r *entityRepository) getRecord(ctx context.Context, q querier, kind models.EntityKind, id string) (models.Record, error) {
	query, args, err := buildSelectRecordQuery(r.builder, kind, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanRecord(q.QueryRowContext(ctx, query, args...), kind)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, kind, id)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.getRecord").
			Stringer("kind", kind).
			Str("content_item_id", id).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

func (r *entityRepository) InsertRecord(ctx context.Context, rec models.Record) error {
	query, args, err := buildInsertRecordQuery(r.builder, rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator != nil && r.errorClassificator.IsDuplicate(err) {
			return fmt.Errorf("%w: %s %s", ErrDuplicateRecord, rec.Kind, rec.ContentItemID)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.InsertRecord").
			Stringer("kind", rec.Kind).
			Str("content_item_id", rec.ContentItemID).
			Msg("failed to insert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *entityRepository) UpdateRecord(ctx context.Context, rec models.Record) error {
	query, args, err := buildUpdateRecordQuery(r.builder, rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "entityRepository.UpdateRecord", rec.Kind, rec.ContentItemID, query, args)
}

func (r *entityRepository) UpdatePermissions(ctx context.Context, kind models.EntityKind, id string, perms models.Permissions, markPermission bool) error {
	query, args, err := buildUpdatePermissionsQuery(r.builder, kind, id, perms, markPermission)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "entityRepository.UpdatePermissions", kind, id, query, args)
}

func (r *entityRepository) UpdateSyncFlags(ctx context.Context, kind models.EntityKind, id string, flags models.SyncFlags) error {
	query, args, err := buildUpdateSyncFlagsQuery(r.builder, kind, id, flags)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "entityRepository.UpdateSyncFlags", kind, id, query, args)
}

func (r *entityRepository) SetFileReference(ctx context.Context, kind models.EntityKind, id, fileRef string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query, args, err := r.builder.Update(table).
		Set("file_ref", fileRef).
		Set("file_path", "").
		Where(sq.Eq{colID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "entityRepository.SetFileReference", kind, id, query, args)
}

// execOne runs a single-row UPDATE and maps zero affected rows to
// [ErrRecordNotFound].
func (r *entityRepository) execOne(ctx context.Context, fn string, kind models.EntityKind, id, query string, args []any) error {
	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Stringer("kind", kind).
			Str("content_item_id", id).
			Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", ErrRecordNotFound, kind, id)
	}

	return nil
}

// ReplaceRecordID implements [EntityRepository]. When newID already exists
// (a pull stored the server copy first) the local row is dropped instead of
// renamed.
func (r *entityRepository) ReplaceRecordID(ctx context.Context, kind models.EntityKind, oldID, newID string) error {
	if oldID == newID || newID == "" {
		return nil
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.getRecord(ctx, tx, kind, oldID); err != nil {
			return err
		}

		_, err := r.getRecord(ctx, tx, kind, newID)
		switch {
		case err == nil:
			if err = r.exec(ctx, tx, r.builder.Delete(table).Where(sq.Eq{colID: oldID})); err != nil {
				return err
			}
		case errors.Is(err, ErrRecordNotFound):
			if err = r.exec(ctx, tx, r.builder.Update(table).Set(colID, newID).Where(sq.Eq{colID: oldID})); err != nil {
				return err
			}
		default:
			return err
		}

		if kind.IsRoot() {
			for _, child := range models.AllKinds {
				if child.IsRoot() {
					continue
				}
				if err := r.exec(ctx, tx, r.builder.Update(child.Table()).
					Set(colParentID, newID).
					Where(sq.Eq{colParentID: oldID})); err != nil {
					return err
				}
			}
			if err := r.exec(ctx, tx, r.builder.Update(tableRelated).
				Set(colParentID, newID).
				Where(sq.Eq{colParentID: oldID})); err != nil {
				return err
			}
		}

		return r.exec(ctx, tx, r.builder.Update(tableHistory).
			Set(colID, newID).
			Where(sq.Eq{colID: oldID, "kind": kind.String()}))
	})
}

func (r *entityRepository) exec(ctx context.Context, q querier, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *entityRepository) ListRecords(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error) {
	return r.listRecords(ctx, kind, filter, false)
}

func (r *entityRepository) ListDirty(ctx context.Context, kind models.EntityKind, filter models.RecordFilter) ([]models.Record, error) {
	filter.OnlyDirty = true
	return r.listRecords(ctx, kind, filter, true)
}

func (r *entityRepository) listRecords(ctx context.Context, kind models.EntityKind, filter models.RecordFilter, oldestFirst bool) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(r.builder, kind, filter, oldestFirst)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.listRecords").
			Stringer("kind", kind).
			Msg("failed to execute query for listing records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Record, 0, 16)
	for rows.Next() {
		rec, scanErr := scanRecord(rows, kind)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.listRecords").
				Stringer("kind", kind).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func (r *entityRepository) ListIDs(ctx context.Context, kind models.EntityKind, parentID string) ([]string, error) {
	return r.listIDs(ctx, kind, parentID, false)
}

func (r *entityRepository) ListLocalOnlyIDs(ctx context.Context, kind models.EntityKind, parentID string) ([]string, error) {
	return r.listIDs(ctx, kind, parentID, true)
}

func (r *entityRepository) listIDs(ctx context.Context, kind models.EntityKind, parentID string, onlyLocal bool) ([]string, error) {
	query, args, err := buildListIDsQuery(r.builder, kind, parentID, onlyLocal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 32)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

// DeleteRecords implements [EntityRepository]. Deleting root rows also
// removes their related lists and every child row that already reached the
// server; children created offline stay for the user to resolve.
func (r *entityRepository) DeleteRecords(ctx context.Context, kind models.EntityKind, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := buildDeleteRecordsQuery(r.builder, kind, ids)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var deleted int64
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if !kind.IsRoot() {
			return nil
		}
		for _, child := range models.AllKinds {
			if child.IsRoot() {
				continue
			}
			if err := r.exec(ctx, tx, r.builder.Delete(child.Table()).
				Where(sq.Eq{colParentID: ids, colIsNew: 0})); err != nil {
				return err
			}
		}
		return r.exec(ctx, tx, r.builder.Delete(tableRelated).Where(sq.Eq{colParentID: ids}))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entityRepository.DeleteRecords").
			Stringer("kind", kind).
			Int("count", len(ids)).
			Msg("failed to delete records")
		return 0, err
	}

	return deleted, nil
}

// DiscardDraft implements [EntityRepository]. Besides clearing the flags it
// zeroes modified_utc so that the next pull restores the server copy.
func (r *entityRepository) DiscardDraft(ctx context.Context, kind models.EntityKind, id string) error {
	rec, err := r.GetRecord(ctx, kind, id)
	if err != nil {
		return err
	}

	if rec.IsNew {
		_, err = r.DeleteRecords(ctx, kind, []string{id})
		return err
	}

	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	set := flagColumns(rec.Flags.Cleared())
	set[colModifiedUTC] = 0

	query, args, err := r.builder.Update(table).
		SetMap(set).
		Where(sq.Eq{colID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "entityRepository.DiscardDraft", kind, id, query, args)
}

func (r *entityRepository) CountDirty(ctx context.Context, kind models.EntityKind) (int, error) {
	query, args, err := buildCountDirtyQuery(r.builder, kind)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = r.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}
