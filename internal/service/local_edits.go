package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

type clientLocalEditService struct {
	entities  store.EntityRepository
	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

func NewClientLocalEditService(repos *store.Repositories, logger *logger.Logger) ClientLocalEditService {
	return &clientLocalEditService{
		entities:  repos.Entities,
		validator: validators.NewRecordValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

// CreateLocal stores a record created offline. It gets a local id that the
// first successful push replaces with the server's.
func (e *clientLocalEditService) CreateLocal(ctx context.Context, kind models.EntityKind, parentID, displayText string, payload json.RawMessage) (models.Record, error) {
	rec := models.Record{
		ContentItemID: e.ids.Generate(),
		Kind:          kind,
		ParentID:      parentID,
		DisplayText:   displayText,
		ModifiedUTC:   e.stamp(),
		Flags:         models.SyncFlags{IsEdited: true},
		Permissions:   models.Permissions{IsAllowEdit: true},
		CorrelationID: e.ids.Generate(),
		IsNew:         true,
		Payload:       payload,
	}
	if kind == models.KindAttachment {
		rec.Category = models.CategoryAttachment
	}
	if err := e.validator.Validate(ctx, rec); err != nil {
		return models.Record{}, err
	}

	if err := e.entities.InsertRecord(ctx, rec); err != nil {
		return models.Record{}, fmt.Errorf("create local %s: %w", kind, err)
	}

	e.logger.Debug().Str("kind", kind.String()).Str("content_item_id", rec.ContentItemID).Msg("local record created")
	return rec, nil
}

// SaveLocalEdit records a user edit. force asks the next push to win over
// the server copy regardless of timestamps.
func (e *clientLocalEditService) SaveLocalEdit(ctx context.Context, kind models.EntityKind, id, displayText string, payload json.RawMessage, force bool) (models.Record, error) {
	rec, err := e.entities.GetRecord(ctx, kind, id)
	if err != nil {
		return models.Record{}, err
	}

	if displayText != "" {
		rec.DisplayText = displayText
	}
	if len(payload) > 0 {
		if err = e.validator.Validate(ctx, models.Record{Payload: payload}, validators.FieldPayload); err != nil {
			return models.Record{}, err
		}
		rec.Payload = payload
	}
	e.markEdited(&rec, force)

	if err = e.entities.UpdateRecord(ctx, rec); err != nil {
		return models.Record{}, fmt.Errorf("save local edit %s %s: %w", kind, id, err)
	}
	return rec, nil
}

// AttachFile queues a local file for upload with the next push.
func (e *clientLocalEditService) AttachFile(ctx context.Context, kind models.EntityKind, id, filePath string) (models.Record, error) {
	if _, err := os.Stat(filePath); err != nil {
		return models.Record{}, fmt.Errorf("attach file: %w", err)
	}

	rec, err := e.entities.GetRecord(ctx, kind, id)
	if err != nil {
		return models.Record{}, err
	}

	rec.FilePath = filePath
	e.markEdited(&rec, false)

	if err = e.entities.UpdateRecord(ctx, rec); err != nil {
		return models.Record{}, fmt.Errorf("attach file %s %s: %w", kind, id, err)
	}
	return rec, nil
}

func (e *clientLocalEditService) markEdited(rec *models.Record, force bool) {
	rec.ModifiedUTC = e.stamp()
	rec.CorrelationID = e.ids.Generate()
	rec.Flags.IsEdited = true
	rec.Flags.IsSync = false
	rec.Flags.IsPermission = false
	rec.Flags.IsForceSyncSuccess = false
	if force {
		rec.Flags.IsForceSync = true
	}
}

// stamp is the current time at the millisecond precision the store keeps.
func (e *clientLocalEditService) stamp() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}
