package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-field-sync/models"
)

const (
	FieldKind          = "kind"
	FieldContentItemID = "content_item_id"
	FieldParentID      = "parent_id"
	FieldPayload       = "payload"
)

// RecordValidator checks records produced by local edits before they reach
// the cache.
type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

// validateRecord checks the named fields, or all of them when none are given.
func (v *RecordValidator) validateRecord(_ context.Context, rec models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldContentItemID, FieldParentID, FieldPayload}
	}

	for _, field := range fields {
		var err error
		switch field {
		case FieldKind:
			err = validateKind(rec.Kind)
		case FieldContentItemID:
			if rec.ContentItemID == "" {
				err = ErrEmptyContentItemID
			}
		case FieldParentID:
			// roots have no parent; a bad kind is reported by FieldKind
			if rec.Kind.Valid() && !rec.Kind.IsRoot() && rec.ParentID == "" {
				err = ErrParentRequired
			}
		case FieldPayload:
			err = validatePayload(rec.Payload)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validateKind(kind models.EntityKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", models.ErrUnknownEntityKind, kind)
	}
	return nil
}

// validatePayload accepts an empty payload or a JSON object.
func validatePayload(payload json.RawMessage) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return ErrInvalidPayload
	}
	return nil
}
