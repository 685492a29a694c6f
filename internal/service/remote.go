package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type remoteFields struct {
	ContentItemID     string              `json:"contentItemId"`
	ParentID          string              `json:"parentId"`
	TypeID            string              `json:"typeId"`
	CaseTypeID        string              `json:"caseTypeId"`
	LicenseTypeID     string              `json:"licenseTypeId"`
	FormTypeID        string              `json:"formTypeId"`
	DisplayText       string              `json:"displayText"`
	Category          string              `json:"category"`
	ModifiedUTC       string              `json:"modifiedUtc"`
	IsEnableMultiline any                 `json:"isEnableMultiline"`
	CorrelationID     string              `json:"correlationId"`
	Permissions       *models.Permissions `json:"permissions"`
}

func (f remoteFields) typeID() string {
	for _, id := range []string{f.TypeID, f.CaseTypeID, f.LicenseTypeID, f.FormTypeID} {
		if id != "" {
			return id
		}
	}
	return ""
}

// splitItems accepts either a JSON array or a single object and returns the
// objects it holds. null and empty input yield nothing.
func splitItems(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid json object %q", truncate(string(trimmed), 32))
		}
		return []json.RawMessage{trimmed}, nil
	}
	return nil, fmt.Errorf("unexpected json %q", truncate(string(trimmed), 32))
}

// decodeRemoteRecords parses the data.data part of a GET envelope.
// Envelope permissions apply to every record unless a record carries its
// own. parentID fills in records fetched through a ?parentId= listing.
//
// A record without contentItemId fails the whole batch with
// [ErrMissingContentItemID]. An unreadable modifiedUtc is substituted with
// the zero time and logged.
func decodeRemoteRecords(log *logger.Logger, data models.GetData, parentID string) ([]models.RemoteRecord, error) {
	items, err := splitItems(data.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRemoteRecord, err)
	}

	out := make([]models.RemoteRecord, 0, len(items))
	for i, item := range items {
		var f remoteFields
		if err = json.Unmarshal(item, &f); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrMalformedRemoteRecord, i, err)
		}
		if f.ContentItemID == "" {
			return nil, fmt.Errorf("%w: item %d", ErrMissingContentItemID, i)
		}

		var modified time.Time
		if f.ModifiedUTC != "" {
			if modified, err = utils.ParseServerTime(f.ModifiedUTC); err != nil {
				log.Warn().Err(err).Str("content_item_id", f.ContentItemID).Msg("unreadable modifiedUtc, using zero time")
			}
		}

		perms := data.Permissions
		if f.Permissions != nil {
			perms = *f.Permissions
		}

		multiline, _ := coerceBool(f.IsEnableMultiline)

		rec := models.RemoteRecord{
			ContentItemID:     f.ContentItemID,
			ParentID:          f.ParentID,
			TypeID:            f.typeID(),
			DisplayText:       f.DisplayText,
			Category:          f.Category,
			ModifiedUTC:       modified.Truncate(time.Millisecond),
			IsEnableMultiline: multiline,
			CorrelationID:     f.CorrelationID,
			Permissions:       perms,
			Raw:               item,
		}
		if rec.ParentID == "" {
			rec.ParentID = parentID
		}
		out = append(out, rec)
	}

	return out, nil
}

// recordFromRemote builds the local row for a remote record.
func recordFromRemote(kind models.EntityKind, r models.RemoteRecord) models.Record {
	return models.Record{
		ContentItemID:     r.ContentItemID,
		Kind:              kind,
		ParentID:          r.ParentID,
		TypeID:            r.TypeID,
		DisplayText:       r.DisplayText,
		Category:          models.NormalizeCategory(kind, r.Category),
		ModifiedUTC:       r.ModifiedUTC,
		Permissions:       r.Permissions,
		CorrelationID:     r.CorrelationID,
		IsEnableMultiline: r.IsEnableMultiline,
		Payload:           r.Raw,
	}
}

// remoteFromRecord is used when the server acknowledges a push without
// echoing the record: the local copy becomes the canonical one.
func remoteFromRecord(rec models.Record) models.RemoteRecord {
	return models.RemoteRecord{
		ContentItemID:     rec.ContentItemID,
		ParentID:          rec.ParentID,
		TypeID:            rec.TypeID,
		DisplayText:       rec.DisplayText,
		Category:          rec.Category,
		ModifiedUTC:       rec.ModifiedUTC,
		IsEnableMultiline: rec.IsEnableMultiline,
		CorrelationID:     rec.CorrelationID,
		Permissions:       rec.Permissions,
		Raw:               rec.Payload,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
