package service

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// Related list names. They are stored in related_records.relation.
const (
	RelationSubScreens     = "sub_screens"
	RelationContractors    = "contractors"
	RelationPayments       = "payments"
	RelationInspections    = "inspections"
	RelationLocations      = "locations"
	RelationLicenseDetails = "license_details"
	RelationLicenseOwner   = "license_owner"
)

// kindSpec is everything the orchestrators need to know about one entity
// kind: where it lives on the remote API, which secondary syncs hang off it,
// and how its push payload is built. There is exactly one per kind.
type kindSpec struct {
	kind models.EntityKind
	// typeIDKey is the payload key that carries TypeID.
	typeIDKey string
	// children are the syncable kinds fetched per root record.
	children []models.EntityKind
	// relations are the read-only lists refreshed per root record.
	relations []string
}

var kindSpecs = map[models.EntityKind]kindSpec{
	models.KindCase: {
		kind:      models.KindCase,
		typeIDKey: "caseTypeId",
		children: []models.EntityKind{
			models.KindSetting, models.KindContact, models.KindAdminNote,
			models.KindComment, models.KindAttachment, models.KindForm,
		},
		relations: []string{
			RelationSubScreens, RelationContractors, RelationPayments,
			RelationInspections, RelationLocations,
		},
	},
	models.KindLicense: {
		kind:      models.KindLicense,
		typeIDKey: "licenseTypeId",
		children: []models.EntityKind{
			models.KindContact, models.KindAdminNote, models.KindComment,
			models.KindAttachment, models.KindForm,
		},
		relations: []string{
			RelationSubScreens, RelationContractors, RelationPayments,
			RelationInspections, RelationLicenseDetails, RelationLicenseOwner,
		},
	},
	models.KindSetting:    {kind: models.KindSetting, typeIDKey: "typeId"},
	models.KindContact:    {kind: models.KindContact, typeIDKey: "typeId"},
	models.KindAdminNote:  {kind: models.KindAdminNote, typeIDKey: "typeId"},
	models.KindComment:    {kind: models.KindComment, typeIDKey: "typeId"},
	models.KindAttachment: {kind: models.KindAttachment, typeIDKey: "typeId"},
	models.KindForm:       {kind: models.KindForm, typeIDKey: "formTypeId"},
}

func specFor(kind models.EntityKind) (kindSpec, error) {
	s, ok := kindSpecs[kind]
	if !ok {
		return kindSpec{}, fmt.Errorf("%w: %d", models.ErrUnknownEntityKind, kind)
	}
	return s, nil
}

func (s kindSpec) base() string { return "/api/" + s.kind.String() }

func (s kindSpec) listPath() string { return s.base() + "/list" }

// detailPath escapes id as a single path segment.
func (s kindSpec) detailPath(id string) string { return s.base() + "/" + url.PathEscape(id) }

func (s kindSpec) pushPath() string { return s.base() + "/sync" }

func (s kindSpec) uploadPath() string { return s.base() + "/upload" }

func (s kindSpec) relatedPath(relation string) string {
	return s.base() + "/" + url.PathEscape(relation)
}

func (s kindSpec) fieldSettingsPath() string { return s.base() + "/field-settings" }

// buildPayload turns a local row into the body POSTed to pushPath. The
// stored payload is the starting point; date fields are reduced to
// YYYY-MM-DD and is* flags are coerced to JSON booleans.
func (s kindSpec) buildPayload(rec models.Record, sm models.SyncModel) (map[string]any, error) {
	body := make(map[string]any)
	if len(rec.Payload) > 0 && string(rec.Payload) != "null" {
		if err := json.Unmarshal(rec.Payload, &body); err != nil {
			return nil, fmt.Errorf("decode stored payload of %s %s: %w", s.kind, rec.ContentItemID, err)
		}
	}

	for k, v := range body {
		switch {
		case isDateKey(k):
			if str, ok := v.(string); ok && str != "" {
				body[k] = utils.FormatDate(str)
			}
		case isFlagKey(k):
			if b, ok := coerceBool(v); ok {
				body[k] = b
			}
		}
	}

	if rec.IsNew {
		delete(body, "contentItemId")
	} else {
		body["contentItemId"] = rec.ContentItemID
	}
	if rec.ParentID != "" {
		body["parentId"] = rec.ParentID
	}
	if rec.TypeID != "" {
		body[s.typeIDKey] = rec.TypeID
	}
	if rec.Category != "" {
		body["category"] = rec.Category
	}
	if rec.FileRef != "" {
		body["fileRef"] = rec.FileRef
	}
	if s.kind == models.KindCase {
		body["isEnableMultiline"] = rec.IsEnableMultiline
	}
	body["displayText"] = rec.DisplayText
	body["modifiedUtc"] = utils.FormatUTC(rec.ModifiedUTC)
	body["SyncModel"] = sm

	return body, nil
}

// isDateKey matches calendar fields such as "dueDate" or "expiration_date".
// "UtcDate" and "modifiedUtc" are full timestamps and are left alone.
func isDateKey(k string) bool {
	lower := strings.ToLower(k)
	return strings.HasSuffix(lower, "date") && lower != "utcdate"
}

// isFlagKey matches camel-cased boolean fields: isActive, isAllowEdit, ...
func isFlagKey(k string) bool {
	if len(k) < 3 || !strings.HasPrefix(k, "is") {
		return false
	}
	return unicode.IsUpper(rune(k[2]))
}

// coerceBool accepts the shapes the server and older local rows use for
// booleans. ok is false when v is not recognisable as one.
func coerceBool(v any) (b bool, ok bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}
