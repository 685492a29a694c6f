// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
)

// ErrUnknownEntityKind is returned by ParseEntityKind for names that do not
// match any known entity kind.
var ErrUnknownEntityKind = errors.New("unknown entity kind")

// EntityKind is the closed set of record types that carry their own sync state.
type EntityKind int

const (
	KindCase EntityKind = iota + 1
	KindLicense
	KindSetting
	KindContact
	KindAdminNote
	KindComment
	KindAttachment
	KindForm
)

// AllKinds lists every entity kind in a stable order.
var AllKinds = []EntityKind{
	KindCase,
	KindLicense,
	KindSetting,
	KindContact,
	KindAdminNote,
	KindComment,
	KindAttachment,
	KindForm,
}

type kindInfo struct {
	wire    string
	display string
	table   string
	root    bool
}

var kindInfos = map[EntityKind]kindInfo{
	KindCase:       {wire: "case", display: "Case", table: "cases", root: true},
	KindLicense:    {wire: "license", display: "License", table: "licenses", root: true},
	KindSetting:    {wire: "setting", display: "Settings", table: "settings"},
	KindContact:    {wire: "contact", display: "Contacts", table: "contacts"},
	KindAdminNote:  {wire: "admin-note", display: "Admin Notes", table: "admin_notes"},
	KindComment:    {wire: "comment", display: "Comments", table: "comments"},
	KindAttachment: {wire: "attachment", display: "Attachments", table: "attachments"},
	KindForm:       {wire: "form", display: "Forms", table: "forms"},
}

// String returns the wire name of the kind ("case", "admin-note", ...).
func (k EntityKind) String() string {
	if info, ok := kindInfos[k]; ok {
		return info.wire
	}
	return "unknown"
}

// DisplayName returns the human readable name used in notices and history.
func (k EntityKind) DisplayName() string {
	return kindInfos[k].display
}

// Table returns the local table that stores rows of this kind.
func (k EntityKind) Table() string {
	return kindInfos[k].table
}

// IsRoot reports whether the kind is a root family refreshed by a paginated
// listing (cases and licenses). Every other kind hangs off a root via ParentID.
func (k EntityKind) IsRoot() bool {
	return kindInfos[k].root
}

// Valid reports whether k is one of the declared kinds.
func (k EntityKind) Valid() bool {
	_, ok := kindInfos[k]
	return ok
}

// MarshalText implements encoding.TextMarshaler. The zero kind, and any
// value outside the enum, is written as an empty string so that it reads
// back as zero.
func (k EntityKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return []byte{}, nil
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string is the
// zero kind.
func (k *EntityKind) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = 0
		return nil
	}
	parsed, err := ParseEntityKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseEntityKind maps a wire name, display name or table name to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, info := range kindInfos {
		if s == info.wire || s == strings.ToLower(info.display) || s == info.table {
			return kind, nil
		}
	}
	return 0, ErrUnknownEntityKind
}

// Attachment categories.
const (
	CategoryAttachment = "attachment"
	CategoryDocument   = "document"
)

// NormalizeCategory returns the category a row of kind is stored with. An
// attachment is a document only when the server says so; anything else,
// the empty string included, is a plain attachment. Other kinds keep theirs.
func NormalizeCategory(kind EntityKind, category string) string {
	if kind != KindAttachment {
		return category
	}
	if strings.EqualFold(strings.TrimSpace(category), CategoryDocument) {
		return CategoryDocument
	}
	return CategoryAttachment
}
