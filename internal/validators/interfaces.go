// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks cached records before a local edit is written.
//
// The record validator enforces what the push payload later relies on: a
// known entity kind with a content item id, a parent id on child kinds and
// a payload that is empty or a JSON object. Callers may restrict a check to
// named fields (see the Field* constants); saving an edit to an existing
// row validates only the new payload.
package validators

import "context"

// Validator checks a value, optionally only the named fields of it.
// Unsupported values yield [ErrUnsupportedType]; unknown field names yield
// [ErrUnknownField].
type Validator interface {
	Validate(context.Context, any, ...string) error
}
