// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote field-operations REST API.
//
// The primary abstraction is [Gateway], which decouples the sync engine from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPGateway]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// Gateway defines authenticated communication with the remote API. Every
// response arrives in a {status, data} envelope; implementations decode it
// into [models.GetResponse] or [models.PostResponse] and leave the
// interpretation of status flags to the caller.
type Gateway interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the gateway.
	Token() string

	// Get issues GET path?query and decodes the envelope.
	Get(ctx context.Context, path string, query url.Values) (models.GetResponse, error)

	// Post issues POST path with body serialised as JSON.
	Post(ctx context.Context, path string, body any) (models.PostResponse, error)

	// UploadFile sends the file at filePath as a multipart form together with
	// the extra form fields.
	UploadFile(ctx context.Context, path, filePath string, fields map[string]string) (models.PostResponse, error)

	// Ping probes connectivity. A nil error means the remote API is reachable.
	Ping(ctx context.Context) error
}
