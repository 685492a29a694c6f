package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrTokenExpired is returned without contacting the server when the
	// stored bearer token carries an "exp" claim in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrDecodeResponse wraps envelope decoding failures.
	ErrDecodeResponse = errors.New("malformed response envelope")
)
