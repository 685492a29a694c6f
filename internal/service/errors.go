package service

import (
	"errors"

	"github.com/MKhiriev/go-field-sync/internal/validators"
)

var (
	// ErrOffline is reported when the connectivity probe fails before a
	// pull or push cycle.
	ErrOffline = errors.New("remote api is not reachable")

	// ErrListingFailed aborts the pull run of one family: the page fetch
	// failed or returned status=false.
	ErrListingFailed = errors.New("listing fetch failed")

	// ErrMissingContentItemID aborts the pull run of one family: a remote
	// record arrived without an identifier.
	ErrMissingContentItemID = errors.New("remote record without contentItemId")

	// ErrMalformedRemoteRecord is returned when a remote payload cannot be
	// decoded into records.
	ErrMalformedRemoteRecord = errors.New("malformed remote record")

	// ErrCancelled marks work skipped after the sync context was cancelled.
	ErrCancelled = errors.New("sync cancelled")

	// ErrPushRejected is returned when the server answered a push with a
	// status code other than 200.
	ErrPushRejected = errors.New("push rejected by server")

	// ErrReconcileFailed is returned when a push was accepted but the local
	// row could not be reconciled with the server copy.
	ErrReconcileFailed = errors.New("failed to reconcile pushed record")

	// ErrNoFileReference is returned when an upload was accepted but the
	// response does not say where the file went.
	ErrNoFileReference = errors.New("upload response carries no file reference")

	// ErrNotRootKind is returned when a family-level operation receives a
	// child kind.
	ErrNotRootKind = errors.New("entity kind is not a root family")

	// ErrParentRequired is returned when a child record is created without a
	// parent id.
	ErrParentRequired = validators.ErrParentRequired

	// ErrSessionExpired is returned when the remote API rejects the stored
	// token.
	ErrSessionExpired = errors.New("session expired, log in again")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
