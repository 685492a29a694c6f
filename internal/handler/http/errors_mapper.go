package http

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:  http.StatusBadRequest,
	ErrInvalidLimit: http.StatusBadRequest,

	models.ErrUnknownEntityKind: http.StatusBadRequest,
	service.ErrParentRequired:   http.StatusBadRequest,
	service.ErrNotRootKind:      http.StatusBadRequest,
	service.ErrSessionExpired:   http.StatusUnauthorized,
	service.ErrOffline:          http.StatusServiceUnavailable,
	service.ErrListingFailed:    http.StatusBadGateway,
	service.ErrCancelled:        http.StatusConflict,
	fs.ErrNotExist:              http.StatusBadRequest,

	validators.ErrInvalidPayload:     http.StatusBadRequest,
	validators.ErrEmptyContentItemID: http.StatusBadRequest,

	store.ErrRecordNotFound:       http.StatusNotFound,
	store.ErrDuplicateRecord:      http.StatusConflict,
	store.ErrInvalidKind:          http.StatusBadRequest,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
