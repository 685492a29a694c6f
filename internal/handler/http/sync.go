package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type pullRequest struct {
	// Kind restricts the pull to one family ("case" or "license").
	Kind              string `json:"kind"`
	PermissionRefresh bool   `json:"permissionRefresh"`
}

type pullResponse struct {
	Summary models.PullSummary `json:"summary"`
	Message string             `json:"message"`
	Error   string             `json:"error,omitempty"`
}

type pushResponse struct {
	Result  models.PushResult `json:"result"`
	Message string            `json:"message"`
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req pullRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		h.fail(w, r, err, "*Handler.pull")
		return
	}

	sc := h.services.Session.Begin(&service.SyncContext{PermissionRefresh: req.PermissionRefresh})
	defer h.services.Session.End(sc)

	var (
		summary models.PullSummary
		err     error
	)
	if req.Kind != "" {
		kind, parseErr := models.ParseEntityKind(req.Kind)
		if parseErr != nil {
			h.fail(w, r, parseErr, "*Handler.pull")
			return
		}
		summary, err = h.services.SyncService.PullFamily(ctx, sc, kind)
	} else {
		summary, err = h.services.SyncService.PullAll(ctx, sc)
	}

	resp := pullResponse{Summary: summary, Message: summary.Message()}
	status := http.StatusOK
	switch {
	case err != nil:
		log.Err(err).Str("func", "*Handler.pull").Msg("pull finished with errors")
		resp.Error = err.Error()
		status = statusFromError(err)
	case summary.Offline:
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, resp, status)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sc := h.services.Session.Begin(nil)
	defer h.services.Session.End(sc)

	res := h.services.SyncService.PushAll(ctx, sc, h.services.SyncService.IsOnline(ctx))

	status := http.StatusOK
	switch {
	case res.Offline:
		status = http.StatusServiceUnavailable
	case !res.Success:
		status = http.StatusBadGateway
	}

	utils.WriteJSON(w, pushResponse{Result: res, Message: res.Message()}, status)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	n := h.services.Session.CancelAll()
	logger.FromRequest(r).Info().Int("cancelled", n).Msg("sync cancel requested")

	utils.WriteJSON(w, map[string]int{"cancelled": n}, http.StatusOK)
}

func (h *Handler) forceSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := kindParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.forceSync")
		return
	}
	id := chi.URLParam(r, "id")

	code := h.services.SyncService.ForceSyncRecord(ctx, kind, id, h.services.SyncService.IsOnline(ctx))

	utils.WriteJSON(w, map[string]int{"statusCode": code}, code)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	items, err := h.services.QueueService.ItemsToSync(r.Context())
	if err != nil {
		h.fail(w, r, err, "*Handler.pending")
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.history")
		return
	}

	entries, err := h.services.QueueService.ListHistory(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err, "*Handler.history")
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

// fail logs err and answers with the status mapped from it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)
	ev := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.FromRequest(r).Error()
	}
	ev.Err(err).Str("func", fn).Int("status", status).Send()

	utils.WriteError(w, err, status)
}

func kindParam(r *http.Request) (models.EntityKind, error) {
	return models.ParseEntityKind(chi.URLParam(r, "kind"))
}

func limitParam(r *http.Request) (uint64, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}

// decodeOptionalJSON decodes the request body into v. An empty body
// leaves v untouched.
func decodeOptionalJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}
