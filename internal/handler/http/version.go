package http

import (
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(version))
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.AppInfoService.GetStatus(r.Context())
	if err != nil {
		h.fail(w, r, err, "*Handler.getStatus")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
