package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

type createRecordRequest struct {
	ParentID    string          `json:"parentId"`
	DisplayText string          `json:"displayText"`
	Payload     json.RawMessage `json:"payload"`
}

type saveRecordRequest struct {
	DisplayText string          `json:"displayText"`
	Payload     json.RawMessage `json:"payload"`
	Force       bool            `json:"force"`
}

type attachFileRequest struct {
	Path string `json:"path"`
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.listRecords")
		return
	}
	limit, err := limitParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.listRecords")
		return
	}

	q := r.URL.Query()
	filter := models.RecordFilter{
		ParentID:   q.Get("parentId"),
		TypeID:     q.Get("typeId"),
		Category:   q.Get("category"),
		SearchText: q.Get("search"),
		OnlyDirty:  q.Get("dirty") == "true",
		OnlyForce:  q.Get("force") == "true",
		Limit:      limit,
	}

	records, err := h.services.QueueService.FetchRecords(r.Context(), kind, filter)
	if err != nil {
		h.fail(w, r, err, "*Handler.listRecords")
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.createRecord")
		return
	}

	var req createRecordRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, ErrInvalidJSON, "*Handler.createRecord")
		return
	}

	rec, err := h.services.LocalEditService.CreateLocal(r.Context(), kind, req.ParentID, req.DisplayText, req.Payload)
	if err != nil {
		h.fail(w, r, err, "*Handler.createRecord")
		return
	}

	utils.WriteJSON(w, rec, http.StatusCreated)
}

func (h *Handler) saveRecord(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.saveRecord")
		return
	}

	var req saveRecordRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, ErrInvalidJSON, "*Handler.saveRecord")
		return
	}

	rec, err := h.services.LocalEditService.SaveLocalEdit(r.Context(), kind, chi.URLParam(r, "id"), req.DisplayText, req.Payload, req.Force)
	if err != nil {
		h.fail(w, r, err, "*Handler.saveRecord")
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

func (h *Handler) attachFile(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.attachFile")
		return
	}

	var req attachFileRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		h.fail(w, r, ErrInvalidJSON, "*Handler.attachFile")
		return
	}

	rec, err := h.services.LocalEditService.AttachFile(r.Context(), kind, chi.URLParam(r, "id"), req.Path)
	if err != nil {
		h.fail(w, r, err, "*Handler.attachFile")
		return
	}

	utils.WriteJSON(w, rec, http.StatusOK)
}

func (h *Handler) discardDraft(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		h.fail(w, r, err, "*Handler.discardDraft")
		return
	}

	if err = h.services.QueueService.DiscardDraft(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "*Handler.discardDraft")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRelated(w http.ResponseWriter, r *http.Request) {
	records, err := h.services.QueueService.FetchRelated(r.Context(), chi.URLParam(r, "relation"), chi.URLParam(r, "parentID"))
	if err != nil {
		h.fail(w, r, err, "*Handler.listRelated")
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}
