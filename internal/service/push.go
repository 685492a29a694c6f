package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// pushTask is one step of a push cycle: the dirty rows of a kind matching
// filter. filesOnly tasks upload pending files and leave the rows dirty for
// the record task that follows them.
type pushTask struct {
	name      string
	kind      models.EntityKind
	filter    models.RecordFilter
	filesOnly bool
}

func boolPtr(b bool) *bool { return &b }

// pushTasks runs in this order. File uploads precede the records that
// reference them.
var pushTasks = []pushTask{
	{name: "Cases", kind: models.KindCase},
	{name: "Settings", kind: models.KindSetting},
	{name: "Licenses", kind: models.KindLicense},
	{name: "Contacts", kind: models.KindContact},
	{name: "Admin note files", kind: models.KindAdminNote, filter: models.RecordFilter{WithFile: boolPtr(true)}, filesOnly: true},
	{name: "Admin notes", kind: models.KindAdminNote},
	{name: "Comments", kind: models.KindComment},
	{name: "Attachments", kind: models.KindAttachment, filter: models.RecordFilter{ExcludeCategory: models.CategoryDocument}},
	{name: "Attached documents", kind: models.KindAttachment, filter: models.RecordFilter{Category: models.CategoryDocument}},
	{name: "Form files", kind: models.KindForm, filter: models.RecordFilter{WithFile: boolPtr(true)}, filesOnly: true},
	{name: "Forms", kind: models.KindForm, filter: models.RecordFilter{OnlyNew: boolPtr(true)}},
	{name: "Edited forms", kind: models.KindForm, filter: models.RecordFilter{OnlyNew: boolPtr(false)}},
}

// PushAll submits every dirty row, one task after the other. A failing
// record stays dirty and marks its task as failed; the task name appears in
// Errors once however many of its records failed.
func (s *clientSyncService) PushAll(ctx context.Context, sc *SyncContext, isOnline bool) models.PushResult {
	ctx, log := s.runContext(ctx)

	if !isOnline {
		res := models.PushResult{Offline: true}
		sc.notice(res.Message())
		log.Info().Msg("push skipped: offline")
		return res
	}

	total := 0
	for _, kind := range models.AllKinds {
		n, err := s.entities.CountDirty(ctx, kind)
		if err != nil {
			s.reportErr(ctx, err, map[string]string{"op": "count_dirty", "kind": kind.String()})
			continue
		}
		total += n
	}
	sc.total(total)

	var (
		res       models.PushResult
		attempted int
	)
	for i, task := range pushTasks {
		if s.runPushTask(ctx, sc, log, task, &res, &attempted) {
			res.Errors = append(res.Errors, task.name)
		}
		sc.progress(percent(i+1, len(pushTasks)))
	}
	res.Success = len(res.Errors) == 0

	log.Info().
		Int("pushed", res.Pushed).
		Int("failed", res.Failed).
		Strs("failed_tasks", res.Errors).
		Msg("push finished")
	sc.notice(res.Message())

	return res
}

func (s *clientSyncService) runPushTask(ctx context.Context, sc *SyncContext, log *logger.Logger, task pushTask, res *models.PushResult, attempted *int) (failed bool) {
	rows, err := s.entities.ListDirty(ctx, task.kind, task.filter)
	if err != nil {
		s.reportErr(ctx, err, map[string]string{"op": "push", "task": task.name})
		return true
	}

	spec, err := specFor(task.kind)
	if err != nil {
		s.reportErr(ctx, err, map[string]string{"op": "push", "task": task.name})
		return true
	}

	for _, rec := range rows {
		fields := map[string]string{"op": "push", "task": task.name, "content_item_id": rec.ContentItemID}

		if task.filesOnly {
			if _, err = s.uploadFile(ctx, spec, rec); err != nil {
				log.Warn().Err(err).Str("task", task.name).Str("content_item_id", rec.ContentItemID).Msg("file upload failed")
				s.reportErr(ctx, err, fields)
				failed = true
			}
			continue
		}

		*attempted++
		if err = s.pushRecord(ctx, log, spec, rec, false); err != nil {
			log.Warn().Err(err).Str("task", task.name).Str("content_item_id", rec.ContentItemID).Msg("record push failed")
			s.reportErr(ctx, err, fields)
			res.Failed++
			failed = true
		} else {
			res.Pushed++
		}
		sc.count(*attempted)
	}

	return failed
}

// ForceSyncRecord pushes one row with IsForceSync set so that it wins over
// the server copy. It returns 200 on success and 500 otherwise.
func (s *clientSyncService) ForceSyncRecord(ctx context.Context, kind models.EntityKind, id string, isOnline bool) int {
	ctx, log := s.runContext(ctx)

	if !isOnline {
		log.Info().Str("content_item_id", id).Msg("force sync skipped: offline")
		return http.StatusInternalServerError
	}

	spec, err := specFor(kind)
	if err != nil {
		return http.StatusInternalServerError
	}

	rec, err := s.entities.GetRecord(ctx, kind, id)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Str("content_item_id", id).Msg("force sync: record not loaded")
		return http.StatusInternalServerError
	}

	if err = s.pushRecord(ctx, log, spec, rec, true); err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Str("content_item_id", id).Msg("force sync failed")
		s.reportErr(ctx, err, map[string]string{"op": "force_sync", "kind": kind.String(), "content_item_id": id})
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

// pushRecord submits one row and, once the server accepted it, reconciles
// the local row with the server copy, clears its sync flags and appends a
// history entry. Nothing local changes before the server answered 200,
// apart from recording an uploaded file reference.
func (s *clientSyncService) pushRecord(ctx context.Context, log *logger.Logger, spec kindSpec, rec models.Record, force bool) error {
	if rec.FilePath != "" {
		ref, err := s.uploadFile(ctx, spec, rec)
		if err != nil {
			return err
		}
		rec.FileRef = ref
		rec.FilePath = ""
	}

	if rec.CorrelationID == "" {
		rec.CorrelationID = s.ids.Generate()
	}

	body, err := spec.buildPayload(rec, s.syncModel(rec, force))
	if err != nil {
		return err
	}

	resp, err := s.gateway.Post(ctx, spec.pushPath(), body)
	if err != nil {
		return mapAdapterError(err)
	}
	if !resp.Succeeded() {
		return fmt.Errorf("%w: %d %s", ErrPushRejected, resp.Data.StatusCode, resp.Data.Message)
	}

	remote := s.acknowledgedCopy(log, rec, resp.Data.Data)

	wasForced := force || rec.Flags.IsForceSync
	flags := rec.Flags.Cleared()
	flags.IsForceSyncSuccess = wasForced

	if !s.engine.UpdateOnly(ctx, spec.kind, rec, remote, flags) {
		return fmt.Errorf("%w: %s %s", ErrReconcileFailed, spec.kind, rec.ContentItemID)
	}

	newText := remote.DisplayText
	if newText == "" {
		newText = rec.DisplayText
	}
	entry := models.HistoryEntry{
		ID:             s.ids.Generate(),
		Kind:           spec.kind,
		ContentItemID:  remote.ContentItemID,
		OldDisplayText: rec.DisplayText,
		NewDisplayText: newText,
		CorrelationID:  rec.CorrelationID,
		IsForceSync:    wasForced,
		SyncedAt:       s.now(),
	}
	if err = s.history.AppendHistory(ctx, entry); err != nil {
		// the push itself went through; only the audit line is lost
		s.reportErr(ctx, err, map[string]string{"op": "history", "content_item_id": entry.ContentItemID})
	}

	return nil
}

// acknowledgedCopy returns the server's view of a pushed row. The server
// may echo the full record, only the assigned id as a string, or nothing;
// in the last case the local copy is canonical.
func (s *clientSyncService) acknowledgedCopy(log *logger.Logger, rec models.Record, raw json.RawMessage) models.RemoteRecord {
	fallback := remoteFromRecord(rec)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fallback
	}

	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err == nil && id != "" {
			fallback.ContentItemID = id
		}
		return fallback
	}

	echoed, err := decodeRemoteRecords(log, models.GetData{Data: trimmed, Permissions: rec.Permissions}, rec.ParentID)
	if err != nil || len(echoed) != 1 {
		log.Debug().Err(err).Str("content_item_id", rec.ContentItemID).Msg("push response carries no record, keeping local copy")
		return fallback
	}
	return echoed[0]
}

func (s *clientSyncService) syncModel(rec models.Record, force bool) models.SyncModel {
	sm := models.SyncModel{
		IsForceSync:   force || rec.Flags.IsForceSync,
		IsOfflineSync: !force,
		UtcDate:       utils.FormatUTC(s.now()),
		CorrelationID: rec.CorrelationID,
	}
	if !rec.IsNew {
		id := rec.ContentItemID
		sm.ContentItemID = &id
	}
	return sm
}

// uploadFile sends the file waiting at rec.FilePath and records the
// server's reference on the row.
func (s *clientSyncService) uploadFile(ctx context.Context, spec kindSpec, rec models.Record) (string, error) {
	resp, err := s.gateway.UploadFile(ctx, spec.uploadPath(), rec.FilePath, map[string]string{
		"contentItemId": rec.ContentItemID,
		"parentId":      rec.ParentID,
	})
	if err != nil {
		return "", mapAdapterError(err)
	}
	if !resp.Succeeded() {
		return "", fmt.Errorf("%w: upload %d %s", ErrPushRejected, resp.Data.StatusCode, resp.Data.Message)
	}

	ref, err := fileRefFrom(resp.Data.Data)
	if err != nil {
		return "", err
	}

	if err = s.entities.SetFileReference(ctx, spec.kind, rec.ContentItemID, ref); err != nil {
		return "", err
	}
	return ref, nil
}

// fileRefFrom accepts "ref" or {"fileRef": "ref"} (also "url" and "path").
func fileRefFrom(raw json.RawMessage) (string, error) {
	var ref string
	if err := json.Unmarshal(raw, &ref); err == nil && ref != "" {
		return ref, nil
	}

	var obj struct {
		FileRef string `json:"fileRef"`
		URL     string `json:"url"`
		Path    string `json:"path"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, v := range []string{obj.FileRef, obj.URL, obj.Path} {
			if v != "" {
				return v, nil
			}
		}
	}
	return "", ErrNoFileReference
}
