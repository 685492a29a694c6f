package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// families is the order PullAll refreshes root kinds in.
var families = []models.EntityKind{models.KindCase, models.KindLicense}

// PullAll refreshes every root family and its secondary data. A failed
// family listing is returned in the joined error but does not stop the
// next family. Offline is not an error: the summary says so.
func (s *clientSyncService) PullAll(ctx context.Context, sc *SyncContext) (models.PullSummary, error) {
	ctx, log := s.runContext(ctx)

	if !s.IsOnline(ctx) {
		sum := models.PullSummary{Offline: true}
		sc.notice(sum.Message())
		log.Info().Msg("pull skipped: offline")
		return sum, nil
	}

	var (
		total models.PullSummary
		errs  []error
	)
	for i, kind := range families {
		if sc.Cancelled() {
			total.Cancelled = true
			break
		}

		sum, err := s.pullFamily(ctx, sc, log, kind)
		total.Add(sum)
		if err != nil {
			log.Error().Err(err).Str("kind", kind.String()).Msg("pull of family aborted")
			s.reportErr(ctx, err, map[string]string{"op": "pull", "kind": kind.String()})
			errs = append(errs, fmt.Errorf("pull %s: %w", kind, err))
		}
		sc.progress(percent(i+1, len(families)))
	}

	log.Info().
		Int("created", total.Created).
		Int("updated", total.Updated).
		Int("pruned", total.Pruned).
		Int("failed", total.Failed).
		Bool("cancelled", total.Cancelled).
		Msg("pull finished")
	sc.notice(total.Message())

	return total, errors.Join(errs...)
}

// PullFamily refreshes a single root family.
func (s *clientSyncService) PullFamily(ctx context.Context, sc *SyncContext, kind models.EntityKind) (models.PullSummary, error) {
	if !kind.IsRoot() {
		return models.PullSummary{}, fmt.Errorf("%w: %s", ErrNotRootKind, kind)
	}

	ctx, log := s.runContext(ctx)
	if !s.IsOnline(ctx) {
		sum := models.PullSummary{Offline: true}
		sc.notice(sum.Message())
		return sum, nil
	}

	sum, err := s.pullFamily(ctx, sc, log, kind)
	sc.progress(100)
	sc.notice(sum.Message())
	return sum, err
}

// pullFamily pages through the listing of one root kind. Pages are fetched
// strictly in order until an empty one comes back; only then are rows that
// the server no longer lists pruned.
func (s *clientSyncService) pullFamily(ctx context.Context, sc *SyncContext, log *logger.Logger, kind models.EntityKind) (models.PullSummary, error) {
	var sum models.PullSummary

	spec, err := specFor(kind)
	if err != nil {
		return sum, err
	}

	seen := make(map[string]struct{})
	for page := 1; ; page++ {
		if sc.Cancelled() {
			sum.Cancelled = true
			return sum, nil
		}

		resp, err := s.gateway.Get(ctx, spec.listPath(), url.Values{"pagenum": {strconv.Itoa(page)}})
		if err != nil {
			return sum, fmt.Errorf("%w: page %d: %w", ErrListingFailed, page, mapAdapterError(err))
		}
		if !resp.Status {
			return sum, fmt.Errorf("%w: page %d: status=false", ErrListingFailed, page)
		}

		remotes, err := decodeRemoteRecords(log, resp.Data, "")
		if err != nil {
			return sum, fmt.Errorf("page %d: %w", page, err)
		}
		if len(remotes) == 0 {
			break
		}
		sum.Pages++

		for _, r := range remotes {
			if sc.Cancelled() {
				sum.Cancelled = true
				return sum, nil
			}
			seen[r.ContentItemID] = struct{}{}
			s.applyRemote(ctx, sc, log, kind, r, &sum)
		}

		s.syncFieldSettings(ctx, spec, remotes)

		results, childSum := s.syncSecondary(ctx, sc, log, spec, remotes)
		sum.Add(childSum)
		for _, res := range results {
			if res.Err != nil && !errors.Is(res.Err, ErrCancelled) {
				sum.SecondaryFailed++
			}
		}
		log.Debug().Str("kind", kind.String()).Int("page", page).Int("records", len(remotes)).Msg("page synced")
	}

	if sc.Cancelled() {
		sum.Cancelled = true
		return sum, nil
	}
	if len(seen) == 0 {
		log.Info().Str("kind", kind.String()).Msg("remote listing empty, nothing to sync")
		return sum, nil
	}

	pruned, err := s.prune(ctx, kind, "", seen)
	if err != nil {
		s.reportErr(ctx, err, map[string]string{"op": "prune", "kind": kind.String()})
	}
	sum.Pruned += pruned

	return sum, nil
}

// applyRemote classifies one remote record and applies the decision. It
// never fails the caller: problems are counted and reported.
func (s *clientSyncService) applyRemote(ctx context.Context, sc *SyncContext, log *logger.Logger, kind models.EntityKind, r models.RemoteRecord, sum *models.PullSummary) {
	local, err := s.entities.FindRecord(ctx, kind, r.ContentItemID)
	if err != nil {
		sum.Failed++
		s.reportErr(ctx, err, map[string]string{"op": "find", "kind": kind.String(), "content_item_id": r.ContentItemID})
		return
	}

	d := Classify(local, r, ClassifyOptions{PermissionRefresh: sc.permissionRefresh()})
	if d.Stale {
		log.Debug().
			Str("kind", kind.String()).
			Str("content_item_id", r.ContentItemID).
			Time("remote_modified", r.ModifiedUTC).
			Time("local_modified", local.ModifiedUTC).
			Msg("remote copy older than local row, content kept")
	}

	if !s.engine.Apply(ctx, kind, d, local, r) {
		sum.Failed++
		return
	}

	switch d.Action {
	case models.ActionCreate:
		sum.Created++
	case models.ActionUpdateFull, models.ActionUpdateOnly:
		sum.Updated++
	case models.ActionUpdatePermissionOnly:
		sum.PermissionUpdates++
	default:
		sum.Skipped++
	}
}

// syncFieldSettings fetches the field configuration of every distinct type
// on the page that is not cached yet. Failures are reported and skipped.
func (s *clientSyncService) syncFieldSettings(ctx context.Context, spec kindSpec, remotes []models.RemoteRecord) {
	done := make(map[string]struct{})
	for _, r := range remotes {
		if r.TypeID == "" {
			continue
		}
		if _, ok := done[r.TypeID]; ok {
			continue
		}
		done[r.TypeID] = struct{}{}

		fields := map[string]string{"op": "field_settings", "kind": spec.kind.String(), "type_id": r.TypeID}

		cached, err := s.fieldSettings.HasFieldSettings(ctx, spec.kind, r.TypeID)
		if err != nil {
			s.reportErr(ctx, err, fields)
			continue
		}
		if cached {
			continue
		}

		resp, err := s.gateway.Get(ctx, spec.fieldSettingsPath(), url.Values{"typeId": {r.TypeID}})
		if err != nil {
			s.reportErr(ctx, mapAdapterError(err), fields)
			continue
		}
		if !resp.Status {
			s.reportErr(ctx, fmt.Errorf("%w: status=false", ErrListingFailed), fields)
			continue
		}

		if err = s.fieldSettings.SaveFieldSettings(ctx, models.FieldSettings{
			Kind:     spec.kind,
			TypeID:   r.TypeID,
			Payload:  resp.Data.Data,
			SyncedAt: s.now(),
		}); err != nil {
			s.reportErr(ctx, err, fields)
		}
	}
}

type secondaryTask struct {
	name     string
	parentID string
	run      func(ctx context.Context) (models.PullSummary, error)
}

// syncSecondary runs the child-kind and related-list refreshes of every
// root record on a page with bounded concurrency. Tasks never fail the
// group, so one failure does not cancel its siblings; each outcome is
// returned as a TaskResult in task order.
func (s *clientSyncService) syncSecondary(ctx context.Context, sc *SyncContext, log *logger.Logger, spec kindSpec, roots []models.RemoteRecord) ([]models.TaskResult, models.PullSummary) {
	var tasks []secondaryTask
	for _, root := range roots {
		parentID := root.ContentItemID
		for _, child := range spec.children {
			tasks = append(tasks, secondaryTask{
				name:     child.String(),
				parentID: parentID,
				run: func(ctx context.Context) (models.PullSummary, error) {
					return s.syncChildren(ctx, sc, log, child, parentID)
				},
			})
		}
		for _, relation := range spec.relations {
			tasks = append(tasks, secondaryTask{
				name:     relation,
				parentID: parentID,
				run: func(ctx context.Context) (models.PullSummary, error) {
					return models.PullSummary{}, s.syncRelated(ctx, log, spec, relation, parentID)
				},
			})
		}
	}

	var (
		mu      sync.Mutex
		total   models.PullSummary
		results = make([]models.TaskResult, len(tasks))
		g       errgroup.Group
	)
	g.SetLimit(s.fanOut)

	for i, t := range tasks {
		g.Go(func() error {
			results[i] = models.TaskResult{Name: t.name, ParentID: t.parentID}
			if sc.Cancelled() {
				results[i].Err = ErrCancelled
				return nil
			}

			sum, err := t.run(ctx)
			mu.Lock()
			total.Add(sum)
			mu.Unlock()

			if err != nil {
				results[i].Err = err
				if !errors.Is(err, ErrCancelled) {
					log.Warn().Err(err).Str("task", t.name).Str("parent_id", t.parentID).Msg("secondary sync failed")
					s.reportErr(ctx, err, map[string]string{"op": "secondary", "task": t.name, "parent_id": t.parentID})
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, total
}

// syncChildren refreshes the rows of one child kind under parentID and
// prunes those the server no longer returns for that parent.
func (s *clientSyncService) syncChildren(ctx context.Context, sc *SyncContext, log *logger.Logger, kind models.EntityKind, parentID string) (models.PullSummary, error) {
	var sum models.PullSummary

	spec, err := specFor(kind)
	if err != nil {
		return sum, err
	}

	resp, err := s.gateway.Get(ctx, spec.listPath(), url.Values{"parentId": {parentID}})
	if err != nil {
		return sum, mapAdapterError(err)
	}
	if !resp.Status {
		return sum, fmt.Errorf("%w: %s of %s: status=false", ErrListingFailed, kind, parentID)
	}

	remotes, err := decodeRemoteRecords(log, resp.Data, parentID)
	if err != nil {
		return sum, err
	}

	seen := make(map[string]struct{}, len(remotes))
	for _, r := range remotes {
		if sc.Cancelled() {
			sum.Cancelled = true
			return sum, ErrCancelled
		}
		seen[r.ContentItemID] = struct{}{}
		s.applyRemote(ctx, sc, log, kind, r, &sum)
	}

	if len(seen) == 0 {
		return sum, nil
	}

	pruned, err := s.prune(ctx, kind, parentID, seen)
	sum.Pruned += pruned
	return sum, err
}

// syncRelated replaces one read-only list of parentID wholesale.
func (s *clientSyncService) syncRelated(ctx context.Context, log *logger.Logger, spec kindSpec, relation, parentID string) error {
	resp, err := s.gateway.Get(ctx, spec.relatedPath(relation), url.Values{"id": {parentID}})
	if err != nil {
		return mapAdapterError(err)
	}
	if !resp.Status {
		return fmt.Errorf("%w: %s of %s: status=false", ErrListingFailed, relation, parentID)
	}

	records, err := s.decodeRelated(log, relation, parentID, resp.Data.Data)
	if err != nil {
		return err
	}

	return s.related.ReplaceRelated(ctx, relation, parentID, records)
}

// decodeRelated splits a related-list body into rows. The locations list
// may arrive as a JSON string holding the actual array; when that blob is
// unreadable the list is stored empty.
func (s *clientSyncService) decodeRelated(log *logger.Logger, relation, parentID string, raw json.RawMessage) ([]models.RelatedRecord, error) {
	if relation == RelationLocations {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '"' {
			var blob string
			if err := json.Unmarshal(trimmed, &blob); err == nil {
				raw = json.RawMessage(blob)
			}
		}
	}

	items, err := splitItems(raw)
	if err != nil {
		if relation != RelationLocations {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedRemoteRecord, relation, err)
		}
		log.Warn().Err(err).Str("parent_id", parentID).Msg("unreadable locations blob, storing empty list")
		items = nil
	}

	now := s.now()
	used := make(map[string]struct{}, len(items))
	out := make([]models.RelatedRecord, 0, len(items))
	for i, item := range items {
		id := relatedID(item)
		if id == "" {
			id = strconv.Itoa(i)
		}
		if _, dup := used[id]; dup {
			id = id + "#" + strconv.Itoa(i)
		}
		used[id] = struct{}{}

		out = append(out, models.RelatedRecord{
			Relation:      relation,
			ParentID:      parentID,
			ContentItemID: id,
			Payload:       item,
			SyncedAt:      now,
		})
	}
	return out, nil
}

// relatedID picks the row key of a related item: contentItemId, then id.
// Numeric ids are accepted.
func relatedID(item json.RawMessage) string {
	var keys struct {
		ContentItemID json.RawMessage `json:"contentItemId"`
		ID            json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(item, &keys); err != nil {
		return ""
	}

	for _, v := range []json.RawMessage{keys.ContentItemID, keys.ID} {
		if len(v) == 0 || string(v) == "null" {
			continue
		}
		var str string
		if err := json.Unmarshal(v, &str); err == nil {
			if str != "" {
				return str
			}
			continue
		}
		return string(v)
	}
	return ""
}

// prune deletes rows of kind (under parentID when set) whose id was not
// seen in the remote listing. Rows created offline and not yet pushed are
// never pruned.
func (s *clientSyncService) prune(ctx context.Context, kind models.EntityKind, parentID string, seen map[string]struct{}) (int, error) {
	ids, err := s.entities.ListIDs(ctx, kind, parentID)
	if err != nil {
		return 0, err
	}
	localOnly, err := s.entities.ListLocalOnlyIDs(ctx, kind, parentID)
	if err != nil {
		return 0, err
	}

	keep := make(map[string]struct{}, len(localOnly))
	for _, id := range localOnly {
		keep[id] = struct{}{}
	}

	var stale []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		if _, ok := keep[id]; ok {
			continue
		}
		stale = append(stale, id)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	n, err := s.entities.DeleteRecords(ctx, kind, stale)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Str("kind", kind.String()).Str("parent_id", parentID).Int64("deleted", n).Msg("pruned rows removed upstream")
	return int(n), nil
}
