// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"math"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// defaultFanOut bounds concurrent secondary syncs when no limit is set.
const defaultFanOut = 4

type clientSyncService struct {
	gateway       adapter.Gateway
	entities      store.EntityRepository
	related       store.RelatedRepository
	fieldSettings store.FieldSettingsRepository
	history       store.HistoryRepository

	engine   *EntityEngine
	reporter Reporter
	ids      *utils.UUIDGenerator
	fanOut   int
	now      func() time.Time

	logger *logger.Logger
}

// NewClientSyncService wires the pull and push orchestrators. fanOut bounds
// the number of secondary syncs running at once during a pull.
func NewClientSyncService(
	repos *store.Repositories,
	gateway adapter.Gateway,
	reporter Reporter,
	fanOut int,
	logger *logger.Logger,
) ClientSyncService {
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}

	return &clientSyncService{
		gateway:       gateway,
		entities:      repos.Entities,
		related:       repos.Related,
		fieldSettings: repos.FieldSettings,
		history:       repos.History,
		engine:        NewEntityEngine(repos.Entities, reporter, logger),
		reporter:      reporter,
		ids:           utils.NewUUIDGenerator(),
		fanOut:        fanOut,
		now:           time.Now,
		logger:        logger,
	}
}

func (s *clientSyncService) IsOnline(ctx context.Context) bool {
	if err := s.gateway.Ping(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("connectivity probe failed")
		return false
	}
	return true
}

// runContext tags ctx with a run id so that every log entry and telemetry
// report of one cycle can be correlated. A run id already on ctx (the
// control API's trace id) is kept.
func (s *clientSyncService) runContext(ctx context.Context) (context.Context, *logger.Logger) {
	runID, ok := utils.GetRunIDFromContext(ctx)
	if !ok || runID == "" {
		runID = s.ids.Generate()
	}
	log := &logger.Logger{Logger: s.logger.With().Str("run_id", runID).Logger()}
	return utils.WithRunID(ctx, runID), log
}

func (s *clientSyncService) reportErr(ctx context.Context, err error, fields map[string]string) {
	s.reporter.Report(ctx, err, fields)
}

func percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
