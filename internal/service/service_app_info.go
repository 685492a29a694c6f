package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// appInfoService reports the build version and how fresh the local cache is
// on the upload side.
type appInfoService struct {
	appVersion string
	history    store.HistoryRepository

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, history store.HistoryRepository, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		history:    history,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetStatus(ctx context.Context) (models.AppStatus, error) {
	status := models.AppStatus{Version: s.appVersion}
	if s.history == nil {
		return status, nil
	}

	last, err := s.history.ListHistory(ctx, 1)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "appInfoService.GetStatus").Msg("failed to read push history")
		return models.AppStatus{}, err
	}
	if len(last) > 0 {
		status.LastPushAt = last[0].SyncedAt
		status.LastPushedKind = last[0].Kind
	}

	return status, nil
}
