package service

import (
	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

type ClientServices struct {
	SyncService      ClientSyncService
	QueueService     ClientSyncQueueService
	LocalEditService ClientLocalEditService
	AppInfoService   AppInfoService
	SyncJob          ClientSyncJob
	Session          *SyncSession
}

func NewClientServices(repos *store.Repositories, gateway adapter.Gateway, cfg *config.StructuredConfig, logger *logger.Logger) (*ClientServices, error) {
	appInfo, err := NewAppInfoService(cfg.App, repos.History, logger)
	if err != nil {
		return nil, err
	}

	reporter := NewLogReporter(logger)
	session := NewSyncSession()
	syncSvc := NewClientSyncService(repos, gateway, reporter, cfg.Workers.FanOutLimit, logger)

	return &ClientServices{
		SyncService:      syncSvc,
		QueueService:     NewClientSyncQueueService(repos, logger),
		LocalEditService: NewClientLocalEditService(repos, logger),
		AppInfoService:   appInfo,
		SyncJob:          NewClientSyncJob(syncSvc, session, logger),
		Session:          session,
	}, nil
}
