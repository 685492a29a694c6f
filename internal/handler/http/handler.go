package http

import (
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

type Handler struct {
	services *service.ClientServices
	token    string

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Bool("token_required", cfg.Token != "").Msg("http handler created")
	return &Handler{
		services: services,
		token:    cfg.Token,
		logger:   logger,
	}
}
