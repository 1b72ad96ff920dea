package http

import (
	"github.com/MKhiriev/health-keeper/internal/adapter"
	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/service"
)

type Handler struct {
	services   *service.Services
	classifier adapter.Classifier

	// encrypted selects whether per-user documents are stored through the
	// cipher. It is on whenever a master secret is configured.
	encrypted bool

	app config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, classifier adapter.Classifier, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		classifier: classifier,
		encrypted:  cfg.App.MasterSecret != "",
		app:        cfg.App,
		logger:     logger,
	}
}
