package service

import (
	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/crypto"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/store"
)

type Services struct {
	RecordService  RecordService
	SessionService SessionService
	AuthService    AuthService
}

func NewServices(storages *store.Storages, cipher crypto.Cipher, pins crypto.PINHasher, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	records := NewRecordService(storages.Documents, cipher, logger)
	sessions := NewSessionService(cfg.Sessions.Timeout, logger)

	return &Services{
		RecordService:  records,
		SessionService: sessions,
		AuthService:    NewAuthService(records, sessions, pins, logger),
	}
}
