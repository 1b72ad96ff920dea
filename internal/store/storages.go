package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/logger"
)

// Storages aggregates the persistence layer handed to the service layer.
type Storages struct {
	// Documents is the active per-user document store.
	Documents DocumentStore

	// db is non-nil only for the SQL backends; kept for Close.
	db *DB
}

// NewStorages constructs the document store selected by cfg.Backend.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.Backend {
	case config.BackendFile:
		documents, err := NewFileDocumentStore(cfg.Files.DataDir, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Documents: documents}, nil

	case config.BackendSQLite:
		db, err := NewConnectSQLite(ctx, cfg.SQLite, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Documents: NewSQLiteDocumentStore(db, log), db: db}, nil

	case config.BackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Documents: NewPostgresDocumentStore(db, log), db: db}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

// Close releases backend resources. Safe to call for every backend.
func (s *Storages) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
