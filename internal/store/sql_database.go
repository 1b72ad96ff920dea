package store

import (
	"database/sql"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/migrations"
)

// DB wraps *sql.DB with the application logger and an error classifier for
// the active driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations (PostgreSQL backend).
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
