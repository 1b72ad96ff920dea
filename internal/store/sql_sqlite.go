package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/logger"
)

// sqliteSchema bootstraps the single table the embedded backend needs.
// Kept inline instead of going through goose: the file is created on first
// run and there is no migration history to manage for one table.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS health_documents (
    user_id    TEXT PRIMARY KEY,
    payload    BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// NewConnectSQLite opens the embedded SQLite database for the document
// store, creating the database file and schema if they do not exist yet.
func NewConnectSQLite(ctx context.Context, cfg config.SQLite, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, sqliteSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating schema")
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
