// Package migrations embeds the goose SQL migrations that create the
// health_documents table used by the Postgres document store.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var migrationFiles embed.FS

// Migrate applies all pending migrations to db.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationFiles)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	return nil
}
