package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/health-keeper/internal/logger"
)

// sqlDocumentStore is the relational implementation of [DocumentStore],
// shared by the PostgreSQL and SQLite backends. One row per user in the
// health_documents table; queries are built with squirrel so the same code
// serves both placeholder dialects.
type sqlDocumentStore struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewPostgresDocumentStore constructs a [DocumentStore] over db using
// PostgreSQL ($N) placeholders.
func NewPostgresDocumentStore(db *DB, log *logger.Logger) DocumentStore {
	log.Debug().Msg("creating postgres document store")
	return &sqlDocumentStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  log,
	}
}

// NewSQLiteDocumentStore constructs a [DocumentStore] over db using
// question-mark placeholders.
func NewSQLiteDocumentStore(db *DB, log *logger.Logger) DocumentStore {
	log.Debug().Msg("creating sqlite document store")
	return &sqlDocumentStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}
}

// Read implements [DocumentStore].
func (s *sqlDocumentStore) Read(ctx context.Context, userID string) ([]byte, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select("payload").
		From("health_documents").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building select query: %w", err)
	}

	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		log.Err(err).Str("user_id", userID).Msg("error reading document row")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return payload, nil
}

// Write implements [DocumentStore]. The row is upserted so first and
// subsequent saves go through the same statement; the database guarantees
// the replacement is atomic.
func (s *sqlDocumentStore) Write(ctx context.Context, userID string, payload []byte) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert("health_documents").
		Columns("user_id", "payload", "updated_at").
		Values(userID, payload, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building upsert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if s.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).Str("user_id", userID).Msg("transient DB error writing document")
		} else {
			log.Err(err).Str("user_id", userID).Msg("error writing document row")
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// Delete implements [DocumentStore].
func (s *sqlDocumentStore) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete("health_documents").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building delete query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("error deleting document row")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
