package primary

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"ahha/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// StoreImpl implements store.SnippetStore using PostgreSQL.
type StoreImpl struct {
	db *pgxpool.Pool
}

// NewPrimaryStore creates a new PostgreSQL primary store implementation.
func NewPrimaryStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

// Migrate creates the schema if it does not exist yet.
func (s *StoreImpl) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection pool.
func (s *StoreImpl) Close() error {
	s.db.Close()
	return nil
}

// --- Helper Functions ---

const snippetColumns = `id, title, content, permalink_to_origin, notes, content_type, generated_tags, timestamp`

// scanSnippet scans a single row into a models.Snippet. Columns must be in
// snippetColumns order.
func scanSnippet(row pgx.Row, dest *models.Snippet) error {
	err := row.Scan(
		&dest.ID,
		&dest.Title,
		&dest.Content,
		&dest.PermalinkToOrigin,
		&dest.Notes,
		&dest.ContentType,
		&dest.GeneratedTags,
		&dest.Timestamp,
	)
	if err != nil {
		return err
	}
	if dest.GeneratedTags == nil {
		dest.GeneratedTags = []string{}
	}
	return nil
}
