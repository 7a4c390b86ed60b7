package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ahha/internal/models"
	"ahha/internal/store"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schemaSQL string

var _ store.SnippetStore = (*StoreImpl)(nil)

// StoreImpl implements store.SnippetStore on a SQLite database file. Tags are
// kept as a JSON array in a TEXT column.
type StoreImpl struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at path. Use
// ":memory:" for a throwaway database.
func NewSQLiteStore(ctx context.Context, path string) (*StoreImpl, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	// A single connection keeps :memory: databases shared and avoids
	// SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping sqlite database: %w", err)
	}
	return &StoreImpl{db: db}, nil
}

func (s *StoreImpl) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *StoreImpl) Close() error {
	return s.db.Close()
}

const snippetColumns = `id, title, content, permalink_to_origin, notes, content_type, generated_tags, timestamp`

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *StoreImpl) CreateSnippet(ctx context.Context, snippet *models.Snippet) error {
	if snippet.ID == "" {
		snippet.ID = uuid.NewString()
	}
	if snippet.Timestamp.IsZero() {
		snippet.Timestamp = time.Now().UTC()
	}
	if snippet.GeneratedTags == nil {
		snippet.GeneratedTags = []string{}
	}
	tags, err := encodeTags(snippet.GeneratedTags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snippets (`+snippetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Title,
		snippet.Content,
		nullString(snippet.PermalinkToOrigin),
		nullString(snippet.Notes),
		nullString(snippet.ContentType),
		tags,
		snippet.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("snippet %s: %w", snippet.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert snippet: %w", err)
	}
	log.WithField("snippet_id", snippet.ID).Debug("Snippet created")
	return nil
}

func (s *StoreImpl) GetSnippet(ctx context.Context, id string) (*models.Snippet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+snippetColumns+` FROM snippets WHERE id = ?`, id)
	snippet, err := scanSnippet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snippet %s: %w", id, err)
	}
	return snippet, nil
}

// ListSnippets matches text fields with LIKE, which SQLite only folds for
// ASCII letters.
func (s *StoreImpl) ListSnippets(ctx context.Context, params store.ListParams) ([]*models.Snippet, error) {
	params = params.Normalize()

	query := `
		SELECT ` + snippetColumns + `
		FROM snippets
		WHERE ?1 = ''
		   OR title LIKE ?2 ESCAPE '\'
		   OR content LIKE ?2 ESCAPE '\'
		   OR COALESCE(notes, '') LIKE ?2 ESCAPE '\'
		   OR EXISTS (SELECT 1 FROM json_each(snippets.generated_tags) WHERE LOWER(json_each.value) = LOWER(?1))
		ORDER BY timestamp DESC
		LIMIT ?3 OFFSET ?4`

	rows, err := s.db.QueryContext(ctx, query, params.Search, store.ContainsPattern(params.Search), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer rows.Close()

	snippets := make([]*models.Snippet, 0)
	for rows.Next() {
		snippet, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snippet row: %w", err)
		}
		snippets = append(snippets, snippet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snippet rows: %w", err)
	}
	return snippets, nil
}

func (s *StoreImpl) UpdateSnippetTags(ctx context.Context, id string, tags []string) error {
	encoded, err := encodeTags(tags)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE snippets SET generated_tags = ? WHERE id = ?`, encoded, id)
	if err != nil {
		return fmt.Errorf("failed to update tags for snippet %s: %w", id, err)
	}
	return requireAffected(res)
}

func (s *StoreImpl) DeleteSnippet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet %s: %w", id, err)
	}
	return requireAffected(res)
}

// --- Helper Functions ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnippet(row rowScanner) (*models.Snippet, error) {
	var (
		snippet                      models.Snippet
		permalink, notes, contentTyp sql.NullString
		tags, timestamp              string
	)
	err := row.Scan(
		&snippet.ID,
		&snippet.Title,
		&snippet.Content,
		&permalink,
		&notes,
		&contentTyp,
		&tags,
		&timestamp,
	)
	if err != nil {
		return nil, err
	}
	snippet.PermalinkToOrigin = stringPtr(permalink)
	snippet.Notes = stringPtr(notes)
	snippet.ContentType = stringPtr(contentTyp)

	snippet.GeneratedTags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &snippet.GeneratedTags); err != nil {
			return nil, fmt.Errorf("decode tags for snippet %s: %w", snippet.ID, err)
		}
		if snippet.GeneratedTags == nil {
			snippet.GeneratedTags = []string{}
		}
	}

	snippet.Timestamp, err = time.Parse(timeLayout, timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp for snippet %s: %w", snippet.ID, err)
	}
	return &snippet, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
