package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ahha/internal/models"
	"ahha/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

var _ store.SnippetStore = (*StoreImpl)(nil)

// CreateSnippet inserts a new snippet. An empty ID is replaced by a UUID and a
// zero timestamp by the current time.
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

	query := `
		INSERT INTO snippets (` + snippetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.Exec(ctx, query,
		snippet.ID,
		snippet.Title,
		snippet.Content,
		snippet.PermalinkToOrigin,
		snippet.Notes,
		snippet.ContentType,
		snippet.GeneratedTags,
		snippet.Timestamp,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("snippet %s: %w", snippet.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert snippet: %w", err)
	}
	log.WithField("snippet_id", snippet.ID).Debug("Snippet created")
	return nil
}

// GetSnippet retrieves a snippet by ID.
func (s *StoreImpl) GetSnippet(ctx context.Context, id string) (*models.Snippet, error) {
	query := `SELECT ` + snippetColumns + ` FROM snippets WHERE id = $1`
	var snippet models.Snippet
	if err := scanSnippet(s.db.QueryRow(ctx, query, id), &snippet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snippet %s: %w", id, err)
	}
	return &snippet, nil
}

// ListSnippets returns snippets newest first, optionally filtered by a search
// term.
func (s *StoreImpl) ListSnippets(ctx context.Context, params store.ListParams) ([]*models.Snippet, error) {
	params = params.Normalize()

	query := `
		SELECT ` + snippetColumns + `
		FROM snippets
		WHERE $1 = ''
		   OR title ILIKE $2
		   OR content ILIKE $2
		   OR COALESCE(notes, '') ILIKE $2
		   OR EXISTS (SELECT 1 FROM unnest(generated_tags) AS t(tag) WHERE LOWER(t.tag) = LOWER($1))
		ORDER BY timestamp DESC
		LIMIT $3 OFFSET $4`

	rows, err := s.db.Query(ctx, query, params.Search, store.ContainsPattern(params.Search), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer rows.Close()

	snippets := make([]*models.Snippet, 0)
	for rows.Next() {
		var snippet models.Snippet
		if err := scanSnippet(rows, &snippet); err != nil {
			return nil, fmt.Errorf("failed to scan snippet row: %w", err)
		}
		snippets = append(snippets, &snippet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snippet rows: %w", err)
	}
	return snippets, nil
}

// UpdateSnippetTags replaces the generated tags of a snippet.
func (s *StoreImpl) UpdateSnippetTags(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	tag, err := s.db.Exec(ctx, `UPDATE snippets SET generated_tags = $2 WHERE id = $1`, id, tags)
	if err != nil {
		return fmt.Errorf("failed to update tags for snippet %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteSnippet removes a snippet by ID.
func (s *StoreImpl) DeleteSnippet(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
