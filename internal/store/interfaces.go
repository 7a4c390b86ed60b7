package store

import (
	"context"

	"ahha/internal/models"

	"github.com/hibiken/asynq"
)

// --- Job Client ---

type JobClient interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueTaggingJob(ctx context.Context, snippetID string) error
	Close() error
}

// --- Snippet Store ---

// ListParams controls ListSnippets. An empty Search returns every snippet.
type ListParams struct {
	Search string
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Normalize applies the default and maximum page size.
func (p ListParams) Normalize() ListParams {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type SnippetStore interface {
	// CreateSnippet inserts the snippet, assigning a new UUID when ID is empty.
	CreateSnippet(ctx context.Context, snippet *models.Snippet) error
	GetSnippet(ctx context.Context, id string) (*models.Snippet, error)
	// ListSnippets returns snippets newest first. A search term matches the
	// title, content or notes case-insensitively, or any tag exactly.
	ListSnippets(ctx context.Context, params ListParams) ([]*models.Snippet, error)
	UpdateSnippetTags(ctx context.Context, id string, tags []string) error
	DeleteSnippet(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
