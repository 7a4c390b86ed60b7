package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ahha/internal/keywords"
	"ahha/internal/metrics"
	"ahha/internal/models"
	"ahha/internal/store"
	"ahha/internal/util"
	"ahha/pkg/tagger"

	log "github.com/sirupsen/logrus"
)

// SnippetService holds the snippet use cases shared by the HTTP API, the CLI
// and the tagging worker.
type SnippetService struct {
	snippets store.SnippetStore
	jobs     store.JobClient
	tagging  *TaggingService
	metrics  *metrics.Metrics
	async    bool
}

type SnippetServiceDeps struct {
	SnippetStore store.SnippetStore
	JobClient    store.JobClient // Required when AsyncTagging is set
	Tagging      *TaggingService
	Metrics      *metrics.Metrics
	AsyncTagging bool
}

func NewSnippetService(deps SnippetServiceDeps) *SnippetService {
	m := deps.Metrics
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &SnippetService{
		snippets: deps.SnippetStore,
		jobs:     deps.JobClient,
		tagging:  deps.Tagging,
		metrics:  m,
		async:    deps.AsyncTagging,
	}
}

type CreateSnippetParams struct {
	Title             string
	Content           string
	PermalinkToOrigin *string
	Notes             *string
	ContentType       *string
	Timestamp         time.Time
}

// CreateSnippet validates and stores a snippet. Tags are generated before
// saving, or by a background job after saving when async tagging is on.
// Tagging problems never fail the request.
func (s *SnippetService) CreateSnippet(ctx context.Context, params CreateSnippetParams) (*models.Snippet, error) {
	title := strings.TrimSpace(params.Title)
	content := util.CleanText(params.Content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", models.ErrValidation)
	}

	contentType, err := normalizeContentType(params.ContentType)
	if err != nil {
		return nil, err
	}

	ts := params.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	snippet := &models.Snippet{
		Title:             title,
		Content:           content,
		PermalinkToOrigin: trimmedOrNil(params.PermalinkToOrigin),
		Notes:             trimmedOrNil(params.Notes),
		ContentType:       contentType,
		GeneratedTags:     []string{},
		Timestamp:         ts,
	}

	queue := s.async && s.jobs != nil && s.tagging.Enabled()
	if !queue {
		snippet.GeneratedTags = s.tagging.TagsOrEmpty(ctx, snippet)
	}

	if err := s.snippets.CreateSnippet(ctx, snippet); err != nil {
		return nil, fmt.Errorf("create snippet: %w", err)
	}
	s.metrics.SnippetsCreatedTotal.Inc()

	if queue {
		if err := s.jobs.EnqueueTaggingJob(ctx, snippet.ID); err != nil {
			log.WithError(err).WithField("snippet_id", snippet.ID).Warn("Failed to enqueue tagging job")
		} else {
			s.metrics.TaggingTotal.WithLabelValues(s.tagging.Name(), metrics.ResultQueued).Inc()
		}
	}

	log.WithFields(log.Fields{
		"snippet_id": snippet.ID,
		"tags":       len(snippet.GeneratedTags),
		"queued":     queue,
	}).Info("Snippet saved")
	return snippet, nil
}

func (s *SnippetService) GetSnippet(ctx context.Context, id string) (*models.Snippet, error) {
	return s.snippets.GetSnippet(ctx, id)
}

func (s *SnippetService) ListSnippets(ctx context.Context, params store.ListParams) ([]*models.Snippet, error) {
	params.Search = strings.TrimSpace(params.Search)
	return s.snippets.ListSnippets(ctx, params)
}

func (s *SnippetService) DeleteSnippet(ctx context.Context, id string) error {
	if err := s.snippets.DeleteSnippet(ctx, id); err != nil {
		return err
	}
	s.metrics.SnippetsDeletedTotal.Inc()
	log.WithField("snippet_id", id).Info("Snippet deleted")
	return nil
}

// SetTags replaces a snippet's tags with a normalised copy of tags.
func (s *SnippetService) SetTags(ctx context.Context, id string, tags []string) ([]string, error) {
	normalized := tagger.ParseTags(strings.Join(tags, ","))
	if err := s.snippets.UpdateSnippetTags(ctx, id, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// TagSnippet runs the LLM tagger on a stored snippet and saves the result.
// Unlike CreateSnippet it reports tagger errors so callers can retry.
func (s *SnippetService) TagSnippet(ctx context.Context, id string) ([]string, error) {
	snippet, err := s.snippets.GetSnippet(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagging.GenerateTags(ctx, snippet)
	if err != nil {
		return nil, fmt.Errorf("generate tags for snippet %s: %w", id, err)
	}
	if err := s.snippets.UpdateSnippetTags(ctx, id, tags); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"snippet_id": id, "tags": tags}).Info("Snippet tagged")
	return tags, nil
}

// SuggestTags returns keyword-frequency tag suggestions for text.
func (s *SnippetService) SuggestTags(text string) []string {
	tags := keywords.SuggestTags(text)
	s.metrics.ObserveSuggestion(tags)
	return tags
}

// Ping checks the backing store.
func (s *SnippetService) Ping(ctx context.Context) error {
	return s.snippets.Ping(ctx)
}

func normalizeContentType(ct *string) (*string, error) {
	if ct == nil {
		return nil, nil
	}
	v := strings.ToLower(strings.TrimSpace(*ct))
	switch v {
	case "":
		return nil, nil
	case models.ContentTypeText, models.ContentTypeHTML:
		return &v, nil
	default:
		return nil, fmt.Errorf("%w: content_type must be %q or %q", models.ErrValidation, models.ContentTypeHTML, models.ContentTypeText)
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// IsNotFound reports whether err means the snippet does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
