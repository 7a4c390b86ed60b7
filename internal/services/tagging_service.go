package services

import (
	"context"
	"errors"
	"time"

	"ahha/internal/metrics"
	"ahha/internal/models"
	"ahha/internal/util"
	"ahha/pkg/tagger"

	log "github.com/sirupsen/logrus"
)

// ErrTaggingDisabled is returned when no tagger is configured.
var ErrTaggingDisabled = errors.New("tagging is disabled")

// TaggingService runs the configured LLM tagger with a deadline and records
// the outcome.
type TaggingService struct {
	tagger  tagger.Tagger
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewTaggingService wraps t. A nil tagger disables LLM tagging.
func NewTaggingService(t tagger.Tagger, timeout time.Duration, m *metrics.Metrics) *TaggingService {
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &TaggingService{tagger: t, timeout: timeout, metrics: m}
}

// Enabled reports whether a tagger is configured.
func (s *TaggingService) Enabled() bool {
	return s != nil && s.tagger != nil
}

// Name returns the tagger name, or "none".
func (s *TaggingService) Name() string {
	if !s.Enabled() {
		return "none"
	}
	return s.tagger.Name()
}

// GenerateTags asks the tagger for tags for the snippet. HTML bodies are
// reduced to their text first.
func (s *TaggingService) GenerateTags(ctx context.Context, snippet *models.Snippet) ([]string, error) {
	if !s.Enabled() {
		if s != nil {
			s.metrics.TaggingTotal.WithLabelValues("none", metrics.ResultDisabled).Inc()
		}
		return nil, ErrTaggingDisabled
	}

	content := snippet.Content
	if snippet.IsHTML() {
		content = util.StripHTML(content)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	name := s.tagger.Name()
	start := time.Now()
	tags, err := s.tagger.GenerateTags(ctx, tagger.Request{Title: snippet.Title, Content: content})
	s.metrics.TaggingDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.TaggingTotal.WithLabelValues(name, metrics.ResultError).Inc()
		return nil, err
	}
	s.metrics.TaggingTotal.WithLabelValues(name, metrics.ResultSuccess).Inc()
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// TagsOrEmpty is GenerateTags with failures logged and reported as no tags.
func (s *TaggingService) TagsOrEmpty(ctx context.Context, snippet *models.Snippet) []string {
	tags, err := s.GenerateTags(ctx, snippet)
	if err != nil {
		if !errors.Is(err, ErrTaggingDisabled) {
			log.WithError(err).WithField("title", snippet.Title).Warn("Tag generation failed, storing snippet without tags")
		}
		return []string{}
	}
	return tags
}
