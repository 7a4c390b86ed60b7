package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the Prometheus collectors for snippet and tagging activity.
type Metrics struct {
	SnippetsCreatedTotal prometheus.Counter
	SnippetsDeletedTotal prometheus.Counter

	// Keyword suggestions served, by whether any tag was found.
	TagSuggestionsTotal *prometheus.CounterVec

	// LLM tagging outcomes and latency, by provider.
	TaggingTotal    *prometheus.CounterVec
	TaggingDuration *prometheus.HistogramVec
}

// Result labels for TaggingTotal.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultDisabled = "disabled"
	ResultQueued   = "queued"
)

// NewMetrics returns the process-wide metrics, registering them with the
// default registry on first use. All metrics are prefixed with "ahha_".
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			SnippetsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "ahha_snippets_created_total",
				Help: "Total number of snippets created",
			}),
			SnippetsDeletedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "ahha_snippets_deleted_total",
				Help: "Total number of snippets deleted",
			}),
			TagSuggestionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "ahha_tag_suggestions_total",
					Help: "Total number of keyword tag suggestions served",
				},
				[]string{"outcome"}, // "tags" or "empty"
			),
			TaggingTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "ahha_tagging_total",
					Help: "Total number of LLM tagging attempts",
				},
				[]string{"provider", "result"},
			),
			TaggingDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "ahha_tagging_duration_seconds",
					Help:    "Duration of LLM tagging calls in seconds",
					Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
				},
				[]string{"provider"},
			),
		}
	})
	return globalMetrics
}

// ObserveSuggestion records one keyword suggestion result.
func (m *Metrics) ObserveSuggestion(tags []string) {
	outcome := "tags"
	if len(tags) == 0 {
		outcome = "empty"
	}
	m.TagSuggestionsTotal.WithLabelValues(outcome).Inc()
}
