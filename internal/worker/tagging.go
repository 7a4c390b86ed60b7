package worker

import (
	"context"
	"errors"
	"fmt"

	"ahha/internal/services"
	"ahha/internal/store"
	"ahha/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// SnippetTagger tags a stored snippet by ID.
type SnippetTagger interface {
	TagSnippet(ctx context.Context, id string) ([]string, error)
}

type TagSnippetDeps struct {
	Tagger SnippetTagger
}

// HandleTagSnippetJob returns the asynq handler for tasks.TypeTagSnippet.
// Bad payloads, missing snippets and a disabled tagger are not retried.
func HandleTagSnippetJob(deps TagSnippetDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		payload, err := tasks.DecodeTagSnippetPayload(t.Payload())
		if err != nil {
			log.WithError(err).Error("Discarding tagging task with invalid payload")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger := log.WithField("snippet_id", payload.SnippetID)
		tags, err := deps.Tagger.TagSnippet(ctx, payload.SnippetID)
		switch {
		case err == nil:
			logger.WithField("tags", tags).Info("Tagging job completed")
			return nil
		case errors.Is(err, store.ErrNotFound):
			logger.Warn("Snippet no longer exists, dropping tagging job")
			return fmt.Errorf("snippet %s: %w", payload.SnippetID, asynq.SkipRetry)
		case errors.Is(err, services.ErrTaggingDisabled):
			logger.Warn("Tagging is disabled, dropping tagging job")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		default:
			logger.WithError(err).Error("Tagging job failed")
			return err
		}
	}
}

// RegisterHandlers wires all task handlers into mux.
func RegisterHandlers(mux *asynq.ServeMux, tagging TagSnippetDeps) {
	log.Infof("Registering %s handler", tasks.TypeTagSnippet)
	mux.Handle(tasks.TypeTagSnippet, HandleTagSnippetJob(tagging))
}
