package app

import (
	"context"
	"fmt"
	"io"

	"ahha/internal/config"
	"ahha/internal/inputprocessor"
	"ahha/internal/metrics"
	"ahha/internal/services"
	"ahha/internal/store"
	"ahha/internal/store/primary"
	"ahha/internal/store/sqlite"
	"ahha/pkg/tagger"

	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config

	SnippetStore store.SnippetStore
	JobClient    store.JobClient // nil unless async tagging is enabled
	Tagger       tagger.Tagger   // nil when tagging is disabled
	Processor    inputprocessor.Processor
	Metrics      *metrics.Metrics

	// --- Initialized Services ---
	TaggingService *services.TaggingService
	SnippetService *services.SnippetService

	closers []io.Closer
}

// Options tunes NewApp for a particular command.
type Options struct {
	// WithJobClient forces a Redis job client even when async tagging is off.
	WithJobClient bool
}

func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	app := &App{
		Config:    cfg,
		Processor: inputprocessor.New(nil),
		Metrics:   metrics.NewMetrics(),
	}

	if err := app.initSnippetStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(opts); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initTagger(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initCoreServices()

	log.Debug("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initSnippetStore(ctx context.Context) error {
	var (
		s   store.SnippetStore
		err error
	)
	switch a.Config.Database.Driver {
	case config.DriverPostgres:
		s, err = primary.NewPrimaryStore(ctx, a.Config.Database.DSN)
	case config.DriverSQLite, "":
		s, err = sqlite.NewSQLiteStore(ctx, a.Config.Database.DSN)
	default:
		err = fmt.Errorf("unsupported database driver %q", a.Config.Database.Driver)
	}
	if err != nil {
		return fmt.Errorf("init snippet store: %w", err)
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return fmt.Errorf("init snippet store: %w", err)
	}
	a.SnippetStore = s
	a.closers = append(a.closers, s)
	log.WithField("driver", a.Config.Database.Driver).Debug("Snippet store ready")
	return nil
}

func (a *App) initJobClient(opts Options) error {
	if !opts.WithJobClient && !(a.Config.Tagging.Enabled && a.Config.Tagging.Async) {
		return nil
	}
	jc, err := store.NewAsynqJobClient(store.RedisOpt(a.Config.Redis.Address, a.Config.Redis.Password, a.Config.Redis.DB))
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	a.closers = append(a.closers, jc)
	return nil
}

func (a *App) initTagger(ctx context.Context) error {
	t, err := NewTagger(ctx, a.Config)
	if err != nil {
		return fmt.Errorf("init tagger: %w", err)
	}
	if t == nil {
		log.Info("LLM tagging disabled")
		return nil
	}
	a.Tagger = t
	if c, ok := t.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	log.Infof("LLM tagging enabled (%s)", t.Name())
	return nil
}

func (a *App) initCoreServices() {
	a.TaggingService = services.NewTaggingService(a.Tagger, a.Config.Tagging.Timeout, a.Metrics)
	a.SnippetService = services.NewSnippetService(services.SnippetServiceDeps{
		SnippetStore: a.SnippetStore,
		JobClient:    a.JobClient,
		Tagging:      a.TaggingService,
		Metrics:      a.Metrics,
		AsyncTagging: a.Config.Tagging.Async,
	})
}

// NewTagger builds the configured LLM tagger. It returns nil when tagging is
// disabled or the provider has no API key.
func NewTagger(ctx context.Context, cfg *config.Config) (tagger.Tagger, error) {
	if !cfg.Tagging.Enabled || cfg.Tagging.Provider == config.ProviderNone {
		return nil, nil
	}

	instruction, err := config.LoadPromptContent(cfg.Tagging.Prompt)
	if err != nil {
		return nil, err
	}

	switch cfg.Tagging.Provider {
	case config.ProviderGemini, "":
		if cfg.Gemini.APIKey == "" {
			log.Warn("Gemini API key not provided (GOOGLE_API_KEY). LLM tagging will be disabled.")
			return nil, nil
		}
		return tagger.NewGeminiTagger(ctx, cfg.Gemini.APIKey, cfg.Tagging.Model, instruction)
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			log.Warn("OpenAI API key not provided (OPENAI_API_KEY). LLM tagging will be disabled.")
			return nil, nil
		}
		client := tagger.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		return tagger.NewOpenAITagger(client, cfg.Tagging.Model, instruction), nil
	default:
		return nil, fmt.Errorf("unknown tagging provider %q", cfg.Tagging.Provider)
	}
}

func (a *App) cleanupPartialInit() {
	if err := a.Close(); err != nil {
		log.WithError(err).Warn("Error during partial init cleanup")
	}
}

// Close releases every resource opened by NewApp, newest first.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
