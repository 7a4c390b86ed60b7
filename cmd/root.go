package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"ahha/internal/app"
	"ahha/internal/config"
	"ahha/internal/logging"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	logCloser io.Closer
)

// skipAppAnnotation marks commands that run without a database or tagger.
const skipAppAnnotation = "ahha/skip-app"

var rootCmd = &cobra.Command{
	Use:   "ahha",
	Short: "Ah-ha snippet store",
	Long: `ahha captures "ah-ha" moments from AI chats and web pages, stores them, and tags
them with keyword suggestions or an LLM (Gemini or OpenAI).`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logCloser, err = logging.Setup(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		if cmd.Annotations[skipAppAnnotation] == "true" {
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg, app.Options{
			WithJobClient: cmd.Name() == "worker",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store the app instance in the command's context
		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		ctx = context.WithValue(ctx, configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appInstance, err := GetAppFromContext(cmd.Context()); err == nil {
			if err := appInstance.Close(); err != nil {
				log.WithError(err).Warn("Error closing application resources")
			}
		}
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const (
	appKey    contextKey = "app"
	configKey contextKey = "config"
)

// Helper function to retrieve the app instance from context
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

// GetConfigFromContext returns the loaded configuration.
func GetConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity, tagging and queue configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		cfg := appInstance.Config
		out := cmd.OutOrStdout()
		ok := color.GreenString("OK")

		fmt.Fprintf(out, "Checking %s database...\n", cfg.Database.Driver)
		if err := appInstance.SnippetStore.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		fmt.Fprintf(out, "  database: %s\n", ok)

		if appInstance.TaggingService.Enabled() {
			fmt.Fprintf(out, "  tagging:  %s (%s)\n", ok, appInstance.TaggingService.Name())
		} else {
			fmt.Fprintf(out, "  tagging:  %s (keyword suggestions only)\n", color.YellowString("disabled"))
		}

		if cfg.Tagging.Async {
			fmt.Fprintf(out, "  queue:    async via redis %s\n", cfg.Redis.Address)
		} else {
			fmt.Fprintf(out, "  queue:    tagging runs inline\n")
		}
		return nil
	},
}
