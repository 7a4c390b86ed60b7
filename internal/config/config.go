package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Address        string        `mapstructure:"address"`
		AllowedOrigins []string      `mapstructure:"allowed_origins"`
		ReadTimeout    time.Duration `mapstructure:"read_timeout"`
		WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`

	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Tagging struct {
		Enabled  bool          `mapstructure:"enabled"`
		Provider string        `mapstructure:"provider"` // "gemini", "openai" or "none"
		Model    string        `mapstructure:"model"` // Empty selects the provider default
		Prompt   string        `mapstructure:"prompt"` // Path to a custom system instruction
		Async    bool          `mapstructure:"async"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"tagging"`

	Gemini struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"gemini"`

	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"openai"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig controls logger level, format and the optional rotating file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "text" or "json"
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"

	EnvPrefix = "AHHA"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0:8010")
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "ahha.db")

	v.SetDefault("tagging.enabled", true)
	v.SetDefault("tagging.provider", ProviderGemini)
	v.SetDefault("tagging.async", false)
	v.SetDefault("tagging.timeout", 30*time.Second)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("worker.concurrency", 5)
	v.SetDefault("worker.queues", map[string]int{"tagging": 5, "default": 1})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// LoadConfig reads config.yaml (from cfgFile when set, otherwise the working
// directory or $HOME/.config/ahha), a .env file if present and AHHA_* environment variables, in
// increasing order of precedence.
func LoadConfig(cfgFile string) (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ahha"))
		}
	}

	// --- Environment Variable Binding ---
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are also read from their conventional unprefixed names.
	_ = v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openai.api_key", EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("tagging.model", EnvPrefix+"_TAGGING_MODEL", "GOOGLE_GENAI_MODEL")
	// --- End Environment Variable Binding ---

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}
