package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_GENAI_MODEL", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8010", cfg.Server.Address)
	assert.Equal(t, []string{"http://localhost", "http://localhost:5173", "http://127.0.0.1:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "ahha.db", cfg.Database.DSN)
	assert.True(t, cfg.Tagging.Enabled)
	assert.Equal(t, ProviderGemini, cfg.Tagging.Provider)
	assert.Equal(t, 30*time.Second, cfg.Tagging.Timeout)
	assert.Equal(t, 5, cfg.Worker.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	yaml := `
server:
  address: 127.0.0.1:9000
database:
  driver: postgres
  dsn: postgres://localhost/ahha
tagging:
  provider: openai
  timeout: 5s
`
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AHHA_REDIS_ADDRESS", "redis:6380")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, ProviderOpenAI, cfg.Tagging.Provider)
	assert.Equal(t, 5*time.Second, cfg.Tagging.Timeout)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "redis:6380", cfg.Redis.Address)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AHHA_TEST_DOTENV_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AHHA_TEST_DOTENV_KEY") })

	_, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", os.Getenv("AHHA_TEST_DOTENV_KEY"))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	_, err := LoadConfig("does-not-exist.yaml")
	assert.Error(t, err)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	chdirTemp(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "database.driver"},
		{name: "missing dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: "database.dsn"},
		{name: "bad provider", mutate: func(c *Config) { c.Tagging.Provider = "claude" }, wantErr: "tagging.provider"},
		{name: "provider ignored when disabled", mutate: func(c *Config) {
			c.Tagging.Enabled = false
			c.Tagging.Provider = "claude"
		}},
		{name: "zero timeout", mutate: func(c *Config) { c.Tagging.Timeout = 0 }, wantErr: "tagging.timeout"},
		{name: "async without redis", mutate: func(c *Config) {
			c.Tagging.Async = true
			c.Redis.Address = ""
		}, wantErr: "redis.address"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Worker.Concurrency = 0 }, wantErr: "worker.concurrency"},
		{name: "bad queue priority", mutate: func(c *Config) { c.Worker.Queues = map[string]int{"tagging": 0} }, wantErr: "priority"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadPromptContent(t *testing.T) {
	got, err := LoadPromptContent("")
	require.NoError(t, err)
	assert.Empty(t, got)

	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("  only tags please \n"), 0o644))
	got, err = LoadPromptContent(path)
	require.NoError(t, err)
	assert.Equal(t, "only tags please", got)

	_, err = LoadPromptContent(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
