package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the settings required by the enabled features.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}

	if c.Tagging.Enabled {
		switch c.Tagging.Provider {
		case ProviderGemini, ProviderOpenAI, ProviderNone:
		default:
			return fmt.Errorf("tagging.provider must be one of gemini, openai, none, got %q", c.Tagging.Provider)
		}
		if c.Tagging.Timeout <= 0 {
			return errors.New("tagging.timeout must be positive")
		}
		if c.Tagging.Async && c.Redis.Address == "" {
			return errors.New("redis.address is required when tagging.async is true")
		}
	}

	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}
