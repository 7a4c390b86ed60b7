package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"ahha/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_LevelAndFormat(t *testing.T) {
	logger := log.New()
	var buf bytes.Buffer

	closer, err := configure(logger, config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.WithField("snippet_id", "abc").Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"snippet_id":"abc"`)
	assert.Contains(t, out, `"msg":"shown"`)
}

func TestConfigure_InvalidLevel(t *testing.T) {
	_, err := configure(log.New(), config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestConfigure_File(t *testing.T) {
	logger := log.New()
	path := filepath.Join(t.TempDir(), "ahha.log")
	var buf bytes.Buffer

	closer, err := configure(logger, config.LogConfig{File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	logger.Info("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}
