package logs

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, configLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, configLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, configLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, configLogLevel("nonsense"))
}

func TestNewSlogLoggerWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "storefront")

	logger := NewSlogLogger()

	assert.NotNil(t, logger)
	logger.Info("service attribute applied")
}
