package logger

import (
	"testing"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerService_WithoutLicenseKey(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	ls, err := NewLoggerService(cfg)

	require.NoError(t, err)
	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)
}

func TestNilLoggerService(t *testing.T) {
	var ls *LoggerService

	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)
}

func TestNewLogger_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	cfg.Logging.Level = "warn"
	assert.Equal(t, zerolog.WarnLevel, NewLogger(cfg).GetLevel())

	cfg.Logging.Level = ""
	cfg.Environment = "development"
	assert.Equal(t, zerolog.DebugLevel, NewLogger(cfg).GetLevel())
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	base := zerolog.Nop()

	got := WithTraceContext(base, nil)

	assert.Equal(t, base, got)
}
