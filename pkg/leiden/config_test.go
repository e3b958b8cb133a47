package leiden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 1.0, cfg.Resolution())
	assert.Equal(t, int64(-1), cfg.RandomSeed())
	assert.Equal(t, 10, cfg.MaxLevels())
	assert.Equal(t, 100, cfg.MaxIterations())
	assert.InDelta(t, 1e-9, cfg.MinModularityGain(), 1e-12)
	assert.Equal(t, "info", cfg.LogLevel())
	assert.False(t, cfg.EnableProgress())
}

func TestConfigSet(t *testing.T) {
	cfg := NewConfig()

	cfg.Set("algorithm.resolution", 2.5)
	cfg.Set("algorithm.random_seed", int64(99))
	cfg.Set("logging.level", "debug")

	assert.Equal(t, 2.5, cfg.Resolution())
	assert.Equal(t, int64(99), cfg.RandomSeed())
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestConfigLoggerFallsBackToInfo(t *testing.T) {
	cfg := NewConfig()
	cfg.Set("logging.level", "not-a-level")

	logger := cfg.CreateLogger()
	assert.Equal(t, "info", logger.GetLevel().String())
}
