package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultPoddsConfig()
	require.NoError(t, ValidateConfig(config))

	assert.Equal(t, 30.0, config.EloKFactor)
	assert.Equal(t, 100.0, config.HomeAdvantage)
	assert.Equal(t, 1500.0, config.DefaultRating)
	assert.Equal(t, 8000, config.PoissonSimulations)
	assert.Equal(t, 70.0, config.DiamondThreshold)
	assert.Equal(t, 55.0, config.GoldThreshold)
	assert.Equal(t, 1.80, config.SimulatedOdds)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	bad := DefaultPoddsConfig()
	bad.PoissonSimulations = 0
	assert.Error(t, ValidateConfig(bad))

	bad = DefaultPoddsConfig()
	bad.EloKFactor = -1
	assert.Error(t, ValidateConfig(bad))

	assert.Error(t, ValidateConfig(nil))
}

func TestEnvOverrides(t *testing.T) {
	t.Cleanup(func() { UpdateConfig(DefaultPoddsConfig()) })
	t.Setenv("PODDS_SIMULATIONS", "5000")
	t.Setenv("PODDS_BET_THRESHOLD", "80")

	config, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5000, config.PoissonSimulations)
	assert.Equal(t, 80.0, config.BetConfidenceThreshold)
	assert.Same(t, config, Config, "the loaded configuration becomes active")
}

func TestEnvOverrideRejectsGarbage(t *testing.T) {
	t.Cleanup(func() { UpdateConfig(DefaultPoddsConfig()) })
	t.Setenv("PODDS_SIMULATIONS", "lots")

	_, err := LoadConfigFromEnv()
	assert.Error(t, err)
}
