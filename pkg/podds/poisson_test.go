package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateOutcomesPartitionSampleSet(t *testing.T) {
	sim := NewSeededSimulator(42)
	result, err := sim.Simulate(1.5, 1.2, 8000)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.HomeWin+result.Draw+result.AwayWin, 1e-6)
	for _, p := range []float64{result.HomeWin, result.Draw, result.AwayWin, result.Over2p5, result.BothTeamsScore} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestSimulateIsDeterministicForSameSeed(t *testing.T) {
	first, err := NewSeededSimulator(7).Simulate(1.8, 0.9, 5000)
	require.NoError(t, err)
	second, err := NewSeededSimulator(7).Simulate(1.8, 0.9, 5000)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateHomeSkewForModestEdge(t *testing.T) {
	// Poisson(1.5) vs Poisson(1.2) should favour the home side moderately
	sim := NewSeededSimulator(99)
	result, err := sim.Simulate(1.5, 1.2, 8000)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.HomeWin, 0.40)
	assert.LessOrEqual(t, result.HomeWin, 0.52)
	assert.Greater(t, result.HomeWin, result.AwayWin)
}

func TestSimulateRejectsBadArguments(t *testing.T) {
	sim := NewSeededSimulator(1)

	_, err := sim.Simulate(1.5, 1.2, 0)
	assert.Error(t, err)

	_, err = sim.Simulate(-0.1, 1.2, 1000)
	assert.Error(t, err)

	_, err = sim.Simulate(1.5, -2.0, 1000)
	assert.Error(t, err)
}

func TestSimulateHighScoringFixture(t *testing.T) {
	// Large lambdas exercise the normal approximation branch
	sim := NewSeededSimulator(3)
	result, err := sim.Simulate(35, 31, 2000)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.HomeWin+result.Draw+result.AwayWin, 1e-6)
	assert.InDelta(t, 1.0, result.Over2p5, 1e-9)
	assert.InDelta(t, 1.0, result.BothTeamsScore, 0.01)
}

func TestExpectedGoalsWithNoHistoryUsesAsymmetricDefaults(t *testing.T) {
	fb := NewFormBook()
	homeXg, awayXg := ExpectedGoals(fb, "Leeds", "Derby")

	// (1.5 + 1.5) / 2 and (1.2 + 1.2) / 2 from the configured fallbacks
	assert.InDelta(t, 1.5, homeXg, 1e-9)
	assert.InDelta(t, 1.2, awayXg, 1e-9)
}

func TestExpectedGoalsBlendsAttackAndDefence(t *testing.T) {
	fb := NewFormBook()
	// Leeds score 3 at home, Derby concede 1 away
	fb.RecordMatch("Leeds", "Forest", 3, 0, day(1))
	fb.RecordMatch("Villa", "Derby", 1, 2, day(2))

	homeXg, awayXg := ExpectedGoals(fb, "Leeds", "Derby")
	assert.InDelta(t, (3.0+1.0)/2.0, homeXg, 1e-9)
	assert.InDelta(t, (2.0+0.0)/2.0, awayXg, 1e-9)
}

func TestPoissonRandomZeroLambda(t *testing.T) {
	sim := NewSeededSimulator(1)
	result, err := sim.Simulate(0, 0, 500)
	require.NoError(t, err)

	// Every sample is 0-0
	assert.Equal(t, 1.0, result.Draw)
	assert.Equal(t, 0.0, result.Over2p5)
	assert.Equal(t, 0.0, result.BothTeamsScore)
}
