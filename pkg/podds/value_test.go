package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		probability float64
		expected    Tier
	}{
		{95.0, TierDiamond},
		{70.0, TierDiamond},
		{69.999, TierGold},
		{55.0, TierGold},
		{54.999, TierSilver},
		{10.0, TierSilver},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierFor(tt.probability), "probability %.3f", tt.probability)
	}
}

func TestEdgeComputation(t *testing.T) {
	edge, ok := Edge(2.0, 55.0)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, edge, 1e-9)

	edge, ok = Edge(1.5, 55.0)
	assert.True(t, ok)
	assert.InDelta(t, -11.6667, edge, 0.001)
}

func TestEdgeSkipsUnsuppliedOdds(t *testing.T) {
	_, ok := Edge(1.0, 55.0)
	assert.False(t, ok)
	_, ok = Edge(0, 55.0)
	assert.False(t, ok)
	_, ok = Edge(-2.0, 55.0)
	assert.False(t, ok)
}

func TestValueReportSkipsMissingMarkets(t *testing.T) {
	prediction := &Prediction{
		HomeWin:        0.55,
		Draw:           0.25,
		AwayWin:        0.20,
		Over2p5:        0.60,
		BothTeamsScore: 0.50,
	}

	report := ValueReport(prediction, MatchOdds{Home: 2.0, Over2p5: 1.4})
	assert.Len(t, report, 2)

	assert.Equal(t, "Home", report[0].Market)
	assert.InDelta(t, 5.0, report[0].Edge, 1e-9)
	assert.True(t, report[0].Value)

	// 60% against implied 71.4% is no value
	assert.Equal(t, "Over 2.5", report[1].Market)
	assert.Less(t, report[1].Edge, 0.0)
	assert.False(t, report[1].Value)
}
