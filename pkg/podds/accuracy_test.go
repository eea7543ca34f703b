package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAccuracy(t *testing.T) {
	predictions := []*Prediction{
		// Correct home pick, over hits (3 goals), btts miss (predicted yes)
		{HomeTeam: "Leeds", AwayTeam: "Derby", HomeWin: 0.75, Draw: 0.15, AwayWin: 0.10, Over2p5: 0.60, BothTeamsScore: 0.55},
		// Wrong away pick, under hits, btts hits (predicted no)
		{HomeTeam: "Forest", AwayTeam: "Villa", HomeWin: 0.20, Draw: 0.20, AwayWin: 0.60, Over2p5: 0.30, BothTeamsScore: 0.40},
		// No matching result, ignored
		{HomeTeam: "Wolves", AwayTeam: "Fulham", HomeWin: 0.50, Draw: 0.30, AwayWin: 0.20},
	}
	played := []*Match{
		{HomeTeam: "Leeds", AwayTeam: "Derby", HomeGoals: 3, AwayGoals: 0, Date: day(1)},
		{HomeTeam: "Forest", AwayTeam: "Villa", HomeGoals: 1, AwayGoals: 0, Date: day(1)},
	}

	report := EvaluateAccuracy(predictions, played)

	assert.Equal(t, 2, report.Evaluated)
	assert.Equal(t, 1, report.OutcomeHits)
	assert.InDelta(t, 50.0, report.OutcomeAccuracy, 1e-9)
	assert.Equal(t, 2, report.Over2p5Hits)
	assert.Equal(t, 1, report.BttsHits)

	// Only the 75% pick was Diamond grade, and it hit
	assert.Equal(t, 1, report.DiamondEvaluated)
	assert.Equal(t, 1, report.DiamondHits)
	assert.InDelta(t, 100.0, report.DiamondAccuracy, 1e-9)
}

func TestEvaluateAccuracyEmptyInput(t *testing.T) {
	report := EvaluateAccuracy(nil, nil)
	assert.Equal(t, 0, report.Evaluated)
	assert.Zero(t, report.OutcomeAccuracy)
	assert.NotEmpty(t, report.String())
}
