package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier()
	require.NoError(t, c.Train(balancedSamples()))
	return c
}

func TestEnsemblePredictProbabilitiesInRange(t *testing.T) {
	rs := NewRatingStore()
	rs.ApplyResult("Leeds", "Derby", 2, 0)
	fb := NewFormBook()
	fb.RecordMatch("Leeds", "Derby", 2, 0, day(1))

	ensemble := NewEnsemble(rs, fb, trainedClassifier(t), NewSeededSimulator(11))
	prediction, err := ensemble.Predict("Leeds", "Derby")
	require.NoError(t, err)

	assert.Equal(t, "Leeds", prediction.HomeTeam)
	assert.Equal(t, "Derby", prediction.AwayTeam)
	for _, p := range []float64{
		prediction.HomeWin, prediction.Draw, prediction.AwayWin,
		prediction.Over2p5, prediction.BothTeamsScore,
	} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	assert.InDelta(t, 1.0, prediction.HomeWin+prediction.Draw+prediction.AwayWin, 1e-6)
	assert.Greater(t, prediction.HomeXg, 0.0)
	assert.Greater(t, prediction.AwayXg, 0.0)
}

func TestEnsemblePredictRequiresTeamNames(t *testing.T) {
	ensemble := NewEnsemble(NewRatingStore(), NewFormBook(), trainedClassifier(t), NewSeededSimulator(1))
	_, err := ensemble.Predict("", "Derby")
	assert.Error(t, err)
	_, err = ensemble.Predict("Leeds", "")
	assert.Error(t, err)
}

func TestEnsemblePredictFailsWithUntrainedClassifier(t *testing.T) {
	ensemble := NewEnsemble(NewRatingStore(), NewFormBook(), NewClassifier(), NewSeededSimulator(1))
	_, err := ensemble.Predict("Leeds", "Derby")
	assert.Error(t, err)
}

func TestEloProbabilitiesFavourStrongerSide(t *testing.T) {
	pHome, pDraw, pAway := eloProbabilities(1700, 1500)
	assert.InDelta(t, 1.0, pHome+pDraw+pAway, 1e-9)
	assert.Greater(t, pHome, pAway)

	// Equal ratings still lean home because of the home advantage offset
	pHome, _, pAway = eloProbabilities(1500, 1500)
	assert.Greater(t, pHome, pAway)
}

func TestMaxOutcome(t *testing.T) {
	p := &Prediction{HomeWin: 0.5, Draw: 0.3, AwayWin: 0.2}
	outcome, probability := p.MaxOutcome()
	assert.Equal(t, OutcomeHome, outcome)
	assert.Equal(t, 0.5, probability)

	p = &Prediction{HomeWin: 0.2, Draw: 0.3, AwayWin: 0.5}
	outcome, _ = p.MaxOutcome()
	assert.Equal(t, OutcomeAway, outcome)

	p = &Prediction{HomeWin: 0.3, Draw: 0.4, AwayWin: 0.3}
	outcome, _ = p.MaxOutcome()
	assert.Equal(t, OutcomeDraw, outcome)
}
