package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balancedSamples builds a clearly separable training set: big positive
// rating gaps end in home wins, big negative gaps in away wins, small gaps
// in draws
func balancedSamples() []TrainingSample {
	var samples []TrainingSample
	for i := 0; i < 40; i++ {
		samples = append(samples,
			TrainingSample{EloDiff: 350, Outcome: OutcomeHome},
			TrainingSample{EloDiff: -350, Outcome: OutcomeAway},
			TrainingSample{EloDiff: 10, Outcome: OutcomeDraw},
		)
	}
	return samples
}

func TestTrainRejectsEmptySampleSet(t *testing.T) {
	c := NewClassifier()
	err := c.Train(nil)
	require.Error(t, err)
	assert.False(t, c.Trained)
}

func TestPredictRequiresTraining(t *testing.T) {
	c := NewClassifier()
	_, _, _, err := c.Predict(120)
	assert.Error(t, err)
}

func TestTrainedClassifierSeparatesOutcomes(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train(balancedSamples()))
	assert.True(t, c.Trained)
	assert.Equal(t, 120, c.Samples)

	pHome, pDraw, pAway, err := c.Predict(350)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pHome+pDraw+pAway, 1e-9)
	assert.Greater(t, pHome, pAway, "big positive gap should favour the home side")

	pHome, _, pAway, err = c.Predict(-350)
	require.NoError(t, err)
	assert.Greater(t, pAway, pHome, "big negative gap should favour the away side")
}

func TestPredictProbabilitiesAreValid(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train(balancedSamples()))

	for _, diff := range []float64{-600, -100, 0, 100, 600} {
		pHome, pDraw, pAway, err := c.Predict(diff)
		require.NoError(t, err)
		for _, p := range []float64{pHome, pDraw, pAway} {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
		assert.InDelta(t, 1.0, pHome+pDraw+pAway, 1e-9)
	}
}

func TestClassifierParamsRoundTrip(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train(balancedSamples()))

	params, err := c.MarshalParams()
	require.NoError(t, err)

	restored := NewClassifier()
	require.NoError(t, restored.UnmarshalParams(params))
	assert.True(t, restored.Trained)
	assert.Equal(t, c.Weights, restored.Weights)
	assert.Equal(t, c.Biases, restored.Biases)

	original, _, _, err := c.Predict(200)
	require.NoError(t, err)
	loaded, _, _, err := restored.Predict(200)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
