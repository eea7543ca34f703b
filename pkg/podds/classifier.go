package podds

import (
	"encoding/json"
	"fmt"
	"math"
)

// TrainingSample pairs a pre-match rating differential with the observed
// outcome. One sample exists per processed finished match, generated with the
// ratings as they stood just before that match's update (no look-ahead).
type TrainingSample struct {
	EloDiff float64
	Outcome Outcome
}

// Classifier is a single-feature multinomial logistic regression mapping the
// home-advantage-adjusted rating differential to a 3-way outcome
// distribution. Retraining is a full batch refit over the entire accumulated
// sample set; there is no incremental update.
type Classifier struct {
	// One weight/bias pair per outcome class, indexed by Outcome
	Weights [3]float64 `json:"weights"`
	Biases  [3]float64 `json:"biases"`
	Trained bool       `json:"trained"`
	Samples int        `json:"samples"`
}

// NewClassifier returns an untrained classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Train performs a full batch refit over samples using gradient descent on
// the softmax cross-entropy. An empty sample set is an error and must abort
// the refresh before any state is swapped.
func (c *Classifier) Train(samples []TrainingSample) error {
	if len(samples) == 0 {
		return fmt.Errorf("cannot train classifier on an empty sample set")
	}

	var weights, biases [3]float64
	n := float64(len(samples))
	rate := Config.ClassifierLearningRate

	for iter := 0; iter < Config.ClassifierIterations; iter++ {
		var gradW, gradB [3]float64

		for _, sample := range samples {
			x := sample.EloDiff / Config.ClassifierFeatureScale
			probs := softmax(weights, biases, x)

			for class := 0; class < 3; class++ {
				indicator := 0.0
				if int(sample.Outcome) == class {
					indicator = 1.0
				}
				diff := probs[class] - indicator
				gradW[class] += diff * x
				gradB[class] += diff
			}
		}

		for class := 0; class < 3; class++ {
			weights[class] -= rate * gradW[class] / n
			biases[class] -= rate * gradB[class] / n
		}
	}

	c.Weights = weights
	c.Biases = biases
	c.Trained = true
	c.Samples = len(samples)
	return nil
}

// Predict returns (pHome, pDraw, pAway) for a rating differential
func (c *Classifier) Predict(eloDiff float64) (float64, float64, float64, error) {
	if !c.Trained {
		return 0, 0, 0, fmt.Errorf("classifier has not been trained")
	}
	probs := softmax(c.Weights, c.Biases, eloDiff/Config.ClassifierFeatureScale)
	return probs[OutcomeHome], probs[OutcomeDraw], probs[OutcomeAway], nil
}

// MarshalParams serializes the trained parameters for snapshot persistence
func (c *Classifier) MarshalParams() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal classifier params: %w", err)
	}
	return string(data), nil
}

// UnmarshalParams restores trained parameters from a snapshot
func (c *Classifier) UnmarshalParams(params string) error {
	if err := json.Unmarshal([]byte(params), c); err != nil {
		return fmt.Errorf("failed to unmarshal classifier params: %w", err)
	}
	return nil
}

// softmax evaluates the 3-class softmax at one feature value, shifted by the
// max logit for numerical stability
func softmax(weights, biases [3]float64, x float64) [3]float64 {
	var logits [3]float64
	maxLogit := math.Inf(-1)
	for class := 0; class < 3; class++ {
		logits[class] = weights[class]*x + biases[class]
		if logits[class] > maxLogit {
			maxLogit = logits[class]
		}
	}

	var sum float64
	var probs [3]float64
	for class := 0; class < 3; class++ {
		probs[class] = math.Exp(logits[class] - maxLogit)
		sum += probs[class]
	}
	for class := 0; class < 3; class++ {
		probs[class] /= sum
	}
	return probs
}
