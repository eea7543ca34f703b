package podds

import (
	"fmt"
	"math"
)

// Prediction is the ensemble output for one fixture. The three outcome
// probabilities and both goal-market probabilities are fractions in [0,1];
// the outcome triple sums to 1 within floating tolerance because each
// sub-estimator already sums to 1 and the ensemble is their mean.
type Prediction struct {
	HomeTeam       string
	AwayTeam       string
	HomeWin        float64
	Draw           float64
	AwayWin        float64
	HomeXg         float64
	AwayXg         float64
	Over2p5        float64
	BothTeamsScore float64
}

// MaxOutcome returns the favoured outcome and its probability
func (p *Prediction) MaxOutcome() (Outcome, float64) {
	best := OutcomeHome
	max := p.HomeWin
	if p.Draw > max {
		best, max = OutcomeDraw, p.Draw
	}
	if p.AwayWin > max {
		best, max = OutcomeAway, p.AwayWin
	}
	return best, max
}

// Ensemble merges three independent estimators into a single probability
// triple: the Monte Carlo simulator, the rating-based classifier, and a
// closed-form Elo probability formula. It only reads the rating store and
// form book; it owns no state of its own.
type Ensemble struct {
	ratings    *RatingStore
	form       *FormBook
	classifier *Classifier
	simulator  *Simulator
}

// NewEnsemble wires an ensemble over the given collaborators. Passing a nil
// simulator gets a fresh time-seeded one, which keeps simulator randomness
// isolated per ensemble instance.
func NewEnsemble(ratings *RatingStore, form *FormBook, classifier *Classifier, simulator *Simulator) *Ensemble {
	if simulator == nil {
		simulator = NewSimulator()
	}
	return &Ensemble{
		ratings:    ratings,
		form:       form,
		classifier: classifier,
		simulator:  simulator,
	}
}

// Predict runs all three estimators for a fixture and returns their
// unweighted arithmetic mean per outcome. No renormalization is applied to
// the mean; callers must not assume sums beyond floating tolerance.
func (e *Ensemble) Predict(home, away string) (*Prediction, error) {
	if home == "" || away == "" {
		return nil, fmt.Errorf("both team names are required")
	}

	homeXg, awayXg := ExpectedGoals(e.form, home, away)
	sim, err := e.simulator.Simulate(homeXg, awayXg, Config.PoissonSimulations)
	if err != nil {
		return nil, fmt.Errorf("simulation failed for %s vs %s: %w", home, away, err)
	}

	clfHome, clfDraw, clfAway, err := e.classifier.Predict(e.ratings.EloDiff(home, away))
	if err != nil {
		return nil, fmt.Errorf("classifier prediction failed for %s vs %s: %w", home, away, err)
	}

	eloHome, eloDraw, eloAway := eloProbabilities(e.ratings.Rating(home), e.ratings.Rating(away))

	return &Prediction{
		HomeTeam:       home,
		AwayTeam:       away,
		HomeWin:        (sim.HomeWin + clfHome + eloHome) / 3.0,
		Draw:           (sim.Draw + clfDraw + eloDraw) / 3.0,
		AwayWin:        (sim.AwayWin + clfAway + eloAway) / 3.0,
		HomeXg:         homeXg,
		AwayXg:         awayXg,
		Over2p5:        sim.Over2p5,
		BothTeamsScore: sim.BothTeamsScore,
	}, nil
}

// eloProbabilities converts a rating pair into a closed-form outcome triple.
// The draw probability is whatever the two win probabilities leave over,
// floored at the configured value if negative, then all three renormalized.
func eloProbabilities(ratingHome, ratingAway float64) (float64, float64, float64) {
	adjustedHome := ratingHome + Config.HomeAdvantage

	pHome := 1.0 / (1.0 + math.Pow(10, (ratingAway-adjustedHome)/400.0))
	pAway := 1.0 / (1.0 + math.Pow(10, (adjustedHome-ratingAway)/400.0))
	pDraw := 1.0 - (pHome + pAway)
	if pDraw < 0 {
		pDraw = Config.DrawProbabilityFloor
	}

	total := pHome + pDraw + pAway
	return pHome / total, pDraw / total, pAway / total
}
