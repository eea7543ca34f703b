package podds

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Simulator is the Monte Carlo match outcome estimator. Each Simulator owns
// its own random source so concurrent read-only prediction requests never
// share mutable generator state.
type Simulator struct {
	rng *rand.Rand
}

// SimulationResult holds the empirical outcome and goal-market probabilities
// of one simulation run. All values are fractions in [0,1]; the three outcome
// probabilities partition the sample set and so sum to 1.
type SimulationResult struct {
	HomeWin        float64
	Draw           float64
	AwayWin        float64
	Over2p5        float64
	BothTeamsScore float64
}

// NewSimulator creates a simulator with a fresh time-seeded source
func NewSimulator() *Simulator {
	return NewSeededSimulator(time.Now().UnixNano())
}

// NewSeededSimulator creates a simulator with an explicit seed so that
// outputs are reproducible in tests
func NewSeededSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Simulate draws sampleCount independent Poisson samples for each side's
// goals and returns the empirical outcome fractions. 5,000-10,000 samples
// balances precision (about +/-1% at 95% confidence) against cost.
func (s *Simulator) Simulate(homeXg, awayXg float64, sampleCount int) (*SimulationResult, error) {
	if sampleCount < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", sampleCount)
	}
	if homeXg < 0 || awayXg < 0 {
		return nil, fmt.Errorf("expected goals cannot be negative: %f / %f", homeXg, awayXg)
	}

	var homeWins, draws, awayWins, over, btts int

	for i := 0; i < sampleCount; i++ {
		homeGoals := poissonRandom(homeXg, s.rng)
		awayGoals := poissonRandom(awayXg, s.rng)

		switch {
		case homeGoals > awayGoals:
			homeWins++
		case homeGoals == awayGoals:
			draws++
		default:
			awayWins++
		}

		if float64(homeGoals+awayGoals) > Config.Over2p5GoalsThreshold {
			over++
		}
		if homeGoals > 0 && awayGoals > 0 {
			btts++
		}
	}

	total := float64(sampleCount)
	return &SimulationResult{
		HomeWin:        float64(homeWins) / total,
		Draw:           float64(draws) / total,
		AwayWin:        float64(awayWins) / total,
		Over2p5:        float64(over) / total,
		BothTeamsScore: float64(btts) / total,
	}, nil
}

// ExpectedGoals derives the two Poisson means for a fixture from windowed
// venue form: homeXg = (homeScoredAvg + awayConcededAvg) / 2 and the mirror
// for the away side. The averages come from the home team's home-venue window
// and the away team's away-venue window, with the asymmetric configured
// fallbacks for teams with no history at that venue.
func ExpectedGoals(form *FormBook, home, away string) (float64, float64) {
	homeScored, homeConceded := form.WindowedAverage(home, VenueHome, Config.FormWindow,
		Config.DefaultHomeScored, Config.DefaultHomeConceded)
	awayScored, awayConceded := form.WindowedAverage(away, VenueAway, Config.FormWindow,
		Config.DefaultAwayScored, Config.DefaultAwayConceded)

	homeXg := (homeScored + awayConceded) / 2.0
	awayXg := (awayScored + homeConceded) / 2.0
	return homeXg, awayXg
}

// poissonRandom generates a single random number from a Poisson distribution.
// Uses Knuth's algorithm for small lambda and a normal approximation above it.
func poissonRandom(lambda float64, rng *rand.Rand) int {
	if lambda <= 0 {
		return 0
	}
	if lambda < 30 {
		limit := math.Exp(-lambda)
		k := 0
		p := 1.0

		for p > limit {
			k++
			p *= rng.Float64()
		}

		return k - 1
	}

	normal := rng.NormFloat64()
	sample := int(math.Round(lambda + math.Sqrt(lambda)*normal))
	if sample < 0 {
		sample = 0
	}
	return sample
}
