package podds

import (
	"math"
	"sort"
)

// RatingStore maintains a per-team Elo rating and its full update history.
// Teams are created lazily on first observed match and never deleted.
type RatingStore struct {
	ratings map[string]float64
	history map[string][]float64
}

// NewRatingStore creates an empty rating store
func NewRatingStore() *RatingStore {
	return &RatingStore{
		ratings: make(map[string]float64),
		history: make(map[string][]float64),
	}
}

// Rating returns the current rating for a team. Unseen teams get the
// configured default rather than an error.
func (rs *RatingStore) Rating(team string) float64 {
	if rating, ok := rs.ratings[team]; ok {
		return rating
	}
	return Config.DefaultRating
}

// History returns the ordered sequence of historical ratings for a team,
// one entry per processed match involving the team
func (rs *RatingStore) History(team string) []float64 {
	return rs.history[team]
}

// EloDiff returns the home-advantage-adjusted rating differential used as the
// classifier feature: (homeRating + HomeAdvantage) - awayRating
func (rs *RatingStore) EloDiff(home, away string) float64 {
	return (rs.Rating(home) + Config.HomeAdvantage) - rs.Rating(away)
}

// ApplyResult updates both teams' ratings from a finished match and appends
// the post-match values to both histories. The update is zero-sum: whatever
// the home side gains the away side loses.
//
// Matches must be applied in chronological order; applying out of order
// yields a different trajectory and there is no detection here. Callers sort
// first (see SortMatchesChronologically).
func (rs *RatingStore) ApplyResult(home, away string, homeGoals, awayGoals int) {
	ratingHome := rs.Rating(home)
	ratingAway := rs.Rating(away)

	expectedHome := expectedScore(ratingHome+Config.HomeAdvantage, ratingAway)

	var actualHome float64
	switch {
	case homeGoals > awayGoals:
		actualHome = 1.0
	case homeGoals == awayGoals:
		actualHome = 0.5
	default:
		actualHome = 0.0
	}

	delta := Config.EloKFactor * (actualHome - expectedHome)

	rs.ratings[home] = ratingHome + delta
	rs.ratings[away] = ratingAway - delta
	rs.history[home] = append(rs.history[home], rs.ratings[home])
	rs.history[away] = append(rs.history[away], rs.ratings[away])
}

// Teams returns all known team names in stable order
func (rs *RatingStore) Teams() []string {
	teams := make([]string, 0, len(rs.ratings))
	for team := range rs.ratings {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// seed installs a rating and history loaded from a snapshot
func (rs *RatingStore) seed(team string, rating float64, history []float64) {
	rs.ratings[team] = rating
	rs.history[team] = history
}

// expectedScore is the classic Elo expectation of the first side winning
func expectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}
