package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingDefaultsForUnseenTeam(t *testing.T) {
	rs := NewRatingStore()
	assert.Equal(t, 1500.0, rs.Rating("Accrington Stanley"))
	assert.Empty(t, rs.History("Accrington Stanley"))
}

func TestEloDiffIncludesHomeAdvantage(t *testing.T) {
	rs := NewRatingStore()
	// Two unseen teams differ only by the home advantage offset
	assert.Equal(t, 100.0, rs.EloDiff("Leeds", "Derby"))
}

func TestApplyResultIsZeroSum(t *testing.T) {
	rs := NewRatingStore()

	scenarios := []struct {
		homeGoals int
		awayGoals int
	}{
		{3, 0},
		{1, 1},
		{0, 2},
	}

	for _, scenario := range scenarios {
		before := rs.Rating("Arsenal") + rs.Rating("Spurs")
		rs.ApplyResult("Arsenal", "Spurs", scenario.homeGoals, scenario.awayGoals)
		after := rs.Rating("Arsenal") + rs.Rating("Spurs")
		assert.InDelta(t, before, after, 1e-9, "rating mass must be conserved")
	}
}

func TestHomeWinMovesRatingsInOppositeDirections(t *testing.T) {
	rs := NewRatingStore()
	rs.ApplyResult("Leeds", "Derby", 2, 0)

	// Equal-rated sides: expectedHome = 1/(1+10^-0.25), delta = 30*(1-that)
	assert.Greater(t, rs.Rating("Leeds"), 1500.0)
	assert.Less(t, rs.Rating("Derby"), 1500.0)
	assert.InDelta(t, 1500.0-rs.Rating("Derby"), rs.Rating("Leeds")-1500.0, 1e-9)
	assert.InDelta(t, 1510.7983, rs.Rating("Leeds"), 0.001)
}

func TestHistoryGrowsOneEntryPerMatch(t *testing.T) {
	rs := NewRatingStore()
	rs.ApplyResult("Leeds", "Derby", 1, 0)
	rs.ApplyResult("Derby", "Leeds", 1, 1)
	rs.ApplyResult("Leeds", "Forest", 0, 3)

	assert.Len(t, rs.History("Leeds"), 3)
	assert.Len(t, rs.History("Derby"), 2)
	assert.Len(t, rs.History("Forest"), 1)
	assert.Equal(t, rs.Rating("Leeds"), rs.History("Leeds")[2])
}

func TestTeamsReturnsSortedNames(t *testing.T) {
	rs := NewRatingStore()
	rs.ApplyResult("Wolves", "Arsenal", 1, 1)
	rs.ApplyResult("Chelsea", "Wolves", 2, 0)
	assert.Equal(t, []string{"Arsenal", "Chelsea", "Wolves"}, rs.Teams())
}
