package podds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchResult(t *testing.T) {
	assert.Equal(t, OutcomeHome, (&Match{HomeGoals: 2, AwayGoals: 1}).Result())
	assert.Equal(t, OutcomeDraw, (&Match{HomeGoals: 0, AwayGoals: 0}).Result())
	assert.Equal(t, OutcomeAway, (&Match{HomeGoals: 1, AwayGoals: 3}).Result())
}

func TestMatchValidate(t *testing.T) {
	valid := &Match{HomeTeam: "Leeds", AwayTeam: "Derby", HomeGoals: 1, AwayGoals: 0, Date: day(1)}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Match{AwayTeam: "Derby", HomeGoals: 1, Date: day(1)}).Validate())
	assert.Error(t, (&Match{HomeTeam: "Leeds", HomeGoals: 1, Date: day(1)}).Validate())
	assert.Error(t, (&Match{HomeTeam: "Leeds", AwayTeam: "Derby", HomeGoals: -1, Date: day(1)}).Validate())
	assert.Error(t, (&Match{HomeTeam: "Leeds", AwayTeam: "Derby", HomeGoals: 1}).Validate())
}

func TestSortMatchesChronologically(t *testing.T) {
	matches := []*Match{
		{HomeTeam: "C", AwayTeam: "D", Date: day(3)},
		{HomeTeam: "A", AwayTeam: "B", Date: day(1)},
		{HomeTeam: "E", AwayTeam: "F", Date: day(2)},
		{HomeTeam: "G", AwayTeam: "H", Date: day(2)},
	}
	SortMatchesChronologically(matches)

	assert.Equal(t, "A", matches[0].HomeTeam)
	// Equal dates keep their relative order
	assert.Equal(t, "E", matches[1].HomeTeam)
	assert.Equal(t, "G", matches[2].HomeTeam)
	assert.Equal(t, "C", matches[3].HomeTeam)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "H", OutcomeHome.String())
	assert.Equal(t, "D", OutcomeDraw.String())
	assert.Equal(t, "A", OutcomeAway.String())
	assert.Equal(t, "?", Outcome(9).String())
}
