package podds

import (
	"fmt"
	"sort"
	"time"
)

// Outcome is the full-time result of a match from the home side's perspective
type Outcome int

const (
	OutcomeAway Outcome = iota
	OutcomeDraw
	OutcomeHome
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHome:
		return "H"
	case OutcomeDraw:
		return "D"
	case OutcomeAway:
		return "A"
	default:
		return "?"
	}
}

// Match represents one finished match as supplied by the ingestion collaborator
type Match struct {
	HomeTeam    string    `json:"home"`
	AwayTeam    string    `json:"away"`
	HomeGoals   int       `json:"homeGoals"`
	AwayGoals   int       `json:"awayGoals"`
	Date        time.Time `json:"date"`
	Competition string    `json:"competition"`
}

// Fixture represents one upcoming match awaiting prediction
type Fixture struct {
	HomeTeam string    `json:"home"`
	AwayTeam string    `json:"away"`
	Date     time.Time `json:"date"`
	League   string    `json:"league"`
}

// Result returns the full-time outcome of the match
func (m *Match) Result() Outcome {
	if m.HomeGoals > m.AwayGoals {
		return OutcomeHome
	}
	if m.HomeGoals < m.AwayGoals {
		return OutcomeAway
	}
	return OutcomeDraw
}

// Validate rejects records the rest of the pipeline cannot use.
// A failed record is skipped by the caller, never pipeline-fatal.
func (m *Match) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match is missing a team name")
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("match %s vs %s has no usable score", m.HomeTeam, m.AwayTeam)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match %s vs %s has no date", m.HomeTeam, m.AwayTeam)
	}
	return nil
}

// SortMatchesChronologically orders matches oldest first. Rating updates and
// form windows assume this ordering, so every ingest path sorts before
// applying results.
func SortMatchesChronologically(matches []*Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})
}
