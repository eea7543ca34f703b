package podds

import (
	"sort"
	"strings"
	"time"
)

// Venue names one of the three goal-count sequences held per team
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
	VenueAll  Venue = "all"
)

// FormEntry is one (scored, conceded, date) triple in a venue sequence
type FormEntry struct {
	Scored   int
	Conceded int
	Date     time.Time
}

// FormRecord holds the three append-only goal-count sequences for one team.
// Chronological order is an invariant: windowed statistics assume the last K
// entries are the K most recent matches.
type FormRecord struct {
	Home []FormEntry
	Away []FormEntry
	All  []FormEntry
}

func (fr *FormRecord) venue(v Venue) []FormEntry {
	switch v {
	case VenueHome:
		return fr.Home
	case VenueAway:
		return fr.Away
	default:
		return fr.All
	}
}

// FormBook maintains the rolling form records for every observed team
type FormBook struct {
	records map[string]*FormRecord
}

// NewFormBook creates an empty form book
func NewFormBook() *FormBook {
	return &FormBook{records: make(map[string]*FormRecord)}
}

// Record returns the form record for a team, creating it lazily
func (fb *FormBook) Record(team string) *FormRecord {
	record, ok := fb.records[team]
	if !ok {
		record = &FormRecord{}
		fb.records[team] = record
	}
	return record
}

// RecordMatch appends a finished match to the home/away/all sequences of both
// teams. Must be called in chronological match order.
func (fb *FormBook) RecordMatch(home, away string, homeGoals, awayGoals int, date time.Time) {
	homeRecord := fb.Record(home)
	homeRecord.Home = append(homeRecord.Home, FormEntry{Scored: homeGoals, Conceded: awayGoals, Date: date})
	homeRecord.All = append(homeRecord.All, FormEntry{Scored: homeGoals, Conceded: awayGoals, Date: date})

	awayRecord := fb.Record(away)
	awayRecord.Away = append(awayRecord.Away, FormEntry{Scored: awayGoals, Conceded: homeGoals, Date: date})
	awayRecord.All = append(awayRecord.All, FormEntry{Scored: awayGoals, Conceded: homeGoals, Date: date})
}

// WindowedAverage returns the mean goals scored and conceded over the last
// windowSize entries of the named venue sequence, or fewer if not enough
// history exists. An empty sequence returns the supplied fallback pair, so
// unknown teams take a designed default path rather than an error. Fallbacks
// are chosen per call site (neutral 1.5/1.5, or the asymmetric home/away
// defaults from configuration).
func (fb *FormBook) WindowedAverage(team string, venue Venue, windowSize int, fallbackScored, fallbackConceded float64) (float64, float64) {
	record, ok := fb.records[team]
	if !ok {
		return fallbackScored, fallbackConceded
	}

	entries := record.venue(venue)
	if len(entries) == 0 {
		return fallbackScored, fallbackConceded
	}

	// Simple trailing slice, no smoothing or decay beyond the window
	if windowSize > 0 && len(entries) > windowSize {
		entries = entries[len(entries)-windowSize:]
	}

	var scored, conceded int
	for _, entry := range entries {
		scored += entry.Scored
		conceded += entry.Conceded
	}

	n := float64(len(entries))
	return float64(scored) / n, float64(conceded) / n
}

// FormString renders the most recent results from the "all" sequence as a
// W/D/L string, most recent last, for presentation
func (fb *FormBook) FormString(team string) string {
	record, ok := fb.records[team]
	if !ok {
		return ""
	}

	entries := record.All
	if len(entries) > Config.FormLength {
		entries = entries[len(entries)-Config.FormLength:]
	}

	var sb strings.Builder
	for _, entry := range entries {
		switch {
		case entry.Scored > entry.Conceded:
			sb.WriteByte('W')
		case entry.Scored == entry.Conceded:
			sb.WriteByte('D')
		default:
			sb.WriteByte('L')
		}
	}
	return sb.String()
}

// Teams returns all known team names in stable order
func (fb *FormBook) Teams() []string {
	teams := make([]string, 0, len(fb.records))
	for team := range fb.records {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}
