package podds

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/richard-senior/podds/internal/logger"
)

// matchRecord is the wire shape of one finished match. Goals are pointers so
// a record with a missing score is distinguishable from a real 0-0.
type matchRecord struct {
	Home        string `json:"home"`
	Away        string `json:"away"`
	HomeGoals   *int   `json:"homeGoals"`
	AwayGoals   *int   `json:"awayGoals"`
	Date        string `json:"date"`
	Competition string `json:"competition,omitempty"`
}

// fixtureRecord is the wire shape of one upcoming fixture
type fixtureRecord struct {
	Home   string `json:"home"`
	Away   string `json:"away"`
	Date   string `json:"date"`
	League string `json:"league,omitempty"`
}

// Datasource reads match data from local JSON files. Each file holds a JSON
// array. Individually malformed records are logged and skipped rather than
// failing the whole load.
type Datasource struct {
	ResultsPath  string
	FixturesPath string
}

// NewDatasource creates a datasource over the given file paths
func NewDatasource(resultsPath, fixturesPath string) *Datasource {
	return &Datasource{ResultsPath: resultsPath, FixturesPath: fixturesPath}
}

// LoadResults reads finished matches, sorted chronologically. A missing
// results file yields an empty slice. Records are decoded one at a time so a
// single malformed entry is skipped rather than failing the whole load.
func (d *Datasource) LoadResults() ([]*Match, error) {
	var raws []json.RawMessage
	if err := readJSONFile(d.ResultsPath, &raws); err != nil {
		return nil, err
	}

	matches := make([]*Match, 0, len(raws))
	for i, raw := range raws {
		var record matchRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			logger.Warn("Skipping unreadable result record", i, err)
			continue
		}
		if record.HomeGoals == nil || record.AwayGoals == nil {
			logger.Warn("Skipping result with missing score", i)
			continue
		}
		date, err := parseRecordDate(record.Date)
		if err != nil {
			logger.Warn("Skipping result with bad date", i, record.Date)
			continue
		}
		match := &Match{
			HomeTeam:    record.Home,
			AwayTeam:    record.Away,
			HomeGoals:   *record.HomeGoals,
			AwayGoals:   *record.AwayGoals,
			Date:        date,
			Competition: record.Competition,
		}
		if err := match.Validate(); err != nil {
			logger.Warn("Skipping invalid result", i, err)
			continue
		}
		matches = append(matches, match)
	}

	SortMatchesChronologically(matches)
	logger.Info("Loaded", len(matches), "results from", d.ResultsPath)
	return matches, nil
}

// LoadFixtures reads upcoming fixtures. A missing fixtures file yields an
// empty slice.
func (d *Datasource) LoadFixtures() ([]*Fixture, error) {
	var raws []json.RawMessage
	if err := readJSONFile(d.FixturesPath, &raws); err != nil {
		return nil, err
	}

	fixtures := make([]*Fixture, 0, len(raws))
	for i, raw := range raws {
		var record fixtureRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			logger.Warn("Skipping unreadable fixture record", i, err)
			continue
		}
		if record.Home == "" || record.Away == "" {
			logger.Warn("Skipping fixture with missing team name", i)
			continue
		}
		date, err := parseRecordDate(record.Date)
		if err != nil {
			logger.Warn("Skipping fixture with bad date", i, record.Date)
			continue
		}
		fixtures = append(fixtures, &Fixture{
			HomeTeam: record.Home,
			AwayTeam: record.Away,
			Date:     date,
			League:   record.League,
		})
	}

	logger.Info("Loaded", len(fixtures), "fixtures from", d.FixturesPath)
	return fixtures, nil
}

// LoadPassthrough reads an optional JSON object of presentation blobs
// (standings tables, badge URLs) keyed by name. Values are kept as raw JSON.
func (d *Datasource) LoadPassthrough(path string) (map[string]string, error) {
	var blobs map[string]json.RawMessage
	if err := readJSONFile(path, &blobs); err != nil {
		return nil, err
	}
	passthrough := make(map[string]string, len(blobs))
	for name, raw := range blobs {
		passthrough[name] = string(raw)
	}
	return passthrough, nil
}

func readJSONFile(path string, target any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No data file at", path)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// parseRecordDate accepts ISO-8601 timestamps with or without a time part
func parseRecordDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format: %q", value)
}
