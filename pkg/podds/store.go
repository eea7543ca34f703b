package podds

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/richard-senior/podds/internal/logger"
	_ "modernc.org/sqlite"
)

// Persistable is implemented by anything the snapshot store can write.
// Column layout comes from struct tags: column, dbtype, primary, index.
type Persistable interface {
	GetTableName() string
	GetPrimaryKey() map[string]any
}

// Store persists whole State snapshots in a sqlite file. A snapshot is
// written in full to a temporary sibling file and renamed over the live path,
// so readers only ever observe a completely written snapshot and a failed
// refresh leaves the previous one untouched.
type Store struct {
	path string
}

// NewStore creates a store over the given sqlite path. The parent directory
// is created if needed.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{path: path}, nil
}

/////////////////////////////////////////////////////////////////////////
////// Snapshot row types
/////////////////////////////////////////////////////////////////////////

// RatingRow is one team's current rating
type RatingRow struct {
	Team   string  `column:"team" dbtype:"TEXT NOT NULL" primary:"true"`
	Rating float64 `column:"rating" dbtype:"REAL NOT NULL"`
}

func (r *RatingRow) GetTableName() string { return "ratings" }
func (r *RatingRow) GetPrimaryKey() map[string]any {
	return map[string]any{"team": r.Team}
}

// RatingHistoryRow is one entry of a team's rating trajectory
type RatingHistoryRow struct {
	Team   string  `column:"team" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Seq    int     `column:"seq" dbtype:"INTEGER NOT NULL" primary:"true"`
	Rating float64 `column:"rating" dbtype:"REAL NOT NULL"`
}

func (r *RatingHistoryRow) GetTableName() string { return "rating_history" }
func (r *RatingHistoryRow) GetPrimaryKey() map[string]any {
	return map[string]any{"team": r.Team, "seq": r.Seq}
}

// FormEntryRow is one (scored, conceded, date) triple of a venue sequence
type FormEntryRow struct {
	Team      string `column:"team" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Venue     string `column:"venue" dbtype:"TEXT NOT NULL" primary:"true"`
	Seq       int    `column:"seq" dbtype:"INTEGER NOT NULL" primary:"true"`
	Scored    int    `column:"scored" dbtype:"INTEGER NOT NULL"`
	Conceded  int    `column:"conceded" dbtype:"INTEGER NOT NULL"`
	MatchDate string `column:"match_date" dbtype:"TEXT NOT NULL"`
}

func (r *FormEntryRow) GetTableName() string { return "form_entries" }
func (r *FormEntryRow) GetPrimaryKey() map[string]any {
	return map[string]any{"team": r.Team, "venue": r.Venue, "seq": r.Seq}
}

// TrainingSampleRow is one accumulated classifier training sample
type TrainingSampleRow struct {
	Seq     int     `column:"seq" dbtype:"INTEGER NOT NULL" primary:"true"`
	EloDiff float64 `column:"elo_diff" dbtype:"REAL NOT NULL"`
	Outcome int     `column:"outcome" dbtype:"INTEGER NOT NULL"`
}

func (r *TrainingSampleRow) GetTableName() string { return "training_samples" }
func (r *TrainingSampleRow) GetPrimaryKey() map[string]any {
	return map[string]any{"seq": r.Seq}
}

// ClassifierRow holds the trained classifier parameters as an opaque blob
type ClassifierRow struct {
	ID     int    `column:"id" dbtype:"INTEGER NOT NULL" primary:"true"`
	Params string `column:"params" dbtype:"TEXT NOT NULL"`
}

func (r *ClassifierRow) GetTableName() string { return "classifier_params" }
func (r *ClassifierRow) GetPrimaryKey() map[string]any {
	return map[string]any{"id": r.ID}
}

// PassthroughRow carries presentation metadata (standings, logos) unchanged
type PassthroughRow struct {
	Name    string `column:"name" dbtype:"TEXT NOT NULL" primary:"true"`
	Payload string `column:"payload" dbtype:"TEXT NOT NULL"`
}

func (r *PassthroughRow) GetTableName() string { return "passthrough" }
func (r *PassthroughRow) GetPrimaryKey() map[string]any {
	return map[string]any{"name": r.Name}
}

/////////////////////////////////////////////////////////////////////////
////// Snapshot write
/////////////////////////////////////////////////////////////////////////

// SaveSnapshot writes the complete state to a fresh temporary database and
// atomically swaps it over the live snapshot
func (s *Store) SaveSnapshot(state *State) error {
	tmpPath := s.path + ".tmp"
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear stale temp snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", tmpPath)
	if err != nil {
		return fmt.Errorf("failed to open temp snapshot: %w", err)
	}

	if err := s.writeState(db, state); err != nil {
		db.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to swap snapshot: %w", err)
	}
	logger.Info("Snapshot written", s.path)
	return nil
}

func (s *Store) writeState(db *sql.DB, state *State) error {
	prototypes := []Persistable{
		&RatingRow{}, &RatingHistoryRow{}, &FormEntryRow{},
		&TrainingSampleRow{}, &ClassifierRow{}, &PassthroughRow{}, &Bet{},
	}
	for _, prototype := range prototypes {
		if err := createTable(db, prototype); err != nil {
			return err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range s.stateRows(state) {
		if err := insert(tx, row); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// stateRows flattens a State into persistable rows
func (s *Store) stateRows(state *State) []Persistable {
	var rows []Persistable

	for _, team := range state.Ratings.Teams() {
		rows = append(rows, &RatingRow{Team: team, Rating: state.Ratings.Rating(team)})
		for seq, rating := range state.Ratings.History(team) {
			rows = append(rows, &RatingHistoryRow{Team: team, Seq: seq, Rating: rating})
		}
	}

	for _, team := range state.Form.Teams() {
		record := state.Form.Record(team)
		for venue, entries := range map[Venue][]FormEntry{
			VenueHome: record.Home, VenueAway: record.Away, VenueAll: record.All,
		} {
			for seq, entry := range entries {
				rows = append(rows, &FormEntryRow{
					Team:      team,
					Venue:     string(venue),
					Seq:       seq,
					Scored:    entry.Scored,
					Conceded:  entry.Conceded,
					MatchDate: entry.Date.UTC().Format("2006-01-02T15:04:05Z"),
				})
			}
		}
	}

	for seq, sample := range state.Samples {
		rows = append(rows, &TrainingSampleRow{Seq: seq, EloDiff: sample.EloDiff, Outcome: int(sample.Outcome)})
	}

	if state.Classifier.Trained {
		if params, err := state.Classifier.MarshalParams(); err == nil {
			rows = append(rows, &ClassifierRow{ID: 1, Params: params})
		} else {
			logger.Warn("Could not serialize classifier params", err)
		}
	}

	for name, payload := range state.Passthrough {
		rows = append(rows, &PassthroughRow{Name: name, Payload: payload})
	}

	for _, bet := range state.Ledger.Bets() {
		rows = append(rows, bet)
	}

	return rows
}

/////////////////////////////////////////////////////////////////////////
////// Snapshot load
/////////////////////////////////////////////////////////////////////////

// LoadSnapshot reads the live snapshot back into a State. A missing snapshot
// file yields an empty state, not an error (first run).
func (s *Store) LoadSnapshot() (*State, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		logger.Info("No snapshot at", s.path, "- starting empty")
		return NewState(), nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer db.Close()

	state := NewState()

	histories := make(map[string][]RatingHistoryRow)
	rows, err := findAll(db, &RatingHistoryRow{})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		h := row.(*RatingHistoryRow)
		histories[h.Team] = append(histories[h.Team], *h)
	}

	rows, err = findAll(db, &RatingRow{})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		r := row.(*RatingRow)
		history := histories[r.Team]
		sort.Slice(history, func(i, j int) bool { return history[i].Seq < history[j].Seq })
		values := make([]float64, len(history))
		for i, h := range history {
			values[i] = h.Rating
		}
		state.Ratings.seed(r.Team, r.Rating, values)
	}

	rows, err = findAll(db, &FormEntryRow{})
	if err != nil {
		return nil, err
	}
	formRows := make([]*FormEntryRow, 0, len(rows))
	for _, row := range rows {
		formRows = append(formRows, row.(*FormEntryRow))
	}
	sort.Slice(formRows, func(i, j int) bool { return formRows[i].Seq < formRows[j].Seq })
	for _, row := range formRows {
		record := state.Form.Record(row.Team)
		entry := FormEntry{Scored: row.Scored, Conceded: row.Conceded, Date: parseSnapshotDate(row.MatchDate)}
		switch Venue(row.Venue) {
		case VenueHome:
			record.Home = append(record.Home, entry)
		case VenueAway:
			record.Away = append(record.Away, entry)
		case VenueAll:
			record.All = append(record.All, entry)
		default:
			logger.Warn("Unknown venue in snapshot", row.Venue)
		}
	}

	rows, err = findAll(db, &TrainingSampleRow{})
	if err != nil {
		return nil, err
	}
	sampleRows := make([]*TrainingSampleRow, 0, len(rows))
	for _, row := range rows {
		sampleRows = append(sampleRows, row.(*TrainingSampleRow))
	}
	sort.Slice(sampleRows, func(i, j int) bool { return sampleRows[i].Seq < sampleRows[j].Seq })
	for _, row := range sampleRows {
		state.Samples = append(state.Samples, TrainingSample{EloDiff: row.EloDiff, Outcome: Outcome(row.Outcome)})
	}

	rows, err = findAll(db, &ClassifierRow{})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := state.Classifier.UnmarshalParams(rows[0].(*ClassifierRow).Params); err != nil {
			return nil, err
		}
	}

	rows, err = findAll(db, &PassthroughRow{})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		p := row.(*PassthroughRow)
		state.Passthrough[p.Name] = p.Payload
	}

	rows, err = findAll(db, &Bet{})
	if err != nil {
		return nil, err
	}
	betRows := make([]*Bet, 0, len(rows))
	for _, row := range rows {
		betRows = append(betRows, row.(*Bet))
	}
	sort.Slice(betRows, func(i, j int) bool { return betRows[i].CreatedAt.Before(betRows[j].CreatedAt) })
	for _, bet := range betRows {
		state.Ledger.add(bet)
	}

	return state, nil
}

func parseSnapshotDate(value string) (t time.Time) {
	t, err := time.Parse("2006-01-02T15:04:05Z", value)
	if err != nil {
		logger.Warn("Unparseable snapshot date", value)
	}
	return t
}

/////////////////////////////////////////////////////////////////////////
////// Reflection plumbing (struct tags -> SQL)
/////////////////////////////////////////////////////////////////////////

// createTable creates the table for a persistable from its struct tags
func createTable(db *sql.DB, obj Persistable) error {
	tableName := obj.GetTableName()
	createSQL := generateCreateTableSQL(obj, tableName)
	logger.Debug("Creating table with SQL", createSQL)

	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	for _, query := range generateIndexSQL(obj, tableName) {
		if _, err := db.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// generateCreateTableSQL generates CREATE TABLE SQL from struct tags
func generateCreateTableSQL(obj any, tableName string) string {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var columns []string
	var primaryKeys []string

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() {
			continue
		}

		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, columnName)
		}

		columns = append(columns, fmt.Sprintf("%s %s", columnName, dbType))
	}

	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
}

// generateIndexSQL generates index creation SQL from struct tags
func generateIndexSQL(obj any, tableName string) []string {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var indexSQL []string
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if field.Tag.Get("index") == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		indexName := fmt.Sprintf("idx_%s_%s", tableName, columnName)
		indexSQL = append(indexSQL, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", indexName, tableName, columnName))
	}
	return indexSQL
}

// insert adds one row inside the snapshot transaction
func insert(tx *sql.Tx, obj Persistable) error {
	tableName := obj.GetTableName()
	columns, placeholders, values := getInsertData(obj)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	logger.Debug("Insert SQL", query)

	if _, err := tx.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}
	return nil
}

// getInsertData extracts column names, placeholders, and values for INSERT
func getInsertData(obj any) ([]string, []string, []any) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)
	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	var columns []string
	var placeholders []string
	var values []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		columns = append(columns, columnName)
		placeholders = append(placeholders, "?")
		values = append(values, normalizeValue(objValue.Field(i)))
	}

	return columns, placeholders, values
}

// normalizeValue converts named types to their driver-friendly kinds
func normalizeValue(fieldValue reflect.Value) any {
	switch fieldValue.Kind() {
	case reflect.String:
		return fieldValue.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fieldValue.Int()
	case reflect.Float32, reflect.Float64:
		return fieldValue.Float()
	default:
		return fieldValue.Interface()
	}
}

// findAll retrieves all rows of the prototype's table
func findAll(db *sql.DB, obj Persistable) ([]any, error) {
	tableName := obj.GetTableName()
	columns, _ := getSelectData(obj)

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), tableName)
	logger.Debug("FindAll SQL", query)

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	var results []any
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	for rows.Next() {
		newObj := reflect.New(objType).Interface()
		_, destinations := getSelectData(newObj)

		if err := rows.Scan(destinations...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", tableName, err)
		}
		results = append(results, newObj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", tableName, err)
	}
	return results, nil
}

// getSelectData extracts column names and scan destinations for SELECT
func getSelectData(obj any) ([]string, []any) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)
	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	var columns []string
	var destinations []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}

		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}

		columns = append(columns, columnName)
		destinations = append(destinations, objValue.Field(i).Addr().Interface())
	}

	return columns, destinations
}
