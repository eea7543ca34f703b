package podds

import (
	"fmt"
	"time"

	"github.com/richard-senior/podds/internal/logger"
)

// State is the explicit container for everything the engine accumulates:
// ratings, form, classifier training samples, trained classifier and the bet
// ledger, plus presentation metadata carried through untouched. A refresh
// never mutates its input State; it builds a replacement and the caller swaps
// snapshots atomically, so a failed refresh leaves the prior state
// authoritative.
type State struct {
	Ratings     *RatingStore
	Form        *FormBook
	Samples     []TrainingSample
	Classifier  *Classifier
	Ledger      *Ledger
	Passthrough map[string]string
}

// NewState creates an empty state
func NewState() *State {
	return &State{
		Ratings:     NewRatingStore(),
		Form:        NewFormBook(),
		Classifier:  NewClassifier(),
		Ledger:      NewLedger(),
		Passthrough: make(map[string]string),
	}
}

// Refresh runs one complete batch pass: ingest the full finished-match
// history in chronological order, retrain the classifier, resolve ledger
// entries against new results, predict the upcoming fixtures and open new
// high-confidence bets. The pass is single-threaded and sequential.
//
// Ratings, form and training samples are rebuilt from scratch from the
// supplied history (the history is authoritative, so replaying an
// overlapping window cannot double-apply a match). The ledger and
// passthrough metadata carry over from the prior state.
//
// On any error the prior state is returned untouched.
func Refresh(prior *State, finished []*Match, upcoming []*Fixture, simulator *Simulator) (*State, []*Prediction, error) {
	if prior == nil {
		prior = NewState()
	}

	next := NewState()
	next.Ledger = prior.Ledger.clone()
	for key, value := range prior.Passthrough {
		next.Passthrough[key] = value
	}

	// Phase 1: chronological ingest. Each match yields exactly one training
	// sample, computed from the ratings as they stood before the update.
	sorted := make([]*Match, len(finished))
	copy(sorted, finished)
	SortMatchesChronologically(sorted)

	ingested := 0
	for _, match := range sorted {
		if err := match.Validate(); err != nil {
			logger.Warn("Skipping unusable match record:", err)
			continue
		}

		next.Samples = append(next.Samples, TrainingSample{
			EloDiff: next.Ratings.EloDiff(match.HomeTeam, match.AwayTeam),
			Outcome: match.Result(),
		})

		next.Ratings.ApplyResult(match.HomeTeam, match.AwayTeam, match.HomeGoals, match.AwayGoals)
		next.Form.RecordMatch(match.HomeTeam, match.AwayTeam, match.HomeGoals, match.AwayGoals, match.Date)
		ingested++
	}
	logger.Info("Ingested finished matches:", ingested, "of", len(finished))

	// Phase 2: full batch refit. Fail-closed: no samples, no refresh.
	if err := next.Classifier.Train(next.Samples); err != nil {
		return prior, nil, fmt.Errorf("classifier refit aborted refresh: %w", err)
	}

	// Phase 3: settle pending bets against the new results
	settled := 0
	for _, match := range sorted {
		if match.Validate() != nil {
			continue
		}
		if bet := next.Ledger.Resolve(match); bet != nil && bet.Status == BetSettled {
			settled++
		}
	}
	logger.Info("Ledger bets settled or already settled:", settled)

	// Phase 4: predict upcoming fixtures and open new bets
	ensemble := NewEnsemble(next.Ratings, next.Form, next.Classifier, simulator)
	now := time.Now()
	predictions := make([]*Prediction, 0, len(upcoming))
	for _, fixture := range upcoming {
		prediction, err := ensemble.Predict(fixture.HomeTeam, fixture.AwayTeam)
		if err != nil {
			logger.Warn("Skipping fixture:", fixture.HomeTeam, "vs", fixture.AwayTeam, err)
			continue
		}
		predictions = append(predictions, prediction)
		next.Ledger.Consider(prediction, now)
	}
	logger.Info("Predicted fixtures:", len(predictions), "ledger size:", len(next.Ledger.Bets()))

	return next, predictions, nil
}

// clone deep-copies the ledger so a refresh can settle and extend it without
// touching the prior snapshot's bets
func (l *Ledger) clone() *Ledger {
	copied := NewLedger()
	for _, bet := range l.Bets() {
		b := *bet
		copied.add(&b)
	}
	return copied
}
