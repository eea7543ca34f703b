// Package podds predicts football match outcomes. It maintains Elo ratings
// and rolling goal form over a history of played matches, simulates upcoming
// fixtures with a Poisson model, blends the simulation with a rating-based
// classifier and closed-form Elo probabilities, grades the blended
// probabilities into confidence tiers, and tracks a ledger of simulated bets
// on the high-confidence picks. All derived state is persisted as a sqlite
// snapshot that is rebuilt and atomically swapped on each refresh.
package podds

import (
	"fmt"
	"path/filepath"

	"github.com/richard-senior/podds/internal/logger"
)

// Podds ties the datasource, prediction pipeline and snapshot store together
type Podds struct {
	store      *Store
	datasource *Datasource
}

// NewPodds builds the engine from the global configuration
func NewPodds() (*Podds, error) {
	if err := ValidateConfig(Config); err != nil {
		return nil, err
	}
	store, err := NewStore(Config.PoddsDbPath)
	if err != nil {
		return nil, err
	}
	datasource := NewDatasource(
		filepath.Join(Config.PoddsAssetsPath, "results.json"),
		filepath.Join(Config.PoddsAssetsPath, "fixtures.json"),
	)
	return &Podds{store: store, datasource: datasource}, nil
}

// NewPoddsWith builds the engine from explicit collaborators
func NewPoddsWith(store *Store, datasource *Datasource) *Podds {
	return &Podds{store: store, datasource: datasource}
}

// Refresh runs one full batch cycle: load the prior snapshot, replay all
// played matches, refit the classifier, settle and place bets, predict every
// upcoming fixture, and persist the new snapshot. On failure the prior
// snapshot is left in place.
func (p *Podds) Refresh() ([]*Prediction, error) {
	prior, err := p.store.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load prior snapshot: %w", err)
	}

	finished, err := p.datasource.LoadResults()
	if err != nil {
		return nil, err
	}
	upcoming, err := p.datasource.LoadFixtures()
	if err != nil {
		return nil, err
	}

	passthroughPath := filepath.Join(Config.PoddsAssetsPath, "passthrough.json")
	passthrough, err := p.datasource.LoadPassthrough(passthroughPath)
	if err != nil {
		logger.Warn("Could not load passthrough data", err)
	}

	next, predictions, err := Refresh(prior, finished, upcoming, nil)
	if err != nil {
		return nil, err
	}
	for name, payload := range passthrough {
		next.Passthrough[name] = payload
	}

	if err := p.store.SaveSnapshot(next); err != nil {
		return nil, err
	}

	summary := next.Ledger.Summary()
	logger.Info("Refresh complete:", len(predictions), "predictions,",
		summary.Pending, "pending bets, profit", summary.TotalProfit.StringFixed(2))
	return predictions, nil
}
