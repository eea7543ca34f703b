package podds

import "fmt"

// AccuracyReport aggregates how predictions fared against played results
type AccuracyReport struct {
	Evaluated        int     `json:"evaluated"`
	OutcomeHits      int     `json:"outcomeHits"`
	Over2p5Hits      int     `json:"over2p5Hits"`
	BttsHits         int     `json:"bttsHits"`
	OutcomeAccuracy  float64 `json:"outcomeAccuracy"`
	Over2p5Accuracy  float64 `json:"over2p5Accuracy"`
	BttsAccuracy     float64 `json:"bttsAccuracy"`
	DiamondEvaluated int     `json:"diamondEvaluated"`
	DiamondHits      int     `json:"diamondHits"`
	DiamondAccuracy  float64 `json:"diamondAccuracy"`
}

// EvaluateAccuracy scores predictions against matches keyed by pairing.
// Predictions without a played match are ignored.
func EvaluateAccuracy(predictions []*Prediction, played []*Match) *AccuracyReport {
	results := make(map[string]*Match, len(played))
	for _, match := range played {
		results[match.HomeTeam+"|"+match.AwayTeam] = match
	}

	report := &AccuracyReport{}
	for _, prediction := range predictions {
		match, ok := results[prediction.HomeTeam+"|"+prediction.AwayTeam]
		if !ok {
			continue
		}
		report.Evaluated++

		picked, probability := prediction.MaxOutcome()
		if picked == match.Result() {
			report.OutcomeHits++
		}

		tier := TierFor(probability * 100)
		if tier == TierDiamond {
			report.DiamondEvaluated++
			if picked == match.Result() {
				report.DiamondHits++
			}
		}

		totalGoals := float64(match.HomeGoals + match.AwayGoals)
		predictedOver := prediction.Over2p5 >= 0.5
		if predictedOver == (totalGoals > Config.Over2p5GoalsThreshold) {
			report.Over2p5Hits++
		}

		predictedBtts := prediction.BothTeamsScore >= 0.5
		if predictedBtts == (match.HomeGoals > 0 && match.AwayGoals > 0) {
			report.BttsHits++
		}
	}

	if report.Evaluated > 0 {
		report.OutcomeAccuracy = float64(report.OutcomeHits) / float64(report.Evaluated) * 100
		report.Over2p5Accuracy = float64(report.Over2p5Hits) / float64(report.Evaluated) * 100
		report.BttsAccuracy = float64(report.BttsHits) / float64(report.Evaluated) * 100
	}
	if report.DiamondEvaluated > 0 {
		report.DiamondAccuracy = float64(report.DiamondHits) / float64(report.DiamondEvaluated) * 100
	}
	return report
}

// String renders the report for logging
func (r *AccuracyReport) String() string {
	return fmt.Sprintf("outcome %.1f%% (%d/%d), over2.5 %.1f%%, btts %.1f%%, diamond %.1f%% (%d/%d)",
		r.OutcomeAccuracy, r.OutcomeHits, r.Evaluated,
		r.Over2p5Accuracy, r.BttsAccuracy,
		r.DiamondAccuracy, r.DiamondHits, r.DiamondEvaluated)
}
