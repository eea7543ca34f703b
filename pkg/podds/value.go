package podds

// Tier buckets an ensemble's top outcome probability into a confidence band
type Tier string

const (
	TierDiamond Tier = "Diamond"
	TierGold    Tier = "Gold"
	TierSilver  Tier = "Silver"
)

// TierFor classifies a top outcome probability, given as a percentage on the
// 0-100 scale. Exactly 70.0 is Diamond and exactly 55.0 is Gold.
func TierFor(maxProbability float64) Tier {
	switch {
	case maxProbability >= Config.DiamondThreshold:
		return TierDiamond
	case maxProbability >= Config.GoldThreshold:
		return TierGold
	default:
		return TierSilver
	}
}

// Edge computes the statistical edge of a model probability (percentage,
// 0-100) against decimal bookmaker odds: probability minus the implied
// probability 100/odds. Odds at or below 1.0 mean no odds were supplied; the
// second return value is false and no edge is computed. A positive edge
// signals value.
func Edge(odds, probabilityPercent float64) (float64, bool) {
	if odds <= 1.0 {
		return 0, false
	}
	return probabilityPercent - (100.0 / odds), true
}

// MatchOdds carries the decimal odds supplied for one fixture's markets.
// Zero means not supplied.
type MatchOdds struct {
	Home           float64
	Draw           float64
	Away           float64
	Over2p5        float64
	BothTeamsScore float64
}

// MarketValue is the edge verdict for a single market
type MarketValue struct {
	Market string
	Odds   float64
	Edge   float64
	Value  bool
}

// ValueReport computes edges for every market with supplied odds. Markets
// without odds are simply absent from the report.
func ValueReport(prediction *Prediction, odds MatchOdds) []MarketValue {
	markets := []struct {
		name        string
		odds        float64
		probability float64
	}{
		{"Home", odds.Home, prediction.HomeWin * 100.0},
		{"Draw", odds.Draw, prediction.Draw * 100.0},
		{"Away", odds.Away, prediction.AwayWin * 100.0},
		{"Over 2.5", odds.Over2p5, prediction.Over2p5 * 100.0},
		{"BTTS", odds.BothTeamsScore, prediction.BothTeamsScore * 100.0},
	}

	var report []MarketValue
	for _, market := range markets {
		edge, ok := Edge(market.odds, market.probability)
		if !ok {
			continue
		}
		report = append(report, MarketValue{
			Market: market.name,
			Odds:   market.odds,
			Edge:   edge,
			Value:  edge > 0,
		})
	}
	return report
}
