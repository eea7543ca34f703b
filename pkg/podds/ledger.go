package podds

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetStatus is the lifecycle state of a simulated bet. The state machine is
// one-way: Pending -> Settled, with Settled terminal.
type BetStatus string

const (
	BetPending BetStatus = "Pending"
	BetSettled BetStatus = "Settled"
)

// BetResult is set once a bet settles
type BetResult string

const (
	BetWon  BetResult = "Won"
	BetLost BetResult = "Lost"
)

// Compile-time check that Bet can be snapshotted
var _ Persistable = (*Bet)(nil)

// Bet records one simulated stake. Bets are keyed by the (home, away) team
// pair: at most one bet per pair exists at any time, and once Settled the
// result and profit never change.
type Bet struct {
	ID         string    `json:"id" column:"id" dbtype:"TEXT NOT NULL"`
	HomeTeam   string    `json:"homeTeam" column:"home_team" dbtype:"TEXT NOT NULL" primary:"true"`
	AwayTeam   string    `json:"awayTeam" column:"away_team" dbtype:"TEXT NOT NULL" primary:"true"`
	CreatedAt  time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME"`
	Pick       Outcome   `json:"pick" column:"pick" dbtype:"INTEGER NOT NULL"`
	Confidence float64   `json:"confidence" column:"confidence" dbtype:"REAL NOT NULL"`
	Stake      float64   `json:"stake" column:"stake" dbtype:"REAL NOT NULL"`
	Status     BetStatus `json:"status" column:"status" dbtype:"TEXT NOT NULL"`
	Result     BetResult `json:"result" column:"result" dbtype:"TEXT"`
	Profit     float64   `json:"profit" column:"profit" dbtype:"REAL DEFAULT 0.0"`
}

// GetTableName returns the snapshot table for bets
func (b *Bet) GetTableName() string {
	return "bets"
}

// GetPrimaryKey returns the dedup key for a bet
func (b *Bet) GetPrimaryKey() map[string]any {
	return map[string]any{
		"home_team": b.HomeTeam,
		"away_team": b.AwayTeam,
	}
}

// Ledger owns the collection of simulated bets
type Ledger struct {
	bets  map[string]*Bet
	order []string
}

// LedgerSummary aggregates the paper trading record
type LedgerSummary struct {
	Pending     int
	Won         int
	Lost        int
	TotalStaked decimal.Decimal
	TotalProfit decimal.Decimal
}

// ROI is the return on total stakes as a percentage
func (s LedgerSummary) ROI() decimal.Decimal {
	if s.TotalStaked.IsZero() {
		return decimal.Zero
	}
	return s.TotalProfit.Div(s.TotalStaked).Mul(decimal.NewFromInt(100))
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{bets: make(map[string]*Bet)}
}

func betKey(home, away string) string {
	return home + "|" + away
}

// Consider opens a Pending bet for a fixture when the ensemble's best win
// probability (home or away, percentage scale) meets the confidence
// threshold. Creation is idempotent: if a bet for the (home, away) pair
// already exists, nothing happens and the existing bet is returned. Draws are
// never backed.
func (l *Ledger) Consider(prediction *Prediction, at time.Time) *Bet {
	key := betKey(prediction.HomeTeam, prediction.AwayTeam)
	if existing, ok := l.bets[key]; ok {
		return existing
	}

	pick := OutcomeHome
	confidence := prediction.HomeWin * 100.0
	if prediction.AwayWin > prediction.HomeWin {
		pick = OutcomeAway
		confidence = prediction.AwayWin * 100.0
	}
	if confidence < Config.BetConfidenceThreshold {
		return nil
	}

	bet := &Bet{
		ID:         uuid.New().String(),
		HomeTeam:   prediction.HomeTeam,
		AwayTeam:   prediction.AwayTeam,
		CreatedAt:  at,
		Pick:       pick,
		Confidence: confidence,
		Stake:      Config.BetStake,
		Status:     BetPending,
	}
	l.bets[key] = bet
	l.order = append(l.order, key)
	return bet
}

// Resolve settles the Pending bet matching a finished match, if one exists.
// Only a match played on or after the bet's creation can settle it; the same
// pairing from an earlier season is not the fixture the bet was opened for.
// Resolution is idempotent: a Settled bet is never re-resolved, so replaying
// an overlapping window of finished matches is harmless.
func (l *Ledger) Resolve(match *Match) *Bet {
	bet, ok := l.bets[betKey(match.HomeTeam, match.AwayTeam)]
	if !ok || bet.Status == BetSettled {
		return bet
	}
	if match.Date.Before(bet.CreatedAt) {
		return bet
	}

	stake := decimal.NewFromFloat(bet.Stake)
	if bet.Pick == match.Result() {
		bet.Result = BetWon
		payout := stake.Mul(decimal.NewFromFloat(Config.SimulatedOdds))
		bet.Profit, _ = payout.Sub(stake).Float64()
	} else {
		bet.Result = BetLost
		bet.Profit, _ = stake.Neg().Float64()
	}
	bet.Status = BetSettled
	return bet
}

// Bets returns all bets in creation order
func (l *Ledger) Bets() []*Bet {
	bets := make([]*Bet, 0, len(l.order))
	for _, key := range l.order {
		bets = append(bets, l.bets[key])
	}
	return bets
}

// add installs a bet loaded from a snapshot
func (l *Ledger) add(bet *Bet) {
	key := betKey(bet.HomeTeam, bet.AwayTeam)
	if _, ok := l.bets[key]; ok {
		return
	}
	l.bets[key] = bet
	l.order = append(l.order, key)
}

// Summary totals the ledger's record to date
func (l *Ledger) Summary() LedgerSummary {
	summary := LedgerSummary{
		TotalStaked: decimal.Zero,
		TotalProfit: decimal.Zero,
	}

	for _, key := range l.order {
		bet := l.bets[key]
		summary.TotalStaked = summary.TotalStaked.Add(decimal.NewFromFloat(bet.Stake))
		switch {
		case bet.Status == BetPending:
			summary.Pending++
		case bet.Result == BetWon:
			summary.Won++
			summary.TotalProfit = summary.TotalProfit.Add(decimal.NewFromFloat(bet.Profit))
		case bet.Result == BetLost:
			summary.Lost++
			summary.TotalProfit = summary.TotalProfit.Add(decimal.NewFromFloat(bet.Profit))
		}
	}
	return summary
}
