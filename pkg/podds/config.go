package podds

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// PoddsConfig contains all configurable parameters that influence prediction outcomes
// This centralizes all magic numbers and constants for easy adjustment
type PoddsConfig struct {
	// Persistence
	PoddsAssetsPath string // The base directory of assets relating to podds
	PoddsDbPath     string // The location of the live podds sqlite snapshot

	// === ELO RATING PARAMETERS ===

	EloKFactor    float64 // K factor for rating updates (default: 30)
	HomeAdvantage float64 // Rating points added to the home side (default: 100)
	DefaultRating float64 // Rating assigned to unseen teams (default: 1500)

	// === MONTE CARLO SIMULATION ===

	PoissonSimulations int // Number of Monte Carlo samples per match (default: 8000)

	// === FORM WINDOWS AND FALLBACKS ===

	FormWindow int // Trailing window size for venue averages (default: 10)
	FormLength int // Number of recent results in a form string (default: 5)

	// Fallback averages when a team has no history at a venue
	DefaultHomeScored   float64 // Home team scored fallback (default: 1.5)
	DefaultHomeConceded float64 // Home team conceded fallback (default: 1.2)
	DefaultAwayScored   float64 // Away team scored fallback (default: 1.2)
	DefaultAwayConceded float64 // Away team conceded fallback (default: 1.5)
	DefaultNeutralGoals float64 // Neutral attacking fallback, both legs (default: 1.5)

	// === GOAL MARKET THRESHOLDS ===

	Over2p5GoalsThreshold float64 // Threshold for over 2.5 goals (default: 2.5)

	// === CLASSIFIER TRAINING ===

	ClassifierIterations   int     // Gradient descent iterations per refit (default: 2000)
	ClassifierLearningRate float64 // Gradient descent step size (default: 0.05)
	ClassifierFeatureScale float64 // Divisor applied to rating differentials (default: 400)

	// === CONFIDENCE TIERS (percentages, 0-100) ===

	DiamondThreshold float64 // Top probability at or above this is Diamond (default: 70)
	GoldThreshold    float64 // Top probability at or above this is Gold (default: 55)

	// === ENSEMBLE ===

	DrawProbabilityFloor float64 // Floor applied when the closed-form draw goes negative (default: 0.25)

	// === PAPER TRADING LEDGER ===

	BetConfidenceThreshold float64 // Max win probability required to open a bet (default: 70)
	BetStake               float64 // Units staked per bet (default: 10)
	SimulatedOdds          float64 // Decimal odds used to settle winning bets (default: 1.80)
}

// DefaultPoddsConfig returns the default configuration with all standard values
func DefaultPoddsConfig() *PoddsConfig {
	poddsAssetsPath := ".podds/"
	config := &PoddsConfig{
		PoddsAssetsPath: poddsAssetsPath,
		PoddsDbPath:     poddsAssetsPath + "podds.db",

		EloKFactor:    30.0,
		HomeAdvantage: 100.0,
		DefaultRating: 1500.0,

		PoissonSimulations: 8000,

		FormWindow:          10,
		FormLength:          5,
		DefaultHomeScored:   1.5,
		DefaultHomeConceded: 1.2,
		DefaultAwayScored:   1.2,
		DefaultAwayConceded: 1.5,
		DefaultNeutralGoals: 1.5,

		Over2p5GoalsThreshold: 2.5,

		ClassifierIterations:   2000,
		ClassifierLearningRate: 0.05,
		ClassifierFeatureScale: 400.0,

		DiamondThreshold: 70.0,
		GoldThreshold:    55.0,

		DrawProbabilityFloor: 0.25,

		BetConfidenceThreshold: 70.0,
		BetStake:               10.0,
		SimulatedOdds:          1.80,
	}
	return config
}

// Global configuration instance
var Config *PoddsConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultPoddsConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *PoddsConfig) {
	Config = newConfig
}

// LoadConfigFromEnv overlays values from the environment onto the default
// configuration. A .env file in the working directory is honoured if present
// but its absence is not an error.
func LoadConfigFromEnv() (*PoddsConfig, error) {
	_ = godotenv.Load()

	config := DefaultPoddsConfig()

	if v := os.Getenv("PODDS_ASSETS_PATH"); v != "" {
		config.PoddsAssetsPath = v
		config.PoddsDbPath = v + "podds.db"
	}
	if v := os.Getenv("PODDS_DB_PATH"); v != "" {
		config.PoddsDbPath = v
	}
	if v := os.Getenv("PODDS_SIMULATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PODDS_SIMULATIONS %q: %w", v, err)
		}
		config.PoissonSimulations = n
	}
	if v := os.Getenv("PODDS_FORM_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PODDS_FORM_WINDOW %q: %w", v, err)
		}
		config.FormWindow = n
	}
	if v := os.Getenv("PODDS_BET_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PODDS_BET_THRESHOLD %q: %w", v, err)
		}
		config.BetConfidenceThreshold = f
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	UpdateConfig(config)
	return config, nil
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *PoddsConfig) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}

	if config.EloKFactor <= 0 {
		return fmt.Errorf("EloKFactor must be positive, got: %f", config.EloKFactor)
	}

	if config.PoissonSimulations < 1000 {
		return fmt.Errorf("PoissonSimulations should be at least 1000 for accuracy, got: %d", config.PoissonSimulations)
	}

	if config.FormWindow < 1 {
		return fmt.Errorf("FormWindow must be at least 1, got: %d", config.FormWindow)
	}

	if config.DiamondThreshold <= config.GoldThreshold {
		return fmt.Errorf("DiamondThreshold (%f) must exceed GoldThreshold (%f)",
			config.DiamondThreshold, config.GoldThreshold)
	}

	if config.SimulatedOdds <= 1.0 {
		return fmt.Errorf("SimulatedOdds must exceed 1.0, got: %f", config.SimulatedOdds)
	}

	if config.DrawProbabilityFloor < 0.0 || config.DrawProbabilityFloor > 1.0 {
		return fmt.Errorf("DrawProbabilityFloor must be between 0.0 and 1.0, got: %f", config.DrawProbabilityFloor)
	}

	return nil
}

// === HELPER FUNCTIONS FOR EASY ACCESS ===

// GetHomeAdvantage returns the rating offset applied to the home side
func GetHomeAdvantage() float64 {
	return Config.HomeAdvantage
}

// GetDefaultRating returns the rating assigned to unseen teams
func GetDefaultRating() float64 {
	return Config.DefaultRating
}

// GetFormWindow returns the trailing window size for venue averages
func GetFormWindow() int {
	return Config.FormWindow
}
