package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all settlement core configuration
type Config struct {
	// Ledger configuration
	StartingBalance int64 `env:"STARTING_BALANCE" envDefault:"1000"`

	// Ambush configuration
	GhostingDropThreshold  float64 `env:"GHOSTING_DROP_THRESHOLD" envDefault:"70"`
	GhostingPenaltyPercent int64   `env:"GHOSTING_PENALTY_PERCENT" envDefault:"50"`
	AmbushCommishPercent   int64   `env:"AMBUSH_COMMISH_PERCENT" envDefault:"5"`

	// Odds band applied to every oracle-sourced odds value
	MinOdds int `env:"MIN_ODDS" envDefault:"-1000"`
	MaxOdds int `env:"MAX_ODDS" envDefault:"1000"`

	// Squad ride parlay band (combined American odds)
	MinParlayOdds int `env:"MIN_PARLAY_ODDS" envDefault:"100"`
	MaxParlayOdds int `env:"MAX_PARLAY_ODDS" envDefault:"5000"`

	// Trading floor configuration
	TradeTaxRate  float64       `env:"TRADE_TAX_RATE" envDefault:"0.1"`
	TradeMinPrice int64         `env:"TRADE_MIN_PRICE" envDefault:"10"`
	TradeMaxPrice int64         `env:"TRADE_MAX_PRICE" envDefault:"100000"`
	ListingTTL    time.Duration `env:"LISTING_TTL" envDefault:"72h"`

	// Gulag configuration
	GulagBanBase      time.Duration `env:"GULAG_BAN_BASE" envDefault:"24h"`
	GulagResetBalance int64         `env:"GULAG_RESET_BALANCE" envDefault:"50"`
	RedemptionStake   int64         `env:"REDEMPTION_STAKE" envDefault:"100"`
	RedemptionReward  int64         `env:"REDEMPTION_REWARD" envDefault:"500"`

	// NATS configuration (event publishing)
	NATSServers string `env:"NATS_SERVERS" envDefault:"nats://nats:4222"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		cfg, err := load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
		instance = cfg
	})
	return instance
}

// SetTestConfig replaces the global instance, for tests
func SetTestConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// ResetConfig clears the global instance so the next Get reloads from the
// environment, for tests
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig returns a config with the documented defaults, independent
// of the environment
func NewTestConfig() *Config {
	return &Config{
		StartingBalance:        1000,
		GhostingDropThreshold:  70,
		GhostingPenaltyPercent: 50,
		AmbushCommishPercent:   5,
		MinOdds:                -1000,
		MaxOdds:                1000,
		MinParlayOdds:          100,
		MaxParlayOdds:          5000,
		TradeTaxRate:           0.1,
		TradeMinPrice:          10,
		TradeMaxPrice:          100000,
		ListingTTL:             72 * time.Hour,
		GulagBanBase:           24 * time.Hour,
		GulagResetBalance:      50,
		RedemptionStake:        100,
		RedemptionReward:       500,
		NATSServers:            "nats://127.0.0.1:4222",
	}
}

// load parses configuration from environment variables
func load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MinOdds >= cfg.MaxOdds {
		return nil, fmt.Errorf("MIN_ODDS must be below MAX_ODDS")
	}
	if cfg.TradeTaxRate < 0 || cfg.TradeTaxRate >= 1 {
		return nil, fmt.Errorf("TRADE_TAX_RATE must be in [0, 1)")
	}
	return &cfg, nil
}
