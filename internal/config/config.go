package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"momentum-backtest/internal/panel"
	"momentum-backtest/internal/strategy"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Strategy   StrategyConfig   `yaml:"strategy"`
	Commission CommissionConfig `yaml:"commission"`
	Output     OutputConfig     `yaml:"output"`
}

type DataConfig struct {
	PricesFile string `yaml:"prices_file"`
	// Optional: restrict the panel to a universe file (JSON).
	UniverseFile string `yaml:"universe_file"`
	// Benchmark is the S&P 500 proxy instrument within the panel.
	Benchmark string `yaml:"benchmark"`
}

// StrategyConfig mirrors strategy.Params. TopNPct and TopNCount are
// pointers because exactly one of the two selection modes must be set;
// leaving both or neither is a configuration error, not a default.
// EscapeWeeklyChangeLimit and PriceLowerLimit are pointers because zero is
// a meaningful setting (no escape overlay, no price floor) distinct from
// leaving the field unset.
type StrategyConfig struct {
	Name string `yaml:"name"`

	MomentumWindow   int `yaml:"momentum_window"`
	VolatilityWindow int `yaml:"volatility_window"`

	RankingPeriodGap int  `yaml:"ranking_period_gap"`
	ApplyRankingGap  bool `yaml:"apply_ranking_gap"`

	TopNPct   *float64 `yaml:"top_n_pct"`
	TopNCount *int     `yaml:"top_n_count"`

	LongOnly  bool `yaml:"long_only"`
	ShortOnly bool `yaml:"short_only"`

	EscapeWeeklyChangeLimit *float64 `yaml:"escape_weekly_change_limit"`

	RebalanceInterval string `yaml:"rebalance_interval"` // D, W or M

	PriceLowerLimit *float64 `yaml:"price_lower_limit"`
	EWMCom          *float64 `yaml:"ewm_com"`

	BenchmarkWindow int `yaml:"benchmark_window"`
}

type CommissionConfig struct {
	// PerShare is the broker commission in $/share. Zero disables costs.
	PerShare float64 `yaml:"per_share"`
}

type OutputConfig struct {
	LedgerFile string `yaml:"ledger_file"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config without defaulting or validating it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills unset scalar fields from the stock parameters.
// The selection mode is deliberately not defaulted.
func (c *Config) ApplyDefaults() {
	def := strategy.DefaultParams()
	if c.Strategy.MomentumWindow == 0 {
		c.Strategy.MomentumWindow = def.MomentumWindow
	}
	if c.Strategy.VolatilityWindow == 0 {
		c.Strategy.VolatilityWindow = def.VolatilityWindow
	}
	if c.Strategy.RankingPeriodGap == 0 {
		c.Strategy.RankingPeriodGap = def.RankingPeriodGap
	}
	if c.Strategy.EscapeWeeklyChangeLimit == nil {
		limit := def.EscapeWeeklyChangeLimit
		c.Strategy.EscapeWeeklyChangeLimit = &limit
	}
	if c.Strategy.RebalanceInterval == "" {
		c.Strategy.RebalanceInterval = string(def.RebalanceInterval)
	}
	if c.Strategy.PriceLowerLimit == nil {
		floor := def.PriceLowerLimit
		c.Strategy.PriceLowerLimit = &floor
	}
	if c.Strategy.BenchmarkWindow == 0 {
		c.Strategy.BenchmarkWindow = def.BenchmarkWindow
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "up-minus-down"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Commission.PerShare < 0 {
		return fmt.Errorf("commission.per_share must be non-negative, got %v", c.Commission.PerShare)
	}
	// Validate strategy params by constructing the strategy.
	params, err := c.StrategyParams()
	if err != nil {
		return err
	}
	if _, err := strategy.NewUpMinusDown(params); err != nil {
		return fmt.Errorf("strategy config invalid: %w", err)
	}
	return nil
}

// StrategyParams maps the config onto strategy.Params, resolving the
// nullable selection fields into the tagged policy. Both set, or neither
// set, is rejected here.
func (c *Config) StrategyParams() (strategy.Params, error) {
	var sel strategy.SelectionPolicy
	switch {
	case c.Strategy.TopNPct != nil && c.Strategy.TopNCount != nil:
		return strategy.Params{}, errors.New("strategy.top_n_pct and strategy.top_n_count are mutually exclusive")
	case c.Strategy.TopNPct != nil:
		sel = strategy.Percentile(*c.Strategy.TopNPct)
	case c.Strategy.TopNCount != nil:
		sel = strategy.Count(*c.Strategy.TopNCount)
	default:
		return strategy.Params{}, errors.New("one of strategy.top_n_pct or strategy.top_n_count is required")
	}

	def := strategy.DefaultParams()
	escape := def.EscapeWeeklyChangeLimit
	if c.Strategy.EscapeWeeklyChangeLimit != nil {
		escape = *c.Strategy.EscapeWeeklyChangeLimit
	}
	floor := def.PriceLowerLimit
	if c.Strategy.PriceLowerLimit != nil {
		floor = *c.Strategy.PriceLowerLimit
	}

	return strategy.Params{
		MomentumWindow:          c.Strategy.MomentumWindow,
		VolatilityWindow:        c.Strategy.VolatilityWindow,
		RankingPeriodGap:        c.Strategy.RankingPeriodGap,
		ApplyRankingGap:         c.Strategy.ApplyRankingGap,
		Selection:               sel,
		LongOnly:                c.Strategy.LongOnly,
		ShortOnly:               c.Strategy.ShortOnly,
		EscapeWeeklyChangeLimit: escape,
		RebalanceInterval:       panel.Interval(c.Strategy.RebalanceInterval),
		PriceLowerLimit:         floor,
		EWMCom:                  c.Strategy.EWMCom,
		Benchmark:               c.Data.Benchmark,
		BenchmarkWindow:         c.Strategy.BenchmarkWindow,
	}, nil
}

// BuildStrategy constructs the configured strategy.
func (c *Config) BuildStrategy() (*strategy.UpMinusDown, error) {
	params, err := c.StrategyParams()
	if err != nil {
		return nil, err
	}
	return strategy.NewUpMinusDown(params)
}

// BuildCommission constructs the commission model, or nil when costs are
// disabled.
func (c *Config) BuildCommission() (strategy.CommissionModel, error) {
	if c.Commission.PerShare == 0 {
		return nil, nil
	}
	return strategy.NewPerShareCommission(c.Commission.PerShare)
}

// Demo returns the demo configuration: stock UpMinusDown parameters over a
// US-stock style universe with the default per-share commission.
func Demo() *Config {
	pct := 50.0
	c := &Config{
		Data: DataConfig{
			Benchmark: "SPY",
		},
		Strategy: StrategyConfig{
			Name:    "up-minus-down",
			TopNPct: &pct,
		},
		Commission: CommissionConfig{
			PerShare: strategy.DefaultPerShareRate,
		},
	}
	c.ApplyDefaults()
	return c
}
