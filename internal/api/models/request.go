package models

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Strategy   StrategyConfig   `json:"strategy" binding:"required"`
	Commission CommissionConfig `json:"commission,omitempty"`
	Options    BacktestOptions  `json:"options,omitempty"`
}

// DataSourceConfig defines where price data comes from
type DataSourceConfig struct {
	PricesFile   string `json:"prices_file" binding:"required"` // CSV: date,symbol,open,close
	UniverseFile string `json:"universe_file,omitempty"`
	Benchmark    string `json:"benchmark,omitempty"`
}

// StrategyConfig defines strategy parameters. Exactly one of top_n_pct or
// top_n_count must be set. escape_weekly_change_limit and price_lower_limit
// are nullable: zero disables them, null takes the default.
type StrategyConfig struct {
	Name string `json:"name,omitempty"` // default: "up-minus-down"

	MomentumWindow   int `json:"momentum_window,omitempty"`
	VolatilityWindow int `json:"volatility_window,omitempty"`

	RankingPeriodGap int  `json:"ranking_period_gap,omitempty"`
	ApplyRankingGap  bool `json:"apply_ranking_gap,omitempty"`

	TopNPct   *float64 `json:"top_n_pct,omitempty"`
	TopNCount *int     `json:"top_n_count,omitempty"`

	LongOnly  bool `json:"long_only,omitempty"`
	ShortOnly bool `json:"short_only,omitempty"`

	EscapeWeeklyChangeLimit *float64 `json:"escape_weekly_change_limit,omitempty"`

	RebalanceInterval string `json:"rebalance_interval,omitempty"` // D, W or M

	PriceLowerLimit *float64 `json:"price_lower_limit,omitempty"`
	EWMCom          *float64 `json:"ewm_com,omitempty"`

	BenchmarkWindow int `json:"benchmark_window,omitempty"`
}

// CommissionConfig defines trading costs
type CommissionConfig struct {
	PerShare float64 `json:"per_share,omitempty"` // $/share; 0 disables costs
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// SignalsRequest represents a request for the current signal snapshot
type SignalsRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Strategy   StrategyConfig   `json:"strategy" binding:"required"`
	// IncludeBenchmark adds the benchmark trailing-return diagnostic.
	IncludeBenchmark bool `json:"include_benchmark,omitempty"`
}

// RankRequest represents a request to rank instruments by momentum score
type RankRequest struct {
	PricesFile string `form:"prices_file" binding:"required"`
	Limit      int    `form:"limit,omitempty"` // default: 10
}
