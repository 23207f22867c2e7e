package models

import "time"

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Summary BacktestSummary `json:"summary"`
	Ledger  []LedgerRow     `json:"ledger,omitempty"`
}

// BacktestSummary contains aggregated backtest results
type BacktestSummary struct {
	Strategy         string     `json:"strategy"`
	TotalGrossReturn float64    `json:"total_gross_return"`
	TotalNetReturn   float64    `json:"total_net_return"`
	TotalDates       int        `json:"total_dates"`
	Instruments      int        `json:"instruments"`
	BacktestWindow   TimeWindow `json:"backtest_window"`
	FinalLongs       int        `json:"final_longs"`
	FinalShorts      int        `json:"final_shorts"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LedgerRow represents one date in the backtest ledger
type LedgerRow struct {
	Index          int       `json:"index"`
	Date           time.Time `json:"date"`
	Longs          int       `json:"longs"`
	Shorts         int       `json:"shorts"`
	GrossExposure  float64   `json:"gross_exposure"`
	GrossReturn    float64   `json:"gross_return"`
	Commission     float64   `json:"commission"`
	NetReturn      float64   `json:"net_return"`
	CumGrossReturn float64   `json:"cum_gross_return"`
	CumNetReturn   float64   `json:"cum_net_return"`
}

// SignalsResponse represents the current signal snapshot
type SignalsResponse struct {
	Date      time.Time         `json:"date"`
	Signals   []InstrumentState `json:"signals"`
	Benchmark *BenchmarkSeries  `json:"benchmark,omitempty"`
}

// InstrumentState is one instrument's view at the snapshot date
type InstrumentState struct {
	Instrument     string   `json:"instrument"`
	Signal         int      `json:"signal"` // 1 long, -1 short, 0 flat
	Side           string   `json:"side"`
	MomentumScore  *float64 `json:"momentum_score,omitempty"`
	TrailingReturn *float64 `json:"trailing_return,omitempty"`
	Volatility     *float64 `json:"volatility,omitempty"`
	WeeklyReturn   *float64 `json:"weekly_return,omitempty"`
}

// BenchmarkSeries is the benchmark trailing-return diagnostic
type BenchmarkSeries struct {
	Instrument string      `json:"instrument"`
	Dates      []time.Time `json:"dates"`
	Returns    []*float64  `json:"returns"` // null until the window fills
}

// RankResponse represents the response from ranking instruments
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking is one instrument's momentum rank
type Ranking struct {
	Rank           int      `json:"rank"`
	Instrument     string   `json:"instrument"`
	MomentumScore  *float64 `json:"momentum_score"`
	TrailingReturn *float64 `json:"trailing_return,omitempty"`
	WeeklyReturn   *float64 `json:"weekly_return,omitempty"`
	Side           string   `json:"side"`
}

// StrategyInfo describes an available strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters,omitempty"`
}

// ParameterInfo describes one strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine code and a human message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
