package strategy

import (
	"fmt"
	"math"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
)

// weeklyWindow is the lookback for the short-term return the escape overlay
// inspects.
const weeklyWindow = 5

// Params configures the UpMinusDown strategy. Values are fixed at
// construction; a running strategy never reads mutable configuration.
type Params struct {
	// MomentumWindow is the trailing-return lookback for the ranking score.
	MomentumWindow int
	// VolatilityWindow is the lookback for daily-return volatility.
	VolatilityWindow int

	// RankingPeriodGap is the number of recent periods conventionally
	// excluded from the momentum ranking window. It is only applied when
	// ApplyRankingGap is set; the default matches the long-standing
	// behavior of ranking on the full window regardless of the gap.
	RankingPeriodGap int
	ApplyRankingGap  bool

	// Selection picks long/short candidates from the ranking.
	Selection SelectionPolicy

	LongOnly  bool
	ShortOnly bool

	// EscapeWeeklyChangeLimit suppresses a short when the weekly return
	// exceeds +limit and a long when it falls below -limit.
	EscapeWeeklyChangeLimit float64

	// RebalanceInterval collapses signals to one value per period.
	RebalanceInterval panel.Interval

	// PriceLowerLimit drops instruments whose close is at or below it.
	PriceLowerLimit float64

	// EWMCom, when set, smooths closes with an exponentially weighted
	// mean of this center-of-mass before all downstream computation.
	EWMCom *float64

	// Benchmark is the reference instrument (S&P 500 proxy) whose
	// trailing BenchmarkWindow return is exposed as a diagnostic.
	Benchmark       string
	BenchmarkWindow int
}

// DefaultParams mirrors the strategy's stock configuration: rank on
// 100-period returns adjusted by 40-period volatility, trade the top and
// bottom half, rebalance monthly, ignore instruments at or below 100.
func DefaultParams() Params {
	return Params{
		MomentumWindow:          100,
		VolatilityWindow:        40,
		RankingPeriodGap:        22,
		Selection:               Percentile(50),
		EscapeWeeklyChangeLimit: 0.1,
		RebalanceInterval:       panel.Monthly,
		PriceLowerLimit:         100,
		BenchmarkWindow:         50,
	}
}

func (p Params) Validate() error {
	if p.MomentumWindow <= 0 {
		return fmt.Errorf("momentum window must be positive, got %d", p.MomentumWindow)
	}
	if p.VolatilityWindow < 2 {
		return fmt.Errorf("volatility window must be at least 2, got %d", p.VolatilityWindow)
	}
	if p.RankingPeriodGap < 0 {
		return fmt.Errorf("ranking period gap must be non-negative, got %d", p.RankingPeriodGap)
	}
	if p.ApplyRankingGap {
		if p.RankingPeriodGap == 0 {
			return fmt.Errorf("apply_ranking_gap is set but ranking period gap is zero")
		}
		if p.RankingPeriodGap >= p.MomentumWindow {
			return fmt.Errorf("ranking period gap %d must be smaller than momentum window %d", p.RankingPeriodGap, p.MomentumWindow)
		}
	}
	if err := p.Selection.Validate(); err != nil {
		return err
	}
	if p.LongOnly && p.ShortOnly {
		return fmt.Errorf("long_only and short_only are mutually exclusive")
	}
	if p.EscapeWeeklyChangeLimit < 0 {
		return fmt.Errorf("escape weekly change limit must be non-negative, got %v", p.EscapeWeeklyChangeLimit)
	}
	if _, err := panel.ParseInterval(string(p.RebalanceInterval)); err != nil {
		return err
	}
	if p.PriceLowerLimit < 0 {
		return fmt.Errorf("price lower limit must be non-negative, got %v", p.PriceLowerLimit)
	}
	if p.EWMCom != nil && *p.EWMCom < 0 {
		return fmt.Errorf("ewm center of mass must be non-negative, got %v", *p.EWMCom)
	}
	if p.Benchmark != "" && p.BenchmarkWindow <= 0 {
		return fmt.Errorf("benchmark window must be positive, got %d", p.BenchmarkWindow)
	}
	return nil
}

// UpMinusDown buys recent winners and shorts recent losers:
//
//   - score instruments by trailing return adjusted for daily volatility,
//   - go long the top of the cross-sectional ranking and short the bottom,
//   - suppress entries that fight a sharp short-term move (escape overlay),
//   - hold each book constant between rebalance dates.
type UpMinusDown struct {
	params Params
}

// NewUpMinusDown validates params and constructs the strategy. Contradictory
// configuration (both or neither selection modes, long-only plus short-only)
// fails here rather than surfacing mid-backtest.
func NewUpMinusDown(params Params) (*UpMinusDown, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid up-minus-down params: %w", err)
	}
	return &UpMinusDown{params: params}, nil
}

func (s *UpMinusDown) Name() string { return "up-minus-down" }

// Params returns a copy of the strategy configuration.
func (s *UpMinusDown) Params() Params { return s.params }

// filteredCloses applies the price floor and optional smoothing that every
// downstream computation consumes.
func (s *UpMinusDown) filteredCloses(prices *model.PricePanel) *panel.Panel {
	closes := prices.Closes.WhereAbove(s.params.PriceLowerLimit)
	if s.params.EWMCom != nil {
		closes = closes.EWMMean(*s.params.EWMCom)
	}
	return closes
}

func (s *UpMinusDown) momentum(closes *panel.Panel) *panel.Panel {
	if s.params.ApplyRankingGap {
		return MomentumScoreGapped(closes, s.params.MomentumWindow, s.params.VolatilityWindow, s.params.RankingPeriodGap)
	}
	return MomentumScore(closes, s.params.MomentumWindow, s.params.VolatilityWindow)
}

func (s *UpMinusDown) PricesToSignals(prices *model.PricePanel) (*panel.Panel, error) {
	closes := s.filteredCloses(prices)

	momentum := s.momentum(closes)
	weekly := closes.Return(weeklyWindow)

	var topRanks, bottomRanks *panel.Panel
	var selected func(rank float64) bool
	switch s.params.Selection.Mode() {
	case SelectPercentile:
		topRanks = momentum.RankPct(false)
		bottomRanks = momentum.RankPct(true)
		threshold := s.params.Selection.Pct() / 100
		selected = func(rank float64) bool { return rank <= threshold }
	case SelectCount:
		topRanks = momentum.RankPos(false)
		bottomRanks = momentum.RankPos(true)
		n := float64(s.params.Selection.N())
		selected = func(rank float64) bool { return rank <= n }
	default:
		return nil, fmt.Errorf("selection policy not configured")
	}

	signals := closes.Map(func(float64) float64 { return 0 })
	limit := s.params.EscapeWeeklyChangeLimit
	for t := 0; t < signals.NumDates(); t++ {
		for i := 0; i < signals.NumInstruments(); i++ {
			// NaN ranks (insufficient history, filtered instrument)
			// compare false and fall through to flat.
			long := selected(topRanks.At(t, i))
			short := selected(bottomRanks.At(t, i))

			wk := weekly.At(t, i)
			if wk < -limit {
				long = false // don't buy into a sharp decline
			}
			if wk > limit {
				short = false // don't short into a sharp rally
			}

			var v float64
			switch {
			case s.params.LongOnly:
				if long {
					v = 1
				}
			case s.params.ShortOnly:
				if short {
					v = -1
				}
			default:
				// Long takes priority in the pathological case where
				// an instrument ranks in both tails.
				if long {
					v = 1
				} else if short {
					v = -1
				}
			}
			signals.Set(t, i, v)
		}
	}

	// Keep only the last signal of each rebalance period and hold it
	// until the next one. Rows before the first completed period have no
	// signal yet and resolve to flat.
	signals = signals.ResampleLastFFill(s.params.RebalanceInterval)
	signals = signals.Map(func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return v
	})
	return signals, nil
}

func (s *UpMinusDown) SignalsToTargetWeights(signals *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	return equalWeights(signals), nil
}

// TargetWeightsToPositions enters each position in the period after its
// weight is determined.
func (s *UpMinusDown) TargetWeightsToPositions(weights *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	return weights.Shift(1), nil
}

func (s *UpMinusDown) PositionsToGrossReturns(positions *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	return openGrossReturns(positions, prices), nil
}

// BenchmarkReturns computes the benchmark instrument's trailing
// BenchmarkWindow-period return over the filtered closes. The signal
// pipeline does not consume it; it is exposed as a diagnostic series.
// When smoothing is configured the benchmark column is smoothed a second
// time on top of the panel-wide pass, preserving the strategy's historical
// behavior.
func (s *UpMinusDown) BenchmarkReturns(prices *model.PricePanel) ([]float64, error) {
	if s.params.Benchmark == "" {
		return nil, fmt.Errorf("no benchmark instrument configured")
	}
	closes := s.filteredCloses(prices)
	bench := closes.Select([]string{s.params.Benchmark})
	if bench.NumInstruments() == 0 {
		return nil, fmt.Errorf("benchmark %q not in price panel", s.params.Benchmark)
	}
	if s.params.EWMCom != nil {
		bench = bench.EWMMean(*s.params.EWMCom)
	}
	rets, _ := bench.Return(s.params.BenchmarkWindow).Column(s.params.Benchmark)
	return rets, nil
}
