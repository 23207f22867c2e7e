package analysis

import (
	"fmt"
	"time"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/strategy"
)

// Snapshot is an instrument-level summary at the latest date of a panel,
// used for ranking and for inspecting what the strategy currently sees.
type Snapshot struct {
	Instrument string
	Date       time.Time

	MomentumScore  float64
	TrailingReturn float64
	Volatility     float64
	WeeklyReturn   float64

	// Signal is the strategy's current signal for the instrument:
	// 1 long, -1 short, 0 flat.
	Signal int
	Side   model.Side
}

// SnapshotLatest evaluates the strategy's inputs and output at the last date
// of the price panel, one Snapshot per instrument.
func SnapshotLatest(prices *model.PricePanel, strat *strategy.UpMinusDown) ([]Snapshot, error) {
	if prices == nil || prices.Closes.NumDates() == 0 {
		return nil, fmt.Errorf("no price data")
	}
	p := strat.Params()

	closes := prices.Closes.WhereAbove(p.PriceLowerLimit)
	if p.EWMCom != nil {
		closes = closes.EWMMean(*p.EWMCom)
	}

	var momentum = strategy.MomentumScore(closes, p.MomentumWindow, p.VolatilityWindow)
	if p.ApplyRankingGap {
		momentum = strategy.MomentumScoreGapped(closes, p.MomentumWindow, p.VolatilityWindow, p.RankingPeriodGap)
	}
	trailing := closes.Return(p.MomentumWindow)
	vol := closes.PctChange().RollingStd(p.VolatilityWindow)
	weekly := closes.Return(5)

	signals, err := strat.PricesToSignals(prices)
	if err != nil {
		return nil, err
	}

	t := prices.Closes.NumDates() - 1
	date := prices.Dates()[t]
	out := make([]Snapshot, 0, prices.Closes.NumInstruments())
	for i, inst := range prices.Instruments() {
		sig := int(signals.At(t, i))
		out = append(out, Snapshot{
			Instrument:     inst,
			Date:           date,
			MomentumScore:  momentum.At(t, i),
			TrailingReturn: trailing.At(t, i),
			Volatility:     vol.At(t, i),
			WeeklyReturn:   weekly.At(t, i),
			Signal:         sig,
			Side:           model.SideFromSignal(float64(sig)),
		})
	}
	return out, nil
}

// BenchmarkSeries is the benchmark trailing-return diagnostic aligned to the
// panel's time axis.
type BenchmarkSeries struct {
	Instrument string
	Dates      []time.Time
	Returns    []float64
}

// Benchmark computes the strategy's benchmark-return diagnostic.
func Benchmark(prices *model.PricePanel, strat *strategy.UpMinusDown) (*BenchmarkSeries, error) {
	rets, err := strat.BenchmarkReturns(prices)
	if err != nil {
		return nil, err
	}
	return &BenchmarkSeries{
		Instrument: strat.Params().Benchmark,
		Dates:      prices.Dates(),
		Returns:    rets,
	}, nil
}
