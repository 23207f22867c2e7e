package backtest

import (
	"fmt"
	"math"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
	"momentum-backtest/internal/strategy"
)

// Runner chains the four strategy operations over a price panel and
// aggregates the outputs into a per-date ledger. It performs no order
// simulation: positions and returns are exactly what the strategy contract
// produces, minus commissions when a model is configured.
type Runner struct {
	Strategy   strategy.Strategy
	Commission strategy.CommissionModel // optional
}

func New(strat strategy.Strategy) *Runner {
	return &Runner{Strategy: strat}
}

// Run executes prices -> signals -> weights -> positions -> gross returns
// and builds the ledger. Cumulative returns are simple sums of the per-date
// cross-sectional return, pre- and post-commission.
func (r *Runner) Run(prices *model.PricePanel) (*Result, error) {
	if r.Strategy == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if prices == nil || prices.Closes.NumDates() == 0 {
		return nil, fmt.Errorf("no price data")
	}

	signals, err := r.Strategy.PricesToSignals(prices)
	if err != nil {
		return nil, fmt.Errorf("prices to signals: %w", err)
	}
	weights, err := r.Strategy.SignalsToTargetWeights(signals, prices)
	if err != nil {
		return nil, fmt.Errorf("signals to target weights: %w", err)
	}
	positions, err := r.Strategy.TargetWeightsToPositions(weights, prices)
	if err != nil {
		return nil, fmt.Errorf("target weights to positions: %w", err)
	}
	gross, err := r.Strategy.PositionsToGrossReturns(positions, prices)
	if err != nil {
		return nil, fmt.Errorf("positions to gross returns: %w", err)
	}

	var commissions *panel.Panel
	if r.Commission != nil {
		commissions, err = r.Commission.Commissions(positions, prices)
		if err != nil {
			return nil, fmt.Errorf("commissions: %w", err)
		}
	}

	dates := prices.Dates()
	ledger := make([]LedgerRow, 0, len(dates))
	cumGross, cumNet := 0.0, 0.0

	for t := range dates {
		row := LedgerRow{Index: t, Date: dates[t]}
		for i := 0; i < signals.NumInstruments(); i++ {
			switch v := signals.At(t, i); {
			case v > 0:
				row.Longs++
			case v < 0:
				row.Shorts++
			}
			if w := weights.At(t, i); !math.IsNaN(w) {
				row.GrossExposure += math.Abs(w)
			}
			if g := gross.At(t, i); !math.IsNaN(g) {
				row.GrossReturn += g
			}
			if commissions != nil {
				if c := commissions.At(t, i); !math.IsNaN(c) {
					row.Commission += c
				}
			}
		}
		row.NetReturn = row.GrossReturn - row.Commission
		cumGross += row.GrossReturn
		cumNet += row.NetReturn
		row.CumGrossReturn = cumGross
		row.CumNetReturn = cumNet
		ledger = append(ledger, row)
	}

	return &Result{
		Strategy:         r.Strategy.Name(),
		Ledger:           ledger,
		Signals:          signals,
		Weights:          weights,
		Positions:        positions,
		GrossReturns:     gross,
		Commissions:      commissions,
		TotalGrossReturn: cumGross,
		TotalNetReturn:   cumNet,
	}, nil
}
