package strategy

import (
	"math"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
)

// Strategy is the four-operation contract a backtest runner drives:
// prices become integer signals (-1/0/+1), signals become fractional capital
// weights, weights become positions one period later, and positions yield
// pre-cost returns. Implementations must be pure: same inputs, same outputs,
// no retained state between calls.
type Strategy interface {
	Name() string

	// PricesToSignals returns a panel of integer-valued signals on the
	// price panel's axes: 1=long, -1=short, 0=flat.
	PricesToSignals(prices *model.PricePanel) (*panel.Panel, error)

	// SignalsToTargetWeights converts signals to fractions of capital
	// per instrument (e.g. -0.25, 0, 0.1).
	SignalsToTargetWeights(signals *panel.Panel, prices *model.PricePanel) (*panel.Panel, error)

	// TargetWeightsToPositions models the lag between deciding a weight
	// and holding the position.
	TargetWeightsToPositions(weights *panel.Panel, prices *model.PricePanel) (*panel.Panel, error)

	// PositionsToGrossReturns returns per-instrument percentage returns
	// before commissions and slippage.
	PositionsToGrossReturns(positions *panel.Panel, prices *model.PricePanel) (*panel.Panel, error)
}

// equalWeights allocates capital equally across the active signals of each
// row: weight = sign / count of non-zero signals that period. Rows with no
// active signal stay all zero, so gross exposure is 1 or 0 every period.
func equalWeights(signals *panel.Panel) *panel.Panel {
	weights := signals.Map(func(float64) float64 { return 0 })
	for t := 0; t < signals.NumDates(); t++ {
		active := 0
		for i := 0; i < signals.NumInstruments(); i++ {
			if v := signals.At(t, i); !math.IsNaN(v) && v != 0 {
				active++
			}
		}
		if active == 0 {
			continue
		}
		for i := 0; i < signals.NumInstruments(); i++ {
			if v := signals.At(t, i); !math.IsNaN(v) && v != 0 {
				weights.Set(t, i, v/float64(active))
			}
		}
	}
	return weights
}

// openGrossReturns computes open-to-open percent change multiplied by the
// position shifted one further period: entry happens at the next period's
// open after the position is set, so P&L lags the signal by two periods.
func openGrossReturns(positions *panel.Panel, prices *model.PricePanel) *panel.Panel {
	return prices.Opens.PctChange().Mul(positions.Shift(1))
}
