package strategy

import (
	"math"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
)

// EqualWeightBuyHold goes long every instrument with a quoted close at equal
// weight, every period. It is the baseline the momentum book is compared
// against and a second, trivial implementation of the contract.
type EqualWeightBuyHold struct{}

func NewEqualWeightBuyHold() *EqualWeightBuyHold { return &EqualWeightBuyHold{} }

func (s *EqualWeightBuyHold) Name() string { return "buy-and-hold" }

func (s *EqualWeightBuyHold) PricesToSignals(prices *model.PricePanel) (*panel.Panel, error) {
	return prices.Closes.Map(func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return 1
	}), nil
}

func (s *EqualWeightBuyHold) SignalsToTargetWeights(signals *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	return equalWeights(signals), nil
}

func (s *EqualWeightBuyHold) TargetWeightsToPositions(weights *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	return weights.Shift(1), nil
}

func (s *EqualWeightBuyHold) PositionsToGrossReturns(positions *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	return openGrossReturns(positions, prices), nil
}
