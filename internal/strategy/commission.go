package strategy

import (
	"fmt"
	"math"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
)

// DefaultPerShareRate is the stock US-equity broker commission in $/share.
const DefaultPerShareRate = 0.005

// CommissionModel converts position changes into per-period costs expressed,
// like gross returns, as fractions of allocated capital.
type CommissionModel interface {
	Name() string
	Commissions(positions *panel.Panel, prices *model.PricePanel) (*panel.Panel, error)
}

// PerShareCommission charges a fixed dollar amount per share traded. The
// cost fraction for a cell is |position change| * rate / open price: the
// position change times capital is the dollar turnover, dividing by price
// gives shares traded, and the capital cancels when converting the dollar
// commission back to a fraction.
type PerShareCommission struct {
	RatePerShare float64
}

func NewPerShareCommission(ratePerShare float64) (*PerShareCommission, error) {
	if ratePerShare < 0 {
		return nil, fmt.Errorf("commission rate must be non-negative, got %v", ratePerShare)
	}
	return &PerShareCommission{RatePerShare: ratePerShare}, nil
}

func (c *PerShareCommission) Name() string { return "per-share" }

func (c *PerShareCommission) Commissions(positions *panel.Panel, prices *model.PricePanel) (*panel.Panel, error) {
	if !positions.SameShape(prices.Opens) {
		return nil, fmt.Errorf("positions and prices have mismatched axes")
	}
	costs := positions.Map(func(float64) float64 { return 0 })
	for t := 0; t < positions.NumDates(); t++ {
		for i := 0; i < positions.NumInstruments(); i++ {
			cur := positions.At(t, i)
			if math.IsNaN(cur) {
				cur = 0
			}
			prev := 0.0
			if t > 0 {
				if v := positions.At(t-1, i); !math.IsNaN(v) {
					prev = v
				}
			}
			turnover := math.Abs(cur - prev)
			if turnover == 0 {
				continue
			}
			open := prices.Opens.At(t, i)
			if math.IsNaN(open) || open <= 0 {
				continue
			}
			costs.Set(t, i, turnover*c.RatePerShare/open)
		}
	}
	return costs, nil
}
