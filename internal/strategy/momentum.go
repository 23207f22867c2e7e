package strategy

import "momentum-backtest/internal/panel"

// volFloor is added to realized volatility before dividing, so the score
// stays finite when volatility is near zero and low-vol names are not
// over-weighted purely by ratio explosion.
const volFloor = 0.05

// MomentumScore computes the volatility-adjusted momentum score used to
// rank instruments: the trailing intervalReturn-period return divided by
// (0.05 + rolling sample stddev of daily returns over intervalVol periods).
// Leading rows are NaN until both windows are populated.
func MomentumScore(prices *panel.Panel, intervalReturn, intervalVol int) *panel.Panel {
	ret := prices.Return(intervalReturn)
	vol := prices.PctChange().RollingStd(intervalVol)
	return ret.Combine(vol, func(r, v float64) float64 { return r / (volFloor + v) })
}

// MomentumScoreGapped is MomentumScore with the most recent gap periods
// excluded from the return window: the return spans [t-intervalReturn,
// t-gap]. Requires 0 < gap < intervalReturn. Volatility still uses the full
// trailing window of daily returns.
func MomentumScoreGapped(prices *panel.Panel, intervalReturn, intervalVol, gap int) *panel.Panel {
	ret := prices.Shift(gap).Return(intervalReturn - gap)
	vol := prices.PctChange().RollingStd(intervalVol)
	return ret.Combine(vol, func(r, v float64) float64 { return r / (volFloor + v) })
}
