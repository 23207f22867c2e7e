package panel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// Interval is a rebalance/resample frequency.
type Interval string

const (
	Daily   Interval = "D"
	Weekly  Interval = "W"
	Monthly Interval = "M"
)

// ParseInterval validates an interval code.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case Daily, Weekly, Monthly:
		return Interval(s), nil
	}
	return "", fmt.Errorf("invalid rebalance interval %q, expected D, W or M", s)
}

// Shift lags every column by k rows. The first k rows become NaN.
func (p *Panel) Shift(k int) *Panel {
	if k < 0 {
		panic("panel: negative shift")
	}
	out := p.emptyLike()
	for t := k; t < len(p.values); t++ {
		copy(out.values[t], p.values[t-k])
	}
	return out
}

// Return computes the simple trailing return p[t]/p[t-k] - 1.
// The first k rows are NaN, as is any cell whose numerator or denominator
// is NaN (a zero denominator yields ±Inf, as in the source data it would).
func (p *Panel) Return(k int) *Panel {
	if k <= 0 {
		panic("panel: return lookback must be positive")
	}
	out := p.emptyLike()
	for t := k; t < len(p.values); t++ {
		for i := range p.instruments {
			out.values[t][i] = p.values[t][i]/p.values[t-k][i] - 1
		}
	}
	return out
}

// PctChange is the one-period simple return.
func (p *Panel) PctChange() *Panel { return p.Return(1) }

// RollingStd computes the trailing sample standard deviation of each column
// over a window of `window` observations. A cell is NaN until the trailing
// window is fully populated with non-NaN values.
func (p *Panel) RollingStd(window int) *Panel {
	if window < 2 {
		panic("panel: rolling std window must be at least 2")
	}
	out := p.emptyLike()
	buf := make([]float64, window)
	for i := range p.instruments {
		for t := window - 1; t < len(p.values); t++ {
			ok := true
			for w := 0; w < window; w++ {
				v := p.values[t-w][i]
				if math.IsNaN(v) {
					ok = false
					break
				}
				buf[w] = v
			}
			if !ok {
				continue
			}
			sd, err := stats.StandardDeviationSample(buf)
			if err != nil {
				continue
			}
			out.values[t][i] = sd
		}
	}
	return out
}

// EWMMean computes an exponentially weighted mean of each column with
// center-of-mass com (alpha = 1/(1+com)), using position-based weights.
// NaN observations decay the weight state without contributing, so the mean
// carries forward across gaps. Cells before the first observation are NaN.
func (p *Panel) EWMMean(com float64) *Panel {
	if com < 0 {
		panic("panel: ewm center of mass must be non-negative")
	}
	alpha := 1 / (1 + com)
	decay := 1 - alpha
	out := p.emptyLike()
	for i := range p.instruments {
		num, den := 0.0, 0.0
		started := false
		for t := range p.values {
			v := p.values[t][i]
			if started {
				num *= decay
				den *= decay
			}
			if !math.IsNaN(v) {
				num += v
				den++
				started = true
			}
			if started && den > 0 {
				out.values[t][i] = num / den
			}
		}
	}
	return out
}

// RankPct ranks each row cross-sectionally and scales ranks to (0, 1] by the
// count of non-NaN entries in that row. Ties receive their average rank.
// NaN cells rank as NaN.
func (p *Panel) RankPct(ascending bool) *Panel {
	return p.rank(ascending, true)
}

// RankPos ranks each row cross-sectionally by absolute position (1 = best).
// Ties receive their average rank. NaN cells rank as NaN.
func (p *Panel) RankPos(ascending bool) *Panel {
	return p.rank(ascending, false)
}

func (p *Panel) rank(ascending, pct bool) *Panel {
	out := p.emptyLike()
	type entry struct {
		col int
		val float64
	}
	for t := range p.values {
		entries := make([]entry, 0, len(p.instruments))
		for i, v := range p.values[t] {
			if !math.IsNaN(v) {
				entries = append(entries, entry{col: i, val: v})
			}
		}
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(a, b int) bool {
			if ascending {
				return entries[a].val < entries[b].val
			}
			return entries[a].val > entries[b].val
		})
		n := len(entries)
		for lo := 0; lo < n; {
			hi := lo + 1
			for hi < n && entries[hi].val == entries[lo].val {
				hi++
			}
			// 1-based average rank across the tie group
			avg := float64(lo+hi+1) / 2
			for k := lo; k < hi; k++ {
				r := avg
				if pct {
					r /= float64(n)
				}
				out.values[t][entries[k].col] = r
			}
			lo = hi
		}
	}
	return out
}

// WhereAbove keeps values strictly greater than limit and masks the rest to
// NaN. Used to drop instruments trading at or below a price floor.
func (p *Panel) WhereAbove(limit float64) *Panel {
	out := p.emptyLike()
	for t := range p.values {
		for i, v := range p.values[t] {
			if v > limit {
				out.values[t][i] = v
			}
		}
	}
	return out
}

// Combine applies f elementwise across two panels with identical axes.
func (p *Panel) Combine(o *Panel, f func(a, b float64) float64) *Panel {
	if !p.SameShape(o) {
		panic("panel: combine on mismatched axes")
	}
	out := p.emptyLike()
	for t := range p.values {
		for i := range p.values[t] {
			out.values[t][i] = f(p.values[t][i], o.values[t][i])
		}
	}
	return out
}

// Mul multiplies two panels elementwise. NaN propagates.
func (p *Panel) Mul(o *Panel) *Panel {
	return p.Combine(o, func(a, b float64) float64 { return a * b })
}

// Map applies f to every cell.
func (p *Panel) Map(f func(v float64) float64) *Panel {
	out := p.emptyLike()
	for t := range p.values {
		for i, v := range p.values[t] {
			out.values[t][i] = f(v)
		}
	}
	return out
}

// ResampleLastFFill collapses each calendar period to its final row's values
// and step-fills the result back onto the original time axis: a row dated
// exactly at its calendar period end carries its own period's final value,
// every other row carries the previous period's final value. Rows before the
// first completed period are NaN. Daily is the identity.
func (p *Panel) ResampleLastFFill(iv Interval) *Panel {
	if iv == Daily {
		return p.Clone()
	}

	// Periods appear in chronological order because dates are ascending.
	type period struct {
		key     int64
		lastRow int
	}
	var periods []period
	rowPeriod := make([]int, len(p.dates))
	for t, d := range p.dates {
		key := periodKey(d, iv)
		if len(periods) == 0 || periods[len(periods)-1].key != key {
			periods = append(periods, period{key: key})
		}
		idx := len(periods) - 1
		periods[idx].lastRow = t
		rowPeriod[t] = idx
	}

	out := p.emptyLike()
	for t, d := range p.dates {
		idx := rowPeriod[t]
		src := idx - 1
		if sameDay(d, periodEnd(d, iv)) {
			src = idx
		}
		if src < 0 {
			continue
		}
		copy(out.values[t], p.values[periods[src].lastRow])
	}
	return out
}

func periodKey(d time.Time, iv Interval) int64 {
	switch iv {
	case Weekly:
		y, w := d.ISOWeek()
		return int64(y)*100 + int64(w)
	case Monthly:
		return int64(d.Year())*12 + int64(d.Month())
	default:
		return d.Unix()
	}
}

// periodEnd returns the calendar end of the period containing d: the last
// day of the month, or the Sunday closing the ISO week.
func periodEnd(d time.Time, iv Interval) time.Time {
	switch iv {
	case Weekly:
		days := (7 - int(d.Weekday())) % 7 // days until Sunday
		return d.AddDate(0, 0, days)
	case Monthly:
		firstOfNext := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, 1, 0)
		return firstOfNext.AddDate(0, 0, -1)
	default:
		return d
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
