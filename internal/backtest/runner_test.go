package backtest

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
	"momentum-backtest/internal/strategy"
)

func weekdays(start string, n int) []time.Time {
	t0, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	out := make([]time.Time, 0, n)
	d := t0
	for len(out) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return out
}

func flatPrices(t *testing.T, dates []time.Time, levels map[string]float64, growth float64) *model.PricePanel {
	t.Helper()
	insts := make([]string, 0, len(levels))
	for inst := range levels {
		insts = append(insts, inst)
	}
	for i := 0; i < len(insts); i++ {
		for j := i + 1; j < len(insts); j++ {
			if insts[j] < insts[i] {
				insts[i], insts[j] = insts[j], insts[i]
			}
		}
	}
	closes := panel.MustNew(dates, insts)
	opens := panel.MustNew(dates, insts)
	for i, inst := range insts {
		for ti := range dates {
			v := levels[inst] * math.Pow(1+growth, float64(ti))
			closes.Set(ti, i, v)
			opens.Set(ti, i, v)
		}
	}
	prices, err := model.NewPricePanel(closes, opens)
	require.NoError(t, err)
	return prices
}

func TestRunBuyHoldLedger(t *testing.T) {
	dates := weekdays("2024-01-01", 10)
	prices := flatPrices(t, dates, map[string]float64{"A": 100, "B": 50}, 0.01)

	runner := New(strategy.NewEqualWeightBuyHold())
	res, err := runner.Run(prices)
	require.NoError(t, err)

	require.Len(t, res.Ledger, 10)
	assert.Equal(t, "buy-and-hold", res.Strategy)

	// every date holds both names long
	for _, row := range res.Ledger {
		assert.Equal(t, 2, row.Longs)
		assert.Equal(t, 0, row.Shorts)
		assert.InDelta(t, 1.0, row.GrossExposure, 1e-12)
		assert.Equal(t, 0.0, row.Commission)
		assert.Equal(t, row.GrossReturn, row.NetReturn)
	}

	// P&L starts once positions are held and the next open prints:
	// weights at t=0, positions at t=1, returns from t=2
	assert.Equal(t, 0.0, res.Ledger[0].GrossReturn)
	assert.Equal(t, 0.0, res.Ledger[1].GrossReturn)
	for _, row := range res.Ledger[2:] {
		assert.InDelta(t, 0.01, row.GrossReturn, 1e-12)
	}

	assert.InDelta(t, 0.08, res.TotalGrossReturn, 1e-12)
	last := res.Ledger[len(res.Ledger)-1]
	assert.InDelta(t, res.TotalGrossReturn, last.CumGrossReturn, 1e-12)
	assert.InDelta(t, res.TotalNetReturn, last.CumNetReturn, 1e-12)
}

func TestRunAppliesCommissions(t *testing.T) {
	dates := weekdays("2024-01-01", 10)
	prices := flatPrices(t, dates, map[string]float64{"A": 100, "B": 100}, 0)

	runner := New(strategy.NewEqualWeightBuyHold())
	cm, err := strategy.NewPerShareCommission(0.005)
	require.NoError(t, err)
	runner.Commission = cm

	res, err := runner.Run(prices)
	require.NoError(t, err)
	require.NotNil(t, res.Commissions)

	// positions enter at t=1: each name goes 0 -> 0.5 at an open of 100
	enter := res.Ledger[1]
	assert.InDelta(t, 2*0.5*0.005/100, enter.Commission, 1e-15)
	assert.InDelta(t, -enter.Commission, enter.NetReturn, 1e-15)

	// no further trading on a constant book
	for _, row := range res.Ledger[2:] {
		assert.Equal(t, 0.0, row.Commission)
	}
	assert.Equal(t, 0.0, res.TotalGrossReturn)
	assert.InDelta(t, -enter.Commission, res.TotalNetReturn, 1e-15)
}

func TestRunUpMinusDownEndToEnd(t *testing.T) {
	dates := weekdays("2024-01-01", 25)
	insts := []string{"AAA", "BBB", "CCC"}
	closes := panel.MustNew(dates, insts)
	opens := panel.MustNew(dates, insts)
	rates := []float64{1.01, 1.0, 0.99}
	for i := range insts {
		for ti := range dates {
			v := 100 * math.Pow(rates[i], float64(ti))
			closes.Set(ti, i, v)
			opens.Set(ti, i, v)
		}
	}
	prices, err := model.NewPricePanel(closes, opens)
	require.NoError(t, err)

	strat, err := strategy.NewUpMinusDown(strategy.Params{
		MomentumWindow:          10,
		VolatilityWindow:        5,
		Selection:               strategy.Percentile(50),
		EscapeWeeklyChangeLimit: 0.5,
		RebalanceInterval:       panel.Daily,
		PriceLowerLimit:         1,
		BenchmarkWindow:         5,
	})
	require.NoError(t, err)

	res, err := New(strat).Run(prices)
	require.NoError(t, err)

	last := res.Ledger[len(res.Ledger)-1]
	assert.Equal(t, 1, last.Longs)
	assert.Equal(t, 1, last.Shorts)
	assert.InDelta(t, 1.0, last.GrossExposure, 1e-12)

	// long the riser, short the faller: both legs pay
	assert.Greater(t, last.GrossReturn, 0.0)
	assert.Greater(t, res.TotalGrossReturn, 0.0)
}

func TestRunRejectsBadInputs(t *testing.T) {
	_, err := (&Runner{}).Run(nil)
	assert.Error(t, err)

	runner := New(strategy.NewEqualWeightBuyHold())
	_, err = runner.Run(nil)
	assert.Error(t, err)
}

func TestWriteLedgerCSV(t *testing.T) {
	dates := weekdays("2024-01-01", 3)
	ledger := []LedgerRow{
		{Index: 0, Date: dates[0]},
		{Index: 1, Date: dates[1], Longs: 2, Shorts: 1, GrossExposure: 1, GrossReturn: 0.01, Commission: 0.0001, NetReturn: 0.0099, CumGrossReturn: 0.01, CumNetReturn: 0.0099},
		{Index: 2, Date: dates[2], Longs: 2, Shorts: 1, GrossExposure: 1, GrossReturn: -0.005, Commission: 0, NetReturn: -0.005, CumGrossReturn: 0.005, CumNetReturn: 0.0049},
	}

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteLedgerCSV(path, ledger))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"index", "date", "longs", "shorts", "gross_exposure",
		"gross_return", "commission", "net_return",
		"cum_gross_return", "cum_net_return",
	}, rows[0])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "2024-01-02", rows[2][1])
	assert.Equal(t, "2", rows[2][2])
	assert.Equal(t, "0.010000", rows[2][5])
	assert.Equal(t, "0.009900", rows[2][7])
}
