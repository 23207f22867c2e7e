package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum-backtest/internal/model"
	"momentum-backtest/internal/panel"
)

func TestPerShareCommissionChargesTurnover(t *testing.T) {
	dates := weekdays("2024-01-01", 4)
	closes := panel.MustNew(dates, []string{"A"})
	opens := panel.MustNew(dates, []string{"A"})
	for ti := range dates {
		closes.Set(ti, 0, 100)
		opens.Set(ti, 0, 100)
	}
	prices, err := model.NewPricePanel(closes, opens)
	require.NoError(t, err)

	positions := panel.MustNew(dates, []string{"A"})
	positions.Set(0, 0, math.NaN()) // pre-history
	positions.Set(1, 0, 0.5)
	positions.Set(2, 0, 0.5)
	positions.Set(3, 0, -0.5)

	cm, err := NewPerShareCommission(0.005)
	require.NoError(t, err)

	costs, err := cm.Commissions(positions, prices)
	require.NoError(t, err)

	assert.Equal(t, 0.0, costs.At(0, 0))
	// entering 0 -> 0.5 at a 100 open: 0.5 * 0.005 / 100
	assert.InDelta(t, 0.5*0.005/100, costs.At(1, 0), 1e-15)
	// unchanged position trades nothing
	assert.Equal(t, 0.0, costs.At(2, 0))
	// flipping 0.5 -> -0.5 doubles the turnover
	assert.InDelta(t, 1.0*0.005/100, costs.At(3, 0), 1e-15)
}

func TestPerShareCommissionSkipsBadOpens(t *testing.T) {
	dates := weekdays("2024-01-01", 2)
	closes := panel.MustNew(dates, []string{"A"})
	opens := panel.MustNew(dates, []string{"A"})
	closes.Set(0, 0, 100)
	closes.Set(1, 0, 100)
	opens.Set(0, 0, 100)
	// open missing on the trade date
	prices, err := model.NewPricePanel(closes, opens)
	require.NoError(t, err)

	positions := panel.MustNew(dates, []string{"A"})
	positions.Set(0, 0, 0)
	positions.Set(1, 0, 1)

	cm, err := NewPerShareCommission(0.005)
	require.NoError(t, err)

	costs, err := cm.Commissions(positions, prices)
	require.NoError(t, err)
	assert.Equal(t, 0.0, costs.At(1, 0))
}

func TestPerShareCommissionRejectsNegativeRate(t *testing.T) {
	_, err := NewPerShareCommission(-0.01)
	assert.Error(t, err)
}

func TestSelectionPolicyValidate(t *testing.T) {
	assert.NoError(t, Percentile(50).Validate())
	assert.NoError(t, Percentile(100).Validate())
	assert.NoError(t, Count(3).Validate())

	assert.Error(t, Percentile(0).Validate())
	assert.Error(t, Percentile(101).Validate())
	assert.Error(t, Count(0).Validate())
	assert.Error(t, SelectionPolicy{}.Validate())
}

func TestSelectionPolicyString(t *testing.T) {
	assert.Equal(t, "top/bottom 50%", Percentile(50).String())
	assert.Equal(t, "top/bottom 3", Count(3).String())
	assert.Equal(t, "unconfigured", SelectionPolicy{}.String())
}
