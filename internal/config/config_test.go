package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum-backtest/internal/panel"
	"momentum-backtest/internal/strategy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  prices_file: prices.csv
  benchmark: SPY
strategy:
  top_n_pct: 50
`)

	c, err := Load(path)
	require.NoError(t, err)

	def := strategy.DefaultParams()
	assert.Equal(t, "up-minus-down", c.Strategy.Name)
	assert.Equal(t, def.MomentumWindow, c.Strategy.MomentumWindow)
	assert.Equal(t, def.VolatilityWindow, c.Strategy.VolatilityWindow)
	assert.Equal(t, string(def.RebalanceInterval), c.Strategy.RebalanceInterval)
	require.NotNil(t, c.Strategy.PriceLowerLimit)
	assert.Equal(t, def.PriceLowerLimit, *c.Strategy.PriceLowerLimit)
	assert.Equal(t, def.BenchmarkWindow, c.Strategy.BenchmarkWindow)

	params, err := c.StrategyParams()
	require.NoError(t, err)
	assert.Equal(t, strategy.SelectPercentile, params.Selection.Mode())
	assert.Equal(t, 50.0, params.Selection.Pct())
	assert.Equal(t, "SPY", params.Benchmark)
}

func TestLoadOverridesStickAndValidate(t *testing.T) {
	path := writeConfig(t, `
data:
  prices_file: prices.csv
strategy:
  momentum_window: 60
  volatility_window: 20
  top_n_count: 5
  rebalance_interval: W
  price_lower_limit: 5
  escape_weekly_change_limit: 0.2
  ewm_com: 2.5
commission:
  per_share: 0.01
output:
  ledger_file: out.csv
`)

	c, err := Load(path)
	require.NoError(t, err)

	params, err := c.StrategyParams()
	require.NoError(t, err)
	assert.Equal(t, 60, params.MomentumWindow)
	assert.Equal(t, 20, params.VolatilityWindow)
	assert.Equal(t, strategy.SelectCount, params.Selection.Mode())
	assert.Equal(t, 5, params.Selection.N())
	assert.Equal(t, panel.Weekly, params.RebalanceInterval)
	assert.Equal(t, 5.0, params.PriceLowerLimit)
	require.NotNil(t, params.EWMCom)
	assert.Equal(t, 2.5, *params.EWMCom)

	cm, err := c.BuildCommission()
	require.NoError(t, err)
	require.NotNil(t, cm)
	assert.Equal(t, "per-share", cm.Name())
}

// An explicit zero means "disabled", not "unset": it must survive
// defaulting instead of being replaced by the stock values.
func TestLoadKeepsExplicitZeroLimits(t *testing.T) {
	path := writeConfig(t, `
strategy:
  top_n_pct: 50
  price_lower_limit: 0
  escape_weekly_change_limit: 0
`)

	c, err := Load(path)
	require.NoError(t, err)

	params, err := c.StrategyParams()
	require.NoError(t, err)
	assert.Equal(t, 0.0, params.PriceLowerLimit)
	assert.Equal(t, 0.0, params.EscapeWeeklyChangeLimit)
}

func TestLoadRejectsBothSelectionModes(t *testing.T) {
	path := writeConfig(t, `
strategy:
  top_n_pct: 50
  top_n_count: 5
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadRejectsMissingSelectionMode(t *testing.T) {
	path := writeConfig(t, `
strategy:
  momentum_window: 60
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestLoadRejectsBadInterval(t *testing.T) {
	path := writeConfig(t, `
strategy:
  top_n_pct: 50
  rebalance_interval: Q
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeCommission(t *testing.T) {
	path := writeConfig(t, `
strategy:
  top_n_pct: 50
commission:
  per_share: -0.01
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUncheckedKeepsPartialConfig(t *testing.T) {
	path := writeConfig(t, `
strategy:
  momentum_window: 7
`)

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Strategy.MomentumWindow)
	assert.Empty(t, c.Strategy.Name)
	assert.Nil(t, c.Strategy.TopNPct)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildCommissionDisabledAtZero(t *testing.T) {
	c := Demo()
	c.Commission.PerShare = 0
	cm, err := c.BuildCommission()
	require.NoError(t, err)
	assert.Nil(t, cm)
}

func TestDemoConfigIsValid(t *testing.T) {
	c := Demo()
	require.NoError(t, c.Validate())

	strat, err := c.BuildStrategy()
	require.NoError(t, err)
	assert.Equal(t, "up-minus-down", strat.Name())
	assert.Equal(t, "SPY", strat.Params().Benchmark)
}
