package handlers

import (
	"momentum-backtest/internal/api/models"
	"momentum-backtest/internal/config"
	"momentum-backtest/internal/data"
	"momentum-backtest/internal/model"
)

// toConfig maps an API request onto the internal config shape so strategy
// construction and validation follow the exact same path as file-based runs.
func toConfig(ds models.DataSourceConfig, sc models.StrategyConfig, cm models.CommissionConfig) *config.Config {
	c := &config.Config{
		Data: config.DataConfig{
			PricesFile:   ds.PricesFile,
			UniverseFile: ds.UniverseFile,
			Benchmark:    ds.Benchmark,
		},
		Strategy: config.StrategyConfig{
			Name:                    sc.Name,
			MomentumWindow:          sc.MomentumWindow,
			VolatilityWindow:        sc.VolatilityWindow,
			RankingPeriodGap:        sc.RankingPeriodGap,
			ApplyRankingGap:         sc.ApplyRankingGap,
			TopNPct:                 sc.TopNPct,
			TopNCount:               sc.TopNCount,
			LongOnly:                sc.LongOnly,
			ShortOnly:               sc.ShortOnly,
			EscapeWeeklyChangeLimit: sc.EscapeWeeklyChangeLimit,
			RebalanceInterval:       sc.RebalanceInterval,
			PriceLowerLimit:         sc.PriceLowerLimit,
			EWMCom:                  sc.EWMCom,
			BenchmarkWindow:         sc.BenchmarkWindow,
		},
		Commission: config.CommissionConfig{PerShare: cm.PerShare},
	}
	c.ApplyDefaults()
	return c
}

// loadPanel loads the price panel for a data source, applying the universe
// restriction when one is configured.
func loadPanel(ds models.DataSourceConfig) (*model.PricePanel, error) {
	prices, err := data.LoadPricePanel(ds.PricesFile)
	if err != nil {
		return nil, err
	}
	if ds.UniverseFile != "" {
		u, err := data.LoadUniverse(ds.UniverseFile)
		if err != nil {
			return nil, err
		}
		prices = prices.Select(u.Symbols())
	}
	return prices, nil
}

// optFloat converts a possibly-NaN value to a JSON-friendly pointer.
func optFloat(v float64) *float64 {
	if v != v { // NaN
		return nil
	}
	return &v
}
