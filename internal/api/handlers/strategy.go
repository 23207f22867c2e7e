package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momentum-backtest/internal/api/models"
	"momentum-backtest/internal/strategy"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	def := strategy.DefaultParams()
	strategies := []models.StrategyInfo{
		{
			Name:        "up-minus-down",
			Description: "Cross-sectional momentum: buys recent winners and shorts recent losers, ranked by volatility-adjusted trailing return.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "momentum_window",
					Type:        "int",
					Description: "Trailing-return lookback for the ranking score, in periods",
					Default:     def.MomentumWindow,
				},
				{
					Name:        "volatility_window",
					Type:        "int",
					Description: "Lookback for daily-return volatility, in periods",
					Default:     def.VolatilityWindow,
				},
				{
					Name:        "ranking_period_gap",
					Type:        "int",
					Description: "Recent periods excluded from the ranking window when apply_ranking_gap is set",
					Default:     def.RankingPeriodGap,
				},
				{
					Name:        "apply_ranking_gap",
					Type:        "bool",
					Description: "Apply ranking_period_gap to the momentum return window",
					Default:     false,
				},
				{
					Name:        "top_n_pct",
					Type:        "float",
					Description: "Buy/sell the top/bottom percent of the ranking (exclusive with top_n_count)",
					Default:     50.0,
				},
				{
					Name:        "top_n_count",
					Type:        "int",
					Description: "Buy/sell the top/bottom N instruments (exclusive with top_n_pct)",
				},
				{
					Name:        "long_only",
					Type:        "bool",
					Description: "Emit only long signals",
					Default:     false,
				},
				{
					Name:        "short_only",
					Type:        "bool",
					Description: "Emit only short signals",
					Default:     false,
				},
				{
					Name:        "escape_weekly_change_limit",
					Type:        "float",
					Description: "Suppress entries that fight a weekly move beyond this limit",
					Default:     def.EscapeWeeklyChangeLimit,
				},
				{
					Name:        "rebalance_interval",
					Type:        "string",
					Description: "Rebalance frequency: D, W or M",
					Default:     string(def.RebalanceInterval),
				},
				{
					Name:        "price_lower_limit",
					Type:        "float",
					Description: "Exclude instruments whose close is at or below this price",
					Default:     def.PriceLowerLimit,
				},
				{
					Name:        "ewm_com",
					Type:        "float",
					Description: "Optional exponential smoothing of closes (center of mass)",
				},
				{
					Name:        "benchmark_window",
					Type:        "int",
					Description: "Lookback for the benchmark trailing-return diagnostic",
					Default:     def.BenchmarkWindow,
				},
			},
		},
		{
			Name:        "buy-and-hold",
			Description: "Equal-weight long book over every quoted instrument; baseline for the momentum book.",
		},
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
