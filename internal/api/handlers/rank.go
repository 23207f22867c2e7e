package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momentum-backtest/internal/analysis"
	"momentum-backtest/internal/api/models"
	"momentum-backtest/internal/config"
	"momentum-backtest/internal/data"
)

// RankHandler handles momentum-ranking requests
type RankHandler struct{}

// NewRankHandler creates a new rank handler
func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// RankInstruments handles GET /api/v1/rank
// Instruments are scored with the stock strategy parameters and sorted by
// momentum score, best first.
func (h *RankHandler) RankInstruments(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	prices, err := data.LoadPricePanel(req.PricesFile)
	if err != nil {
		badRequest(c, "INVALID_DATA", err.Error())
		return
	}

	strat, err := config.Demo().BuildStrategy()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
		return
	}

	snaps, err := analysis.SnapshotLatest(prices, strat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RANK_FAILED", Message: err.Error()},
		})
		return
	}

	ranked := analysis.RankByMomentum(snaps)
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	resp := models.RankResponse{}
	for i, s := range ranked {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:           i + 1,
			Instrument:     s.Instrument,
			MomentumScore:  optFloat(s.MomentumScore),
			TrailingReturn: optFloat(s.TrailingReturn),
			WeeklyReturn:   optFloat(s.WeeklyReturn),
			Side:           string(s.Side),
		})
	}
	c.JSON(http.StatusOK, resp)
}
