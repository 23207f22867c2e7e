package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momentum-backtest/internal/analysis"
	"momentum-backtest/internal/api/models"
)

// SignalsHandler serves the current signal snapshot
type SignalsHandler struct{}

// NewSignalsHandler creates a new signals handler
func NewSignalsHandler() *SignalsHandler {
	return &SignalsHandler{}
}

// CurrentSignals handles POST /api/v1/signals
func (h *SignalsHandler) CurrentSignals(c *gin.Context) {
	var req models.SignalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	cfg := toConfig(req.DataSource, req.Strategy, models.CommissionConfig{})
	strat, err := cfg.BuildStrategy()
	if err != nil {
		badRequest(c, "INVALID_STRATEGY", err.Error())
		return
	}

	prices, err := loadPanel(req.DataSource)
	if err != nil {
		badRequest(c, "INVALID_DATA", err.Error())
		return
	}

	snaps, err := analysis.SnapshotLatest(prices, strat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SNAPSHOT_FAILED", Message: err.Error()},
		})
		return
	}

	resp := models.SignalsResponse{}
	if len(snaps) > 0 {
		resp.Date = snaps[0].Date
	}
	for _, s := range snaps {
		resp.Signals = append(resp.Signals, models.InstrumentState{
			Instrument:     s.Instrument,
			Signal:         s.Signal,
			Side:           string(s.Side),
			MomentumScore:  optFloat(s.MomentumScore),
			TrailingReturn: optFloat(s.TrailingReturn),
			Volatility:     optFloat(s.Volatility),
			WeeklyReturn:   optFloat(s.WeeklyReturn),
		})
	}

	if req.IncludeBenchmark && req.DataSource.Benchmark != "" {
		bench, err := analysis.Benchmark(prices, strat)
		if err != nil {
			badRequest(c, "INVALID_BENCHMARK", err.Error())
			return
		}
		series := &models.BenchmarkSeries{
			Instrument: bench.Instrument,
			Dates:      bench.Dates,
		}
		for _, r := range bench.Returns {
			series.Returns = append(series.Returns, optFloat(r))
		}
		resp.Benchmark = series
	}

	c.JSON(http.StatusOK, resp)
}
