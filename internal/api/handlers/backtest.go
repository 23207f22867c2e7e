package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"momentum-backtest/internal/api/models"
	"momentum-backtest/internal/backtest"
)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	mu      sync.RWMutex
	ledgers map[string][]models.LedgerRow
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler() *BacktestHandler {
	return &BacktestHandler{ledgers: map[string][]models.LedgerRow{}}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	cfg := toConfig(req.DataSource, req.Strategy, req.Commission)
	strat, err := cfg.BuildStrategy()
	if err != nil {
		badRequest(c, "INVALID_STRATEGY", err.Error())
		return
	}
	commission, err := cfg.BuildCommission()
	if err != nil {
		badRequest(c, "INVALID_COMMISSION", err.Error())
		return
	}

	prices, err := loadPanel(req.DataSource)
	if err != nil {
		badRequest(c, "INVALID_DATA", err.Error())
		return
	}

	runner := backtest.New(strat)
	runner.Commission = commission
	res, err := runner.Run(prices)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "BACKTEST_FAILED", Message: err.Error()},
		})
		return
	}

	id := uuid.NewString()
	ledger := toLedgerRows(res.Ledger)
	h.mu.Lock()
	h.ledgers[id] = ledger
	h.mu.Unlock()

	resp := models.BacktestResponse{
		ID:      id,
		Status:  "completed",
		Summary: summarize(res, prices.Closes.NumInstruments()),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = ledger
	}
	c.JSON(http.StatusOK, resp)
}

// GetLedger handles GET /api/v1/backtest/:id/ledger
func (h *BacktestHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	h.mu.RLock()
	ledger, ok := h.ledgers[id]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "no backtest with id " + id},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "ledger": ledger})
}

func summarize(res *backtest.Result, instruments int) models.BacktestSummary {
	s := models.BacktestSummary{
		Strategy:         res.Strategy,
		TotalGrossReturn: res.TotalGrossReturn,
		TotalNetReturn:   res.TotalNetReturn,
		TotalDates:       len(res.Ledger),
		Instruments:      instruments,
	}
	if n := len(res.Ledger); n > 0 {
		s.BacktestWindow = models.TimeWindow{
			Start: res.Ledger[0].Date,
			End:   res.Ledger[n-1].Date,
		}
		s.FinalLongs = res.Ledger[n-1].Longs
		s.FinalShorts = res.Ledger[n-1].Shorts
	}
	return s
}

func toLedgerRows(rows []backtest.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.LedgerRow{
			Index:          r.Index,
			Date:           r.Date,
			Longs:          r.Longs,
			Shorts:         r.Shorts,
			GrossExposure:  r.GrossExposure,
			GrossReturn:    r.GrossReturn,
			Commission:     r.Commission,
			NetReturn:      r.NetReturn,
			CumGrossReturn: r.CumGrossReturn,
			CumNetReturn:   r.CumNetReturn,
		})
	}
	return out
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}
