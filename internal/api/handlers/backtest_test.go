package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum-backtest/internal/api/models"
	"momentum-backtest/internal/data"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func writeSamplePrices(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	require.NoError(t, data.WriteBars(path, data.SampleBars(end, 60)))
	return path
}

func newRouter(h *BacktestHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/backtest", h.RunBacktest)
	r.GET("/api/v1/backtest/:id/ledger", h.GetLedger)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRunBacktestEndpoint(t *testing.T) {
	h := NewBacktestHandler()
	r := newRouter(h)
	pct := 30.0
	floor := 1.0

	req := models.BacktestRequest{
		DataSource: models.DataSourceConfig{PricesFile: writeSamplePrices(t)},
		Strategy: models.StrategyConfig{
			MomentumWindow:   20,
			VolatilityWindow: 10,
			TopNPct:          &pct,
			PriceLowerLimit:  &floor,
		},
		Commission: models.CommissionConfig{PerShare: 0.005},
		Options:    models.BacktestOptions{IncludeLedger: true},
	}

	w := postJSON(t, r, "/api/v1/backtest", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.BacktestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "up-minus-down", resp.Summary.Strategy)
	assert.Equal(t, 60, resp.Summary.TotalDates)
	assert.Equal(t, 11, resp.Summary.Instruments)
	require.Len(t, resp.Ledger, 60)

	// the stored ledger is retrievable by id
	get := httptest.NewRequest(http.MethodGet, "/api/v1/backtest/"+resp.ID+"/ledger", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, get)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.ID)
}

func TestRunBacktestRejectsBadStrategy(t *testing.T) {
	h := NewBacktestHandler()
	r := newRouter(h)
	pct := 30.0
	n := 5

	req := models.BacktestRequest{
		DataSource: models.DataSourceConfig{PricesFile: writeSamplePrices(t)},
		Strategy: models.StrategyConfig{
			TopNPct:   &pct,
			TopNCount: &n, // both modes set
		},
	}

	w := postJSON(t, r, "/api/v1/backtest", req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_STRATEGY", resp.Error.Code)
}

func TestRunBacktestRejectsMissingFields(t *testing.T) {
	h := NewBacktestHandler()
	r := newRouter(h)

	w := postJSON(t, r, "/api/v1/backtest", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestRunBacktestRejectsMissingPricesFile(t *testing.T) {
	h := NewBacktestHandler()
	r := newRouter(h)
	pct := 30.0

	req := models.BacktestRequest{
		DataSource: models.DataSourceConfig{
			PricesFile: filepath.Join(t.TempDir(), "missing.csv"),
		},
		Strategy: models.StrategyConfig{TopNPct: &pct},
	}

	w := postJSON(t, r, "/api/v1/backtest", req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_DATA", resp.Error.Code)
}

func TestGetLedgerUnknownID(t *testing.T) {
	h := NewBacktestHandler()
	r := newRouter(h)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/backtest/%s/ledger", "nope"), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
