package backtest

import (
	"time"

	"momentum-backtest/internal/panel"
)

// LedgerRow is one date of aggregated output.
// This is the primary artifact for "what happened" in a backtest.
type LedgerRow struct {
	Index int
	Date  time.Time

	Longs  int
	Shorts int

	GrossExposure float64

	GrossReturn float64
	Commission  float64
	NetReturn   float64

	CumGrossReturn float64
	CumNetReturn   float64
}

// Result carries the ledger plus every intermediate panel of the pipeline,
// so callers can inspect per-instrument detail.
type Result struct {
	Strategy string

	Ledger []LedgerRow

	Signals      *panel.Panel
	Weights      *panel.Panel
	Positions    *panel.Panel
	GrossReturns *panel.Panel
	Commissions  *panel.Panel

	TotalGrossReturn float64
	TotalNetReturn   float64
}
