package model

import (
	"fmt"
	"sort"
	"time"

	"momentum-backtest/internal/panel"
)

// Date is a calendar date as it appears in price CSVs ("2006-01-02").
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalCSV implements gocsv decoding.
func (d *Date) UnmarshalCSV(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalCSV implements gocsv encoding.
func (d Date) MarshalCSV() (string, error) {
	return d.Time.Format(dateLayout), nil
}

// Bar is one daily price record as loaded from CSV.
//
// Example row:
//
//	date,symbol,open,close
//	2024-01-02,AAPL,187.15,185.64
type Bar struct {
	Date   Date    `csv:"date"`
	Symbol string  `csv:"symbol"`
	Open   float64 `csv:"open"`
	Close  float64 `csv:"close"`
}

// PricePanel holds the per-field panels a strategy consumes. Closes and
// Opens always share the same time axis and instrument universe.
type PricePanel struct {
	Closes *panel.Panel
	Opens  *panel.Panel
}

// NewPricePanel validates that the field panels share axes.
func NewPricePanel(closes, opens *panel.Panel) (*PricePanel, error) {
	if closes == nil || opens == nil {
		return nil, fmt.Errorf("price panel requires both Close and Open fields")
	}
	if !closes.SameShape(opens) {
		return nil, fmt.Errorf("Close and Open panels have mismatched axes")
	}
	return &PricePanel{Closes: closes, Opens: opens}, nil
}

// BuildPricePanel assembles a price panel from bars. The time axis is the
// sorted union of bar dates and the universe is the sorted set of symbols;
// instruments missing on a date hold NaN there.
func BuildPricePanel(bars []Bar) (*PricePanel, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars")
	}

	dateSet := map[time.Time]bool{}
	symSet := map[string]bool{}
	for _, b := range bars {
		if b.Symbol == "" {
			return nil, fmt.Errorf("bar with empty symbol on %s", b.Date.Format(dateLayout))
		}
		dateSet[b.Date.Time] = true
		symSet[b.Symbol] = true
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	syms := make([]string, 0, len(symSet))
	for s := range symSet {
		syms = append(syms, s)
	}
	sort.Strings(syms)

	closes, err := panel.New(dates, syms)
	if err != nil {
		return nil, err
	}
	opens, err := panel.New(dates, syms)
	if err != nil {
		return nil, err
	}

	rowOf := make(map[time.Time]int, len(dates))
	for t, d := range dates {
		rowOf[d] = t
	}
	for _, b := range bars {
		t := rowOf[b.Date.Time]
		i := closes.Col(b.Symbol)
		closes.Set(t, i, b.Close)
		opens.Set(t, i, b.Open)
	}

	return &PricePanel{Closes: closes, Opens: opens}, nil
}

// Select restricts the panel to the given instruments, preserving order.
func (p *PricePanel) Select(instruments []string) *PricePanel {
	return &PricePanel{
		Closes: p.Closes.Select(instruments),
		Opens:  p.Opens.Select(instruments),
	}
}

// Instruments returns the shared instrument universe.
func (p *PricePanel) Instruments() []string { return p.Closes.Instruments() }

// Dates returns the shared time axis.
func (p *PricePanel) Dates() []time.Time { return p.Closes.Dates() }
