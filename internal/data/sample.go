package data

import (
	"math"
	"math/rand"
	"time"

	"momentum-backtest/internal/model"
)

// SampleBenchmark is the benchmark symbol included in generated sample data.
const SampleBenchmark = "SPY"

var sampleSymbols = []string{
	"AAPL", "AMZN", "GOOG", "JNJ", "JPM", "MSFT", "NVDA", "PG", "TSLA", "XOM",
	SampleBenchmark,
}

// SampleBars generates a deterministic synthetic daily price history:
// geometric random walks with per-symbol drift over business days ending at
// the given date. Prices start well above the default price floor so every
// symbol participates in ranking. The same inputs always produce the same
// bars.
func SampleBars(end time.Time, days int) []model.Bar {
	rng := rand.New(rand.NewSource(42))

	dates := businessDays(end, days)
	bars := make([]model.Bar, 0, len(dates)*len(sampleSymbols))

	for si, sym := range sampleSymbols {
		// Spread drifts from clearly negative to clearly positive so the
		// cross-sectional ranking has winners and losers.
		drift := -0.0008 + 0.0002*float64(si)
		vol := 0.012 + 0.002*float64(si%4)
		price := 150.0 + 20.0*float64(si)

		for _, d := range dates {
			open := price * (1 + 0.002*rng.NormFloat64())
			price *= math.Exp(drift + vol*rng.NormFloat64())
			bars = append(bars, model.Bar{
				Date:   model.Date{Time: d},
				Symbol: sym,
				Open:   round2(open),
				Close:  round2(price),
			})
		}
	}
	return bars
}

// SamplePanel is SampleBars assembled into a price panel.
func SamplePanel(end time.Time, days int) (*model.PricePanel, error) {
	return model.BuildPricePanel(SampleBars(end, days))
}

// businessDays returns the `n` weekdays ending at or before `end`, ascending.
func businessDays(end time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	d := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for len(out) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	// reverse into ascending order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
