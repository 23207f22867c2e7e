package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"momentum-backtest/internal/analysis"
	"momentum-backtest/internal/backtest"
	"momentum-backtest/internal/config"
	"momentum-backtest/internal/data"
	"momentum-backtest/internal/model"
)

// Demo:
// - Generate a deterministic synthetic daily price panel
// - Run the stock up-minus-down configuration with per-share commissions
// - Print the momentum ranking and the backtest summary
func main() {
	days := flag.Int("days", 400, "Number of business days of synthetic history")
	dataPath := flag.String("data", "", "Optional prices CSV instead of synthetic data")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	var prices *model.PricePanel
	var err error
	if *dataPath != "" {
		prices, err = data.LoadPricePanel(*dataPath)
	} else {
		prices, err = data.SamplePanel(time.Now(), *days)
	}
	if err != nil {
		logrus.WithError(err).Fatal("building price panel")
	}

	cfg := config.Demo()
	cfg.Data.Benchmark = data.SampleBenchmark

	strat, err := cfg.BuildStrategy()
	if err != nil {
		logrus.WithError(err).Fatal("building strategy")
	}
	commission, err := cfg.BuildCommission()
	if err != nil {
		logrus.WithError(err).Fatal("building commission model")
	}

	runner := backtest.New(strat)
	runner.Commission = commission
	res, err := runner.Run(prices)
	if err != nil {
		logrus.WithError(err).Fatal("running backtest")
	}

	snaps, err := analysis.SnapshotLatest(prices, strat)
	if err != nil {
		logrus.WithError(err).Fatal("computing snapshot")
	}
	ranked := analysis.RankByMomentum(snaps)

	fmt.Printf("up-minus-down demo: %d instruments, %d dates\n",
		prices.Closes.NumInstruments(), prices.Closes.NumDates())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Instrument", "Momentum", "Side"})
	for i, s := range ranked {
		table.Append([]string{
			strconv.Itoa(i + 1),
			s.Instrument,
			fmtScore(s.MomentumScore),
			string(s.Side),
		})
	}
	table.Render()

	last := res.Ledger[len(res.Ledger)-1]
	fmt.Printf("Final book: %d longs, %d shorts, gross exposure %.2f\n",
		last.Longs, last.Shorts, last.GrossExposure)
	fmt.Printf("Total gross return=%.4f net return=%.4f (commission drag=%.4f)\n",
		res.TotalGrossReturn, res.TotalNetReturn, res.TotalGrossReturn-res.TotalNetReturn)

	if bench, err := analysis.Benchmark(prices, strat); err == nil {
		r := bench.Returns[len(bench.Returns)-1]
		if r == r {
			fmt.Printf("Benchmark %s trailing return: %.2f%%\n", bench.Instrument, r*100)
		}
	}

	if *outCSV != "" {
		if err := backtest.WriteLedgerCSV(*outCSV, res.Ledger); err != nil {
			logrus.WithError(err).Fatal("writing ledger")
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outCSV)
	}
}

func fmtScore(v float64) string {
	if v != v {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
