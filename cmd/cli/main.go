package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"momentum-backtest/internal/analysis"
	"momentum-backtest/internal/backtest"
	"momentum-backtest/internal/config"
	"momentum-backtest/internal/data"
	"momentum-backtest/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "signals":
		cmdSignals(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli rank --data prices.csv --limit 10")
	fmt.Println("  cli signals --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest writes a per-date ledger CSV with gross/net returns")
	fmt.Println("  - rank sorts instruments by volatility-adjusted momentum score")
	fmt.Println("  - signals prints the current LONG/FLAT/SHORT state per instrument")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Output CSV path (overrides output.ledger_file)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	prices := loadPrices(cfg)
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

	out := cfg.Output.LedgerFile
	if *outPath != "" {
		out = *outPath
	}
	if out == "" {
		out = "results/ledger.csv"
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		logrus.WithError(err).Fatal("creating output directory")
	}
	if err := backtest.WriteLedgerCSV(out, res.Ledger); err != nil {
		logrus.WithError(err).Fatal("writing ledger")
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), out)
	fmt.Printf("Total gross return=%.4f net return=%.4f\n", res.TotalGrossReturn, res.TotalNetReturn)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to prices CSV (date,symbol,open,close)")
	limit := fs.Int("limit", 10, "Number of instruments to show")
	_ = fs.Parse(args)

	if *dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	prices, err := data.LoadPricePanel(*dataPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading prices")
	}
	strat, err := config.Demo().BuildStrategy()
	if err != nil {
		logrus.WithError(err).Fatal("building strategy")
	}

	snaps, err := analysis.SnapshotLatest(prices, strat)
	if err != nil {
		logrus.WithError(err).Fatal("computing snapshot")
	}
	ranked := analysis.RankByMomentum(snaps)
	if *limit > 0 && *limit < len(ranked) {
		ranked = ranked[:*limit]
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Instrument", "Momentum", "Trailing Ret", "Weekly Ret", "Side"})
	for i, s := range ranked {
		table.Append([]string{
			strconv.Itoa(i + 1),
			s.Instrument,
			fmtScore(s.MomentumScore),
			fmtPct(s.TrailingReturn),
			fmtPct(s.WeeklyReturn),
			string(s.Side),
		})
	}
	table.Render()
}

func cmdSignals(args []string) {
	fs := flag.NewFlagSet("signals", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	prices := loadPrices(cfg)
	strat, err := cfg.BuildStrategy()
	if err != nil {
		logrus.WithError(err).Fatal("building strategy")
	}

	snaps, err := analysis.SnapshotLatest(prices, strat)
	if err != nil {
		logrus.WithError(err).Fatal("computing snapshot")
	}

	if len(snaps) > 0 {
		fmt.Printf("Signals as of %s\n", snaps[0].Date.Format("2006-01-02"))
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Instrument", "Side", "Momentum", "Weekly Ret"})
	for _, s := range snaps {
		table.Append([]string{
			s.Instrument,
			string(s.Side),
			fmtScore(s.MomentumScore),
			fmtPct(s.WeeklyReturn),
		})
	}
	table.Render()

	if cfg.Data.Benchmark != "" {
		if bench, err := analysis.Benchmark(prices, strat); err == nil {
			last := bench.Returns[len(bench.Returns)-1]
			fmt.Printf("Benchmark %s trailing return: %s\n", bench.Instrument, fmtPct(last))
		}
	}
}

func loadPrices(cfg *config.Config) *model.PricePanel {
	prices, err := data.LoadPricePanel(cfg.Data.PricesFile)
	if err != nil {
		logrus.WithError(err).Fatal("loading prices")
	}
	if cfg.Data.UniverseFile != "" {
		u, err := data.LoadUniverse(cfg.Data.UniverseFile)
		if err != nil {
			logrus.WithError(err).Fatal("loading universe")
		}
		prices = prices.Select(u.Symbols())
	}
	return prices
}

func fmtScore(v float64) string {
	if v != v {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func fmtPct(v float64) string {
	if v != v {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
