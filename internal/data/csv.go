package data

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"momentum-backtest/internal/model"
)

// LoadBars reads daily price bars from a CSV file with columns
// date,symbol,open,close.
func LoadBars(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prices file: %w", err)
	}
	defer f.Close()

	var bars []model.Bar
	if err := gocsv.UnmarshalFile(f, &bars); err != nil {
		return nil, fmt.Errorf("failed to parse prices file %s: %w", path, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars in %s", path)
	}
	return bars, nil
}

// LoadPricePanel loads bars from path and assembles the price panel.
func LoadPricePanel(path string) (*model.PricePanel, error) {
	bars, err := LoadBars(path)
	if err != nil {
		return nil, err
	}
	return model.BuildPricePanel(bars)
}

// WriteBars writes bars back out as CSV, for generated sample data.
func WriteBars(path string, bars []model.Bar) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create prices file: %w", err)
	}
	defer f.Close()
	return gocsv.MarshalFile(&bars, f)
}
