package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Instrument is one tradable entry in a universe file.
type Instrument struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Exchange string `json:"exchange,omitempty"`
}

// Universe is a named instrument universe a backtest can be restricted to.
type Universe struct {
	Name        string       `json:"name"`
	UpdatedAt   string       `json:"updated_at,omitempty"` // ISO 8601 timestamp
	Instruments []Instrument `json:"instruments"`
}

// Symbols returns the universe's symbols in file order.
func (u *Universe) Symbols() []string {
	out := make([]string, 0, len(u.Instruments))
	for _, inst := range u.Instruments {
		out = append(out, inst.Symbol)
	}
	return out
}

// LoadUniverse loads a universe from a JSON file.
func LoadUniverse(path string) (*Universe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}
	var u Universe
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("failed to parse universe file: %w", err)
	}
	if len(u.Instruments) == 0 {
		return nil, fmt.Errorf("universe %s has no instruments", path)
	}
	return &u, nil
}

// SaveUniverse saves a universe to a JSON file.
func SaveUniverse(u *Universe, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal universe: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write universe file: %w", err)
	}
	return nil
}

// DefaultUniversePath returns the default path for the universe file.
func DefaultUniversePath() string {
	if path := os.Getenv("UNIVERSE_FILE"); path != "" {
		return path
	}
	return "./data/universe.json"
}
