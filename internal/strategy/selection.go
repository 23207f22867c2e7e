package strategy

import "fmt"

// SelectionMode identifies how long/short candidates are picked from the
// cross-sectional momentum ranking.
type SelectionMode string

const (
	// SelectPercentile takes the top/bottom pct percent of the ranking.
	SelectPercentile SelectionMode = "percentile"
	// SelectCount takes the top/bottom n instruments of the ranking.
	SelectCount SelectionMode = "count"
)

// SelectionPolicy is a tagged variant: exactly one of percentile or count
// mode. Construct with Percentile or Count; the zero value is invalid and
// rejected by Validate, so a strategy can never run with an ambiguous or
// missing ranking configuration.
type SelectionPolicy struct {
	mode SelectionMode
	pct  float64
	n    int
}

// Percentile selects the top and bottom pct percent (0 < pct <= 100).
func Percentile(pct float64) SelectionPolicy {
	return SelectionPolicy{mode: SelectPercentile, pct: pct}
}

// Count selects the top and bottom n instruments (n > 0).
func Count(n int) SelectionPolicy {
	return SelectionPolicy{mode: SelectCount, n: n}
}

func (s SelectionPolicy) Mode() SelectionMode { return s.mode }

// Pct returns the percentile threshold; only meaningful in percentile mode.
func (s SelectionPolicy) Pct() float64 { return s.pct }

// N returns the count threshold; only meaningful in count mode.
func (s SelectionPolicy) N() int { return s.n }

func (s SelectionPolicy) Validate() error {
	switch s.mode {
	case SelectPercentile:
		if s.pct <= 0 || s.pct > 100 {
			return fmt.Errorf("selection percentile must be in (0, 100], got %v", s.pct)
		}
	case SelectCount:
		if s.n <= 0 {
			return fmt.Errorf("selection count must be positive, got %d", s.n)
		}
	case "":
		return fmt.Errorf("selection policy not configured: set exactly one of percentile or count mode")
	default:
		return fmt.Errorf("unknown selection mode %q", s.mode)
	}
	return nil
}

func (s SelectionPolicy) String() string {
	switch s.mode {
	case SelectPercentile:
		return fmt.Sprintf("top/bottom %v%%", s.pct)
	case SelectCount:
		return fmt.Sprintf("top/bottom %d", s.n)
	}
	return "unconfigured"
}
