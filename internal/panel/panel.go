package panel

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Panel is a two-dimensional series: instruments (columns) by ordered
// timestamps (rows), holding float64 values. Missing/unknown values are NaN
// and propagate through every operation; they never collapse to zero.
//
// All operations return fresh panels and never mutate their receiver, so a
// Panel can be shared freely once built.
type Panel struct {
	dates       []time.Time
	instruments []string
	cols        map[string]int
	values      [][]float64 // [dateIdx][instrumentIdx]
}

// New creates a NaN-filled panel over the given axes.
// Dates must be strictly ascending; instruments must be unique.
func New(dates []time.Time, instruments []string) (*Panel, error) {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("dates not strictly ascending at index %d (%s)", i, dates[i].Format("2006-01-02"))
		}
	}
	cols := make(map[string]int, len(instruments))
	for i, inst := range instruments {
		if _, dup := cols[inst]; dup {
			return nil, fmt.Errorf("duplicate instrument %q", inst)
		}
		cols[inst] = i
	}
	p := &Panel{
		dates:       append([]time.Time(nil), dates...),
		instruments: append([]string(nil), instruments...),
		cols:        cols,
		values:      make([][]float64, len(dates)),
	}
	for t := range p.values {
		row := make([]float64, len(instruments))
		for i := range row {
			row[i] = math.NaN()
		}
		p.values[t] = row
	}
	return p, nil
}

// MustNew is New for axes known to be valid (tests, literals).
func MustNew(dates []time.Time, instruments []string) *Panel {
	p, err := New(dates, instruments)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Panel) NumDates() int       { return len(p.dates) }
func (p *Panel) NumInstruments() int { return len(p.instruments) }

// Dates returns the time axis. Callers must not modify the slice.
func (p *Panel) Dates() []time.Time { return p.dates }

// Instruments returns the column labels. Callers must not modify the slice.
func (p *Panel) Instruments() []string { return p.instruments }

// Col returns the column index for an instrument, or -1 if absent.
func (p *Panel) Col(instrument string) int {
	if i, ok := p.cols[instrument]; ok {
		return i
	}
	return -1
}

// At returns the value at row t, column i.
func (p *Panel) At(t, i int) float64 { return p.values[t][i] }

// Set assigns the value at row t, column i.
func (p *Panel) Set(t, i int, v float64) { p.values[t][i] = v }

// Value looks up a cell by date and instrument label. Returns NaN when
// either label is absent.
func (p *Panel) Value(date time.Time, instrument string) float64 {
	i := p.Col(instrument)
	if i < 0 {
		return math.NaN()
	}
	t := sort.Search(len(p.dates), func(k int) bool { return !p.dates[k].Before(date) })
	if t >= len(p.dates) || !p.dates[t].Equal(date) {
		return math.NaN()
	}
	return p.values[t][i]
}

// Column copies one instrument's series. The second return is false when the
// instrument is not in the panel.
func (p *Panel) Column(instrument string) ([]float64, bool) {
	i := p.Col(instrument)
	if i < 0 {
		return nil, false
	}
	out := make([]float64, len(p.dates))
	for t := range p.dates {
		out[t] = p.values[t][i]
	}
	return out, true
}

// Clone returns a deep copy sharing no state with the receiver.
func (p *Panel) Clone() *Panel {
	out := p.emptyLike()
	for t := range p.values {
		copy(out.values[t], p.values[t])
	}
	return out
}

// SameShape reports whether two panels share identical axes.
func (p *Panel) SameShape(o *Panel) bool {
	if o == nil || len(p.dates) != len(o.dates) || len(p.instruments) != len(o.instruments) {
		return false
	}
	for t := range p.dates {
		if !p.dates[t].Equal(o.dates[t]) {
			return false
		}
	}
	for i := range p.instruments {
		if p.instruments[i] != o.instruments[i] {
			return false
		}
	}
	return true
}

// Select returns a panel restricted to the given instruments, in the
// requested order. Unknown and repeated instruments are ignored.
func (p *Panel) Select(instruments []string) *Panel {
	seen := make(map[string]bool, len(instruments))
	var kept []string
	for _, inst := range instruments {
		if _, ok := p.cols[inst]; ok && !seen[inst] {
			seen[inst] = true
			kept = append(kept, inst)
		}
	}
	out := MustNew(p.dates, kept)
	for t := range p.values {
		for i, inst := range kept {
			out.values[t][i] = p.values[t][p.cols[inst]]
		}
	}
	return out
}

// emptyLike builds a NaN panel over the receiver's axes.
func (p *Panel) emptyLike() *Panel {
	return MustNew(p.dates, p.instruments)
}
