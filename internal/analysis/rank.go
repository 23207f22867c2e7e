package analysis

import (
	"math"
	"sort"
)

// RankByMomentum sorts snapshots descending by momentum score. Instruments
// without a score (insufficient history, filtered out) sort last.
func RankByMomentum(snaps []Snapshot) []Snapshot {
	out := append([]Snapshot(nil), snaps...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].MomentumScore, out[j].MomentumScore
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		}
		return a > b
	})
	return out
}
