package model

// Side is a human-friendly direction for a signal value.
// Keep these values stable; they are intended for CSV output.
type Side string

const (
	SideLong  Side = "LONG"
	SideFlat  Side = "FLAT"
	SideShort Side = "SHORT"
)

func SideFromSignal(v float64) Side {
	switch {
	case v > 0:
		return SideLong
	case v < 0:
		return SideShort
	default:
		return SideFlat
	}
}
