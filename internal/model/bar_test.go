package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return Date{Time: t}
}

func TestBuildPricePanelUnionAxes(t *testing.T) {
	bars := []Bar{
		{Date: d("2024-01-03"), Symbol: "MSFT", Open: 370, Close: 372},
		{Date: d("2024-01-02"), Symbol: "AAPL", Open: 187, Close: 185},
		{Date: d("2024-01-02"), Symbol: "MSFT", Open: 368, Close: 370},
		// AAPL has no bar on Jan 3
		{Date: d("2024-01-04"), Symbol: "AAPL", Open: 184, Close: 186},
		{Date: d("2024-01-04"), Symbol: "MSFT", Open: 372, Close: 371},
	}

	p, err := BuildPricePanel(bars)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, p.Instruments())
	dates := p.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, "2024-01-02", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-01-04", dates[2].Format("2006-01-02"))

	assert.Equal(t, 185.0, p.Closes.Value(dates[0], "AAPL"))
	assert.Equal(t, 372.0, p.Opens.Value(dates[2], "MSFT"))

	// the missing AAPL bar is NaN, not zero
	assert.True(t, math.IsNaN(p.Closes.Value(dates[1], "AAPL")))
}

func TestBuildPricePanelRejectsEmpty(t *testing.T) {
	_, err := BuildPricePanel(nil)
	assert.Error(t, err)

	_, err = BuildPricePanel([]Bar{{Date: d("2024-01-02"), Open: 1, Close: 1}})
	assert.Error(t, err, "empty symbol")
}

func TestPricePanelSelect(t *testing.T) {
	bars := []Bar{
		{Date: d("2024-01-02"), Symbol: "AAPL", Open: 187, Close: 185},
		{Date: d("2024-01-02"), Symbol: "MSFT", Open: 368, Close: 370},
		{Date: d("2024-01-02"), Symbol: "NVDA", Open: 48, Close: 49},
	}

	p, err := BuildPricePanel(bars)
	require.NoError(t, err)

	sub := p.Select([]string{"NVDA", "AAPL"})
	assert.Equal(t, []string{"NVDA", "AAPL"}, sub.Instruments())
	assert.Len(t, sub.Dates(), 1)
}

func TestDateCSVRoundTrip(t *testing.T) {
	var dt Date
	require.NoError(t, dt.UnmarshalCSV("2024-03-29"))
	s, err := dt.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-29", s)

	assert.Error(t, dt.UnmarshalCSV("29/03/2024"))
}

func TestSideFromSignal(t *testing.T) {
	assert.Equal(t, SideLong, SideFromSignal(1))
	assert.Equal(t, SideShort, SideFromSignal(-1))
	assert.Equal(t, SideFlat, SideFromSignal(0))
	assert.Equal(t, SideFlat, SideFromSignal(math.NaN()))
}
