package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"longs",
		"shorts",
		"gross_exposure",
		"gross_return",
		"commission",
		"net_return",
		"cum_gross_return",
		"cum_net_return",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtDate(r.Date),
			strconv.Itoa(r.Longs),
			strconv.Itoa(r.Shorts),
			fmtFloat(r.GrossExposure),
			fmtFloat(r.GrossReturn),
			fmtFloat(r.Commission),
			fmtFloat(r.NetReturn),
			fmtFloat(r.CumGrossReturn),
			fmtFloat(r.CumNetReturn),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
