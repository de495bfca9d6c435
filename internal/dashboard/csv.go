package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"StockTracker/internal/model"
)

// WriteCSV writes the report's rows as CSV. Absent metrics are empty
// cells; a History column of closes is added when rows carry history.
func WriteCSV(w io.Writer, r *model.Report) error {
	withHistory := false
	for _, row := range r.Rows {
		if row.History != nil {
			withHistory = true
			break
		}
	}

	header := []string{"Symbol", "Company", "Price", "1D Change %"}
	for _, win := range r.Windows {
		header = append(header, win.Name+" Growth %")
	}
	if withHistory {
		header = append(header, "History")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range r.Rows {
		rec := []string{row.Symbol, row.Company, csvMetric(row.Price), csvMetric(row.DailyChange)}
		for _, win := range r.Windows {
			g, _ := row.GrowthFor(win.Name)
			rec = append(rec, csvMetric(g))
		}
		if withHistory {
			rec = append(rec, csvHistory(row.History))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Symbol, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvMetric(m model.Metric) string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

func csvHistory(s *model.PriceSeries) string {
	if s == nil {
		return ""
	}
	closes := make([]string, s.Len())
	for i, b := range s.Bars {
		closes[i] = strconv.FormatFloat(b.Close, 'f', 2, 64)
	}
	return strings.Join(closes, " ")
}
