package render

import (
	"fmt"
	"strings"

	"StockTracker/internal/dashboard"
	"StockTracker/internal/model"
)

// Table renders the report's rows as a markdown table. A Trend column is
// added when rows carry history.
func Table(r *model.Report) string {
	trend := false
	for _, row := range r.Rows {
		if row.History != nil {
			trend = true
			break
		}
	}

	var b strings.Builder
	b.WriteString("| Symbol | Company | Price | 1D % |")
	align := "|---|---|---:|---:|"
	for _, w := range r.Windows {
		fmt.Fprintf(&b, " %s %% |", w.Name)
		align += "---:|"
	}
	if trend {
		b.WriteString(" Trend |")
		align += "---|"
	}
	b.WriteString("\n" + align + "\n")

	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |", row.Symbol, escape(row.Company), Price(row.Price), Percent(row.DailyChange))
		for _, w := range r.Windows {
			g, _ := row.GrowthFor(w.Name)
			fmt.Fprintf(&b, " %s |", Percent(g))
		}
		if trend {
			spark := ""
			if row.History != nil {
				spark = Sparkline(row.History.Closes())
			}
			fmt.Fprintf(&b, " %s |", spark)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders the full report: table, failures and alerts.
func Markdown(r *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 📊 Stock Tracker | %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	for _, f := range r.Failures {
		b.WriteString(f.Message + "\n\n")
	}
	if r.NoData() {
		b.WriteString(dashboard.NoDataMessage + "\n")
		return b.String()
	}

	b.WriteString(Table(r))
	b.WriteString("\n")

	if len(r.Alerts) == 0 {
		b.WriteString(dashboard.NoAlertsMessage(r.AlertWindow) + "\n")
		return b.String()
	}
	b.WriteString("## ⚠️ Alerts\n\n")
	for _, a := range r.Alerts {
		b.WriteString("- " + a.Message + "\n")
	}
	return b.String()
}

// DetailMarkdown renders the single-symbol view.
func DetailMarkdown(d *model.StockDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s · %s\n\n", d.Symbol, escape(orNA(d.Company.Name)))

	marketCap := na
	if d.Company.MarketCap != nil {
		marketCap = LargeNumber(*d.Company.MarketCap)
	}
	rng := na
	if d.PeriodHigh.Valid {
		rng = fmt.Sprintf("%s - %s", Price(d.PeriodLow), Price(d.PeriodHigh))
		if d.Position.Valid {
			rng += fmt.Sprintf(" (at %.0f%%)", d.Position.Value)
		}
	}

	b.WriteString("| | |\n|---|---|\n")
	rows := [][2]string{
		{"Price", Price(d.Price)},
		{"Previous close", Price(d.PreviousClose)},
		{"1D change", strings.TrimSpace(Percent(d.DailyChange) + " " + Arrow(d.DailyChange))},
		{"Volume", Number(d.Volume)},
		{d.Window.Span() + " range", rng},
		{"Sector", escape(orNA(d.Company.Sector))},
		{"Industry", escape(orNA(d.Company.Industry))},
		{"Market cap", marketCap},
		{"Website", orNA(d.Company.Website)},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
	}

	if first, ok := d.Series.First(); ok {
		fmt.Fprintf(&b, "\n## Since %s\n\n%s\n", first.Date, Chart(d.Series.Closes(), ChartWidth))
	}

	if len(d.History) == 0 {
		return b.String()
	}
	closes := make([]float64, len(d.History))
	for i, bar := range d.History {
		closes[i] = bar.Close
	}
	fmt.Fprintf(&b, "\n## Last %s %s\n\n| Date | Close |\n|---|---:|\n", d.Window.Span(), Sparkline(closes))
	for _, bar := range d.History {
		fmt.Fprintf(&b, "| %s | %s |\n", bar.Date, Price(model.Present(bar.Close)))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
