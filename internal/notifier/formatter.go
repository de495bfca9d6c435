package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"StockTracker/internal/collector"
	"StockTracker/internal/dashboard"
	"StockTracker/internal/model"
	"StockTracker/internal/render"
)

const companyWidth = 12

// FormatReport formats a report as a Telegram HTML message.
func FormatReport(r *model.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Stock Tracker</b> | %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04")))

	for _, f := range r.Failures {
		b.WriteString(html.EscapeString(f.Message) + "\n")
	}
	if len(r.Failures) > 0 {
		b.WriteString("\n")
	}
	if r.NoData() {
		b.WriteString(dashboard.NoDataMessage)
		return b.String()
	}

	b.WriteString("<pre>")
	b.WriteString(fmt.Sprintf("%-6s %-*s %10s %8s", "SYM", companyWidth, "COMPANY", "PRICE", "1D"))
	for _, w := range r.Windows {
		b.WriteString(fmt.Sprintf(" %8s", w.Name))
	}
	b.WriteString("\n")
	for _, row := range r.Rows {
		line := fmt.Sprintf("%-6s %-*s %10s %8s",
			row.Symbol, companyWidth, truncate(row.Company, companyWidth),
			render.Price(row.Price), render.Percent(row.DailyChange))
		for _, w := range r.Windows {
			g, _ := row.GrowthFor(w.Name)
			line += fmt.Sprintf(" %8s", render.Percent(g))
		}
		if row.History != nil {
			line += " " + render.Sparkline(row.History.Closes())
		}
		b.WriteString(html.EscapeString(line) + "\n")
	}
	b.WriteString("</pre>\n")

	if len(r.Alerts) == 0 {
		b.WriteString(dashboard.NoAlertsMessage(r.AlertWindow))
		return b.String()
	}
	b.WriteString("<b>Alerts</b>\n")
	for _, a := range r.Alerts {
		b.WriteString(html.EscapeString(a.Message) + "\n")
	}
	return b.String()
}

// FormatDetail formats the single-symbol view.
func FormatDetail(d *model.StockDetail) string {
	var b strings.Builder
	name := d.Company.Name
	if name == "" {
		name = dashboard.UnknownCompany
	}
	b.WriteString(fmt.Sprintf("🔎 <b>%s</b> · %s\n\n", d.Symbol, html.EscapeString(name)))
	b.WriteString(fmt.Sprintf("Price: %s (%s %s)\n", render.Price(d.Price), render.Percent(d.DailyChange), render.Arrow(d.DailyChange)))
	b.WriteString(fmt.Sprintf("Previous close: %s\n", render.Price(d.PreviousClose)))
	b.WriteString(fmt.Sprintf("Volume: %s\n", render.Number(d.Volume)))
	if d.PeriodHigh.Valid {
		b.WriteString(fmt.Sprintf("%s range: %s - %s\n", d.Window.Span(), render.Price(d.PeriodLow), render.Price(d.PeriodHigh)))
	}
	if d.Company.Sector != "" {
		b.WriteString(fmt.Sprintf("Sector: %s\n", html.EscapeString(d.Company.Sector)))
	}
	if d.Company.Industry != "" {
		b.WriteString(fmt.Sprintf("Industry: %s\n", html.EscapeString(d.Company.Industry)))
	}
	if d.Company.MarketCap != nil {
		b.WriteString(fmt.Sprintf("Market cap: %s\n", render.LargeNumber(*d.Company.MarketCap)))
	}
	if d.Company.Website != "" {
		b.WriteString(fmt.Sprintf("Website: %s\n", html.EscapeString(d.Company.Website)))
	} else {
		b.WriteString("Website: N/A\n")
	}
	if first, ok := d.Series.First(); ok {
		b.WriteString(fmt.Sprintf("\nSince %s: %s", first.Date, render.Chart(d.Series.Closes(), render.ChartWidth)))
	}
	if len(d.History) > 0 {
		closes := make([]float64, len(d.History))
		for i, bar := range d.History {
			closes[i] = bar.Close
		}
		b.WriteString(fmt.Sprintf("\nLast %s: %s", d.Window.Span(), render.Sparkline(closes)))
	}
	return b.String()
}

// FormatError formats a failed detail lookup.
func FormatError(symbol string, err error) string {
	var fe *collector.FetchError
	if errors.As(err, &fe) {
		return html.EscapeString(dashboard.FailureMessage(fe.Symbol, fe.Message()))
	}
	return html.EscapeString(dashboard.FailureMessage(symbol, err.Error()))
}

// FormatHelp lists the commands the bot understands.
func FormatHelp(command string) string {
	var b strings.Builder
	b.WriteString("🤖 <b>Stock Tracker</b>\n\n")
	b.WriteString(fmt.Sprintf("<code>%s</code>\n", html.EscapeString(command)))
	b.WriteString("  report on the default symbols\n\n")
	b.WriteString(fmt.Sprintf("<code>%s\nMSFT, GOOGL</code>\n", html.EscapeString(command)))
	b.WriteString("  report on a comma-separated list\n\n")
	b.WriteString("<code>/detail AAPL</code>\n")
	b.WriteString("  price, range and company profile of one symbol\n")
	return b.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
