package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"StockTracker/internal/model"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Price(model.Present(1234.56)), "$1,234.56"},
		{Price(model.Present(94)), "$94.00"},
		{Price(model.Absent()), "N/A"},
		{Percent(model.Present(1.5)), "+1.50%"},
		{Percent(model.Present(-6)), "-6.00%"},
		{Percent(model.Absent()), "N/A"},
		{Number(model.Present(12345678)), "12,345,678"},
		{LargeNumber(2.1e12), "2.10T"},
		{LargeNumber(3.456e9), "3.46B"},
		{LargeNumber(12345), "12,345"},
		{Arrow(model.Present(-3)), "▼▼"},
		{Arrow(model.Absent()), ""},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{100, 101, 102}); got != "▁▅█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{5, 5}); got != "▅▅" {
		t.Errorf("flat series: got %q", got)
	}
	if Sparkline(nil) != "" {
		t.Error("empty input should draw nothing")
	}
}

var day = model.NewDate(2024, time.June, 14)

func testReport() *model.Report {
	m1 := model.Window{Name: "1M", Months: 1}
	hist := model.PriceSeries{Symbol: "MSFT", Bars: []model.OHLCV{
		{Date: day.AddDays(-1), Close: 95},
		{Date: day, Close: 94},
	}}
	return &model.Report{
		GeneratedAt: day.Time(),
		Symbols:     []string{"MSFT", "AMZN"},
		Windows:     []model.Window{m1},
		AlertWindow: m1,
		Rows: []model.StockRow{{
			Symbol:      "MSFT",
			Company:     "Micro|soft",
			Price:       model.Present(94),
			DailyChange: model.Present(-1.05),
			Growth:      []model.WindowGrowth{{Window: m1, Growth: model.Present(-6)}},
			History:     &hist,
		}},
		Alerts: []model.Alert{{Symbol: "MSFT", Message: "⚠️ Alert: Microsoft (MSFT) has dropped -6.00% in the past 1 month."}},
		Failures: []model.FetchFailure{{
			Symbol:  "AMZN",
			Reason:  "no data returned",
			Message: "❌ Cannot load data for AMZN: no data returned",
		}},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testReport())
	for _, want := range []string{
		"| Symbol | Company | Price | 1D % | 1M % | Trend |",
		`| MSFT | Micro\|soft | $94.00 | -1.05% | -6.00% | █▁ |`,
		"❌ Cannot load data for AMZN: no data returned",
		"- ⚠️ Alert: Microsoft (MSFT)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "No critical price drops") {
		t.Error("no-alert line must not appear when alerts exist")
	}
}

func TestMarkdown_NoAlertsAndNoData(t *testing.T) {
	r := testReport()
	r.Alerts = nil
	if md := Markdown(r); !strings.Contains(md, "✅ No critical price drops detected in the last 1 month.") {
		t.Errorf("expected the no-alert line:\n%s", md)
	}

	r.Rows = nil
	md := Markdown(r)
	if !strings.Contains(md, "No stock data available for the requested symbols.") || strings.Contains(md, "| Symbol |") {
		t.Errorf("expected the no-data message instead of a table:\n%s", md)
	}
}

func TestChart(t *testing.T) {
	if got := Chart([]float64{1, 2, 3}, 10); got != Sparkline([]float64{1, 2, 3}) {
		t.Errorf("short input should draw one cell per value, got %q", got)
	}
	values := make([]float64, 250)
	for i := range values {
		values[i] = float64(i)
	}
	got := []rune(Chart(values, ChartWidth))
	if len(got) != ChartWidth {
		t.Fatalf("expected %d cells, got %d", ChartWidth, len(got))
	}
	if got[0] != '▁' || got[len(got)-1] != '█' {
		t.Errorf("rising series should run low to high, got %q", string(got))
	}
	if Chart(nil, ChartWidth) != "" {
		t.Error("empty input should draw nothing")
	}
}

func TestDetailMarkdown(t *testing.T) {
	marketCap := 3.1e12
	d := &model.StockDetail{
		Symbol:        "MSFT",
		Company:       model.Company{Symbol: "MSFT", Name: "Microsoft Corporation", MarketCap: &marketCap},
		Price:         model.Present(94),
		PreviousClose: model.Present(95),
		Volume:        model.Present(1234567),
		DailyChange:   model.Present(-1.05),
		PeriodHigh:    model.Present(100),
		PeriodLow:     model.Present(94),
		Position:      model.Present(0),
		Window:        model.Window{Name: "1M", Months: 1},
		History:       []model.OHLCV{{Date: day, Close: 94}},
		Series: model.PriceSeries{Symbol: "MSFT", Bars: []model.OHLCV{
			{Date: day.AddDays(-2), Close: 90},
			{Date: day.AddDays(-1), Close: 100},
			{Date: day, Close: 94},
		}},
	}
	md := DetailMarkdown(d)
	for _, want := range []string{
		"# MSFT · Microsoft Corporation",
		"| Volume | 1,234,567 |",
		"| 1 month range | $94.00 - $100.00 (at 0%) |",
		"| Market cap | 3.10T |",
		"| Sector | N/A |",
		"| 2024-06-14 | $94.00 |",
		"| Website | N/A |",
		"## Since 2024-06-12\n\n▁█▄\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("detail missing %q:\n%s", want, md)
		}
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(testReport())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"symbols\"") {
		t.Errorf("expected indented output:\n%s", data)
	}
	var back map[string]any
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(Markdown(testReport()), 100)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "MSFT") {
		t.Errorf("rendered output lost the table content:\n%s", out)
	}
}
