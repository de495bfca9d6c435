package render

import (
	"fmt"
	"math"
	"strings"

	"StockTracker/internal/model"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const na = "N/A"

var printer = message.NewPrinter(language.English)

// Price formats a USD price, e.g. "$1,234.56".
func Price(m model.Metric) string {
	if !m.Valid {
		return na
	}
	cents := decimal.NewFromFloat(m.Value).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Percent formats a signed percentage, e.g. "+1.25%".
func Percent(m model.Metric) string {
	if !m.Valid {
		return na
	}
	return fmt.Sprintf("%+.2f%%", m.Value)
}

// Number formats v as an integer with thousands separators.
func Number(m model.Metric) string {
	if !m.Valid {
		return na
	}
	return printer.Sprintf("%d", int64(math.Round(m.Value)))
}

// LargeNumber abbreviates v with a T/B/M suffix.
func LargeNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return printer.Sprintf("%d", int64(math.Round(v)))
	}
}

// Arrow marks the direction of a change.
func Arrow(m model.Metric) string {
	switch {
	case !m.Valid:
		return ""
	case m.Value > 1.5:
		return "▲▲"
	case m.Value > 0:
		return "▲"
	case m.Value == 0:
		return "━"
	case m.Value > -1.5:
		return "▼"
	default:
		return "▼▼"
	}
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a row of block characters scaled between
// their minimum and maximum.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := len(sparkLevels) / 2
		if hi > lo {
			i = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkLevels)-1)))
		}
		b.WriteRune(sparkLevels[i])
	}
	return b.String()
}

// ChartWidth is the number of cells in a full-series chart.
const ChartWidth = 60

// Chart draws a sparkline at most width cells wide. Longer inputs are
// averaged into width equal buckets.
func Chart(values []float64, width int) string {
	if width <= 0 || len(values) <= width {
		return Sparkline(values)
	}
	buckets := make([]float64, width)
	for i := range buckets {
		from := i * len(values) / width
		to := (i + 1) * len(values) / width
		sum := 0.0
		for _, v := range values[from:to] {
			sum += v
		}
		buckets[i] = sum / float64(to-from)
	}
	return Sparkline(buckets)
}

// orNA returns s, or "N/A" when it is empty.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return na
	}
	return s
}
