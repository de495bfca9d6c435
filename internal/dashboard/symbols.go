package dashboard

import (
	"fmt"
	"strings"

	"StockTracker/internal/model"
)

// User-facing messages.
const (
	PromptMessage = "⌨️ Enter a valid command to start using the stock tracker module."
	NoDataMessage = "No stock data available for the requested symbols."
)

// MatchCommand reports whether input is the trigger command, ignoring
// surrounding whitespace and case.
func MatchCommand(input, trigger string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(trigger))
}

// ParseSymbols turns a comma-separated list into upper-case tickers.
// Blank entries and repeats are dropped; an empty result falls back to
// defaults.
func ParseSymbols(input string, defaults []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(input, ",") {
		sym := strings.ToUpper(strings.TrimSpace(part))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	if len(out) == 0 {
		return append([]string(nil), defaults...)
	}
	return out
}

// FailureMessage is shown for a symbol skipped because its fetch failed.
func FailureMessage(symbol, reason string) string {
	return fmt.Sprintf("❌ Cannot load data for %s: %s", symbol, reason)
}

// AlertMessage describes a drop below the alert threshold.
func AlertMessage(company, symbol string, growth float64, w model.Window) string {
	return fmt.Sprintf("⚠️ Alert: %s (%s) has dropped %.2f%% in the past %s.", company, symbol, growth, w.Span())
}

// NoAlertsMessage is shown when a report has rows but raised no alert.
func NoAlertsMessage(w model.Window) string {
	return fmt.Sprintf("✅ No critical price drops detected in the last %s.", w.Span())
}
