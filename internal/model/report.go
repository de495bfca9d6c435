package model

import "time"

// WindowGrowth is the growth of one symbol over one lookback window.
type WindowGrowth struct {
	Window Window `json:"window"`
	Growth Metric `json:"growth"`
}

// StockRow is the per-symbol output record of a report.
type StockRow struct {
	Symbol      string         `json:"symbol"`
	Company     string         `json:"company"`
	Price       Metric         `json:"price"`
	DailyChange Metric         `json:"change_1d"`
	Growth      []WindowGrowth `json:"growth"`
	History     *PriceSeries   `json:"history,omitempty"`
}

// GrowthFor returns the growth for the named window.
func (r StockRow) GrowthFor(name string) (Metric, bool) {
	for _, g := range r.Growth {
		if g.Window.Name == name {
			return g.Growth, true
		}
	}
	return Absent(), false
}

// Alert is raised when a window's growth falls below the alert threshold.
type Alert struct {
	Symbol  string  `json:"symbol"`
	Company string  `json:"company"`
	Window  Window  `json:"window"`
	Growth  float64 `json:"growth"`
	Message string  `json:"message"`
}

// FetchFailure records a symbol skipped because its series could not be loaded.
type FetchFailure struct {
	Symbol  string `json:"symbol"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Report is the output of one assembler run.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Symbols     []string       `json:"symbols"`
	Windows     []Window       `json:"windows"`
	AlertWindow Window         `json:"alert_window"`
	Rows        []StockRow     `json:"rows"`
	Alerts      []Alert        `json:"alerts"`
	Failures    []FetchFailure `json:"failures"`
}

// NoData reports whether no symbol survived the fetch.
func (r *Report) NoData() bool { return len(r.Rows) == 0 }

// StockDetail is the single-symbol view.
type StockDetail struct {
	Symbol        string      `json:"symbol"`
	Company       Company     `json:"company"`
	Price         Metric      `json:"price"`
	PreviousClose Metric      `json:"previous_close"`
	Volume        Metric      `json:"volume"`
	DailyChange   Metric      `json:"change_1d"`
	PeriodHigh    Metric      `json:"period_high"`
	PeriodLow     Metric      `json:"period_low"`
	Position      Metric      `json:"range_position"`
	Window        Window      `json:"window"`
	History       []OHLCV     `json:"history"`
	Series        PriceSeries `json:"-"`
}
