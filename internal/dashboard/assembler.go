package dashboard

import (
	"context"
	"strings"
	"time"

	"StockTracker/internal/calculator"
	"StockTracker/internal/collector"
	"StockTracker/internal/model"

	"go.uber.org/zap"
)

// Assembler turns fetched series into reports. It keeps no state between
// calls besides what the collector caches.
type Assembler struct {
	Collector *collector.Collector
	Settings  Settings
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewAssembler creates an Assembler using the wall clock.
func NewAssembler(col *collector.Collector, settings Settings, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		Collector: col,
		Settings:  settings,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Today is the calendar date of the assembler's clock.
func (a *Assembler) Today() model.Date {
	return model.DateOf(a.Now())
}

// Build fetches symbols and computes one row per symbol that has data.
// An empty symbol list means the configured defaults.
func (a *Assembler) Build(ctx context.Context, symbols []string) *model.Report {
	if len(symbols) == 0 {
		symbols = a.Settings.DefaultSymbols
	}
	now := a.Now()
	today := model.DateOf(now)

	report := &model.Report{
		GeneratedAt: now,
		Symbols:     append([]string(nil), symbols...),
		Windows:     a.Settings.Windows,
		AlertWindow: a.Settings.AlertWindow,
		Rows:        []model.StockRow{},
		Alerts:      []model.Alert{},
		Failures:    []model.FetchFailure{},
	}

	for _, res := range a.Collector.FetchAll(ctx, symbols, a.Settings.LookbackDays) {
		if !res.OK() {
			reason := collector.ReasonNoData
			if res.Err != nil {
				reason = res.Err.Message()
			}
			report.Failures = append(report.Failures, model.FetchFailure{
				Symbol:  res.Symbol,
				Reason:  reason,
				Message: FailureMessage(res.Symbol, reason),
			})
			continue
		}

		row := a.row(res.Series, today)
		report.Rows = append(report.Rows, row)
		if alert, ok := a.alert(row, res.Series, today); ok {
			report.Alerts = append(report.Alerts, alert)
		}
	}

	a.Logger.Info("report built",
		zap.Int("symbols", len(symbols)),
		zap.Int("rows", len(report.Rows)),
		zap.Int("alerts", len(report.Alerts)),
		zap.Int("failures", len(report.Failures)))
	return report
}

func (a *Assembler) row(series model.PriceSeries, today model.Date) model.StockRow {
	last, _ := series.Last()
	row := model.StockRow{
		Symbol:      series.Symbol,
		Company:     a.Settings.CompanyName(series.Symbol),
		Price:       model.Present(calculator.Round2(last.Close)),
		DailyChange: calculator.DailyChange(series),
		Growth:      make([]model.WindowGrowth, len(a.Settings.Windows)),
	}
	for i, w := range a.Settings.Windows {
		row.Growth[i] = model.WindowGrowth{
			Window: w,
			Growth: calculator.GrowthSince(series, w.Cutoff(today)),
		}
	}
	if a.Settings.sparklineEnabled() {
		h := calculator.WindowSince(series, a.Settings.Sparkline.Cutoff(today))
		row.History = &h
	}
	return row
}

func (a *Assembler) alert(row model.StockRow, series model.PriceSeries, today model.Date) (model.Alert, bool) {
	w := a.Settings.AlertWindow
	growth, ok := row.GrowthFor(w.Name)
	if !ok {
		growth = calculator.GrowthSince(series, w.Cutoff(today))
	}
	if !growth.Valid || growth.Value >= a.Settings.AlertThreshold {
		return model.Alert{}, false
	}
	return model.Alert{
		Symbol:  row.Symbol,
		Company: row.Company,
		Window:  w,
		Growth:  growth.Value,
		Message: AlertMessage(row.Company, row.Symbol, growth.Value, w),
	}, true
}

// Detail builds the single-symbol view. The returned error is a
// *collector.FetchError when the symbol has no data.
func (a *Assembler) Detail(ctx context.Context, symbol string) (*model.StockDetail, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	res := a.Collector.Fetch(ctx, sym, a.Settings.LookbackDays)
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Series.IsEmpty() {
		return nil, &collector.FetchError{Symbol: sym, Reason: collector.ReasonNoData}
	}

	series := res.Series
	today := a.Today()
	last, _ := series.Last()

	company := a.Collector.Company(ctx, sym)
	if company.Name == "" {
		company.Name = a.Settings.CompanyName(sym)
	}

	d := &model.StockDetail{
		Symbol:      sym,
		Company:     company,
		Price:       model.Present(calculator.Round2(last.Close)),
		Volume:      model.Present(last.Volume),
		DailyChange: calculator.DailyChange(series),
		Window:      a.Settings.DetailWindow,
		Series:      series,
	}
	if n := series.Len(); n >= 2 {
		d.PreviousClose = model.Present(calculator.Round2(series.Bars[n-2].Close))
	}

	window := calculator.WindowSince(series, a.Settings.DetailWindow.Cutoff(today))
	d.History = window.Bars
	if high, low, err := calculator.PriceRange(window); err == nil {
		d.PeriodHigh = model.Present(calculator.Round2(high))
		d.PeriodLow = model.Present(calculator.Round2(low))
		if pos, err := calculator.RangePosition(last.Close, high, low); err == nil {
			d.Position = model.Present(calculator.Round2(pos * 100))
		}
	}
	return d, nil
}
