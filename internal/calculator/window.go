package calculator

import (
	"sort"

	"StockTracker/internal/model"
)

// WindowSince returns the maximal suffix of series dated on or after
// cutoff. The result shares the series' backing array.
func WindowSince(series model.PriceSeries, cutoff model.Date) model.PriceSeries {
	i := sort.Search(len(series.Bars), func(i int) bool {
		return !series.Bars[i].Date.Before(cutoff)
	})
	out := series
	out.Bars = series.Bars[i:len(series.Bars):len(series.Bars)]
	return out
}
