package calculator

import (
	"sort"

	"StockTracker/internal/model"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to two decimals, half away from zero, working on the
// shortest decimal representation of v so that 1.005 rounds to 1.01.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// PercentChange returns ((current - past) / past) * 100 rounded to two
// decimals, or an absent metric when past is zero.
func PercentChange(past, current float64) model.Metric {
	if past == 0 {
		return model.Absent()
	}
	return model.Present(Round2((current - past) / past * 100))
}

// DailyChange computes the percentage change between the last two closes.
func DailyChange(series model.PriceSeries) model.Metric {
	n := series.Len()
	if n < 2 {
		return model.Absent()
	}
	return PercentChange(series.Bars[n-2].Close, series.Bars[n-1].Close)
}

// AsOf returns the latest bar dated on or before ref.
func AsOf(series model.PriceSeries, ref model.Date) (model.OHLCV, bool) {
	// first index strictly after ref
	i := sort.Search(len(series.Bars), func(i int) bool {
		return series.Bars[i].Date.After(ref)
	})
	if i == 0 {
		return model.OHLCV{}, false
	}
	return series.Bars[i-1], true
}

// GrowthSince computes the percentage change from the as-of close at ref
// to the last close of the series. The current price is always the last
// bar; two interior points cannot be compared with this function.
func GrowthSince(series model.PriceSeries, ref model.Date) model.Metric {
	last, ok := series.Last()
	if !ok {
		return model.Absent()
	}
	past, ok := AsOf(series, ref)
	if !ok {
		return model.Absent()
	}
	return PercentChange(past.Close, last.Close)
}
