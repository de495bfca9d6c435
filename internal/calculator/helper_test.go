package calculator

import (
	"time"

	"StockTracker/internal/model"
)

var day0 = model.NewDate(2024, time.January, 1)

// seriesOf builds a series with one bar per consecutive day starting at day0.
func seriesOf(closes ...float64) model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Date: day0.AddDays(i), Close: c}
	}
	return model.PriceSeries{Symbol: "TEST", Bars: bars}
}

// seriesAt builds a series from explicit dates and closes.
func seriesAt(dates []model.Date, closes []float64) model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	for i := range closes {
		bars[i] = model.OHLCV{Date: dates[i], Close: closes[i]}
	}
	return model.PriceSeries{Symbol: "TEST", Bars: bars}
}
