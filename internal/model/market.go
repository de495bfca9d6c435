package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Date   Date    `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// PriceSeries holds the daily bars of one symbol, strictly increasing by
// date. It is never mutated after fetch, only sliced.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (s PriceSeries) Len() int      { return len(s.Bars) }
func (s PriceSeries) IsEmpty() bool { return len(s.Bars) == 0 }

// First returns the oldest bar. ok is false for an empty series.
func (s PriceSeries) First() (bar OHLCV, ok bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[0], true
}

// Last returns the most recent bar. ok is false for an empty series.
func (s PriceSeries) Last() (bar OHLCV, ok bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the closing prices in date order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Company is the static metadata of a listed company. Every field is optional.
type Company struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name,omitempty"`
	Sector    string   `json:"sector,omitempty"`
	Industry  string   `json:"industry,omitempty"`
	MarketCap *float64 `json:"market_cap,omitempty"`
	Website   string   `json:"website,omitempty"`
}
