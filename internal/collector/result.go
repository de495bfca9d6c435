package collector

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"StockTracker/internal/model"
)

// Failure reasons reported in FetchError.
const (
	ReasonNoData   = "no data returned"
	ReasonCorrupt  = "corrupt data"
	ReasonProvider = "provider error"
)

// FetchError is the typed outcome of a failed fetch.
type FetchError struct {
	Symbol string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Symbol, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Symbol, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Message is the human-readable reason shown to users.
func (e *FetchError) Message() string {
	if e.Err != nil && e.Reason == ReasonProvider {
		return e.Err.Error()
	}
	return e.Reason
}

// Result is either a populated series or a FetchError.
type Result struct {
	Symbol string
	Series model.PriceSeries
	Err    *FetchError
	Cached bool
}

// OK reports whether the fetch produced a non-empty series.
func (r Result) OK() bool { return r.Err == nil && !r.Series.IsEmpty() }

// errCorrupt marks bars that failed validation.
var errCorrupt = errors.New("corrupt bar")

// normalize sorts bars by date and collapses duplicate dates, keeping the
// last bar seen for a date. Any bar with a non-finite or negative close
// fails the whole batch.
func normalize(bars []model.OHLCV) ([]model.OHLCV, error) {
	for _, b := range bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) || b.Close < 0 {
			return nil, fmt.Errorf("%w on %s: close=%v", errCorrupt, b.Date, b.Close)
		}
	}
	out := make([]model.OHLCV, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	n := 0
	for _, b := range out {
		if n > 0 && out[n-1].Date == b.Date {
			out[n-1] = b
			continue
		}
		out[n] = b
		n++
	}
	return out[:n], nil
}
