package calculator

import (
	"testing"

	"StockTracker/internal/model"
)

func TestWindowSince(t *testing.T) {
	s := seriesOf(1, 2, 3, 4, 5)

	full := WindowSince(s, day0.AddDays(-10))
	if full.Len() != 5 {
		t.Errorf("cutoff before the series: expected 5 bars, got %d", full.Len())
	}
	if got := WindowSince(s, day0); got.Len() != 5 {
		t.Errorf("cutoff on the first date: expected 5 bars, got %d", got.Len())
	}

	tail := WindowSince(s, day0.AddDays(3))
	if tail.Len() != 2 || tail.Bars[0].Close != 4 || tail.Bars[1].Close != 5 {
		t.Errorf("unexpected tail %v", tail.Bars)
	}
	if tail.Symbol != "TEST" {
		t.Errorf("expected symbol to be kept, got %q", tail.Symbol)
	}

	if got := WindowSince(s, day0.AddDays(5)); !got.IsEmpty() {
		t.Errorf("cutoff after the last date: expected empty, got %v", got.Bars)
	}
	if got := WindowSince(seriesOf(), day0); !got.IsEmpty() {
		t.Error("empty input should yield empty output")
	}
}

func TestWindowSince_GapsInDates(t *testing.T) {
	dates := []model.Date{day0, day0.AddDays(3), day0.AddDays(4), day0.AddDays(7)}
	s := seriesAt(dates, []float64{10, 11, 12, 13})

	got := WindowSince(s, day0.AddDays(5))
	if got.Len() != 1 || got.Bars[0].Close != 13 {
		t.Errorf("expected only the last bar, got %v", got.Bars)
	}
	got = WindowSince(s, day0.AddDays(1))
	if got.Len() != 3 || got.Bars[0].Date != day0.AddDays(3) {
		t.Errorf("expected suffix starting at day 3, got %v", got.Bars)
	}
}

func TestWindowSince_AppendDoesNotTouchSource(t *testing.T) {
	s := seriesOf(1, 2, 3)
	w := WindowSince(s, day0.AddDays(1))
	w.Bars = append(w.Bars, model.OHLCV{Close: 99})
	if s.Len() != 3 || s.Bars[2].Close != 3 {
		t.Errorf("source series modified: %v", s.Bars)
	}
}
