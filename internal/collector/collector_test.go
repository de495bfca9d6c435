package collector

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"StockTracker/internal/cache"
	"StockTracker/internal/model"

	"go.uber.org/zap/zaptest"
)

var today = model.NewDate(2024, time.June, 14)

func bar(d model.Date, c float64) model.OHLCV {
	return model.OHLCV{Date: d, Open: c, High: c, Low: c, Close: c, Volume: 10}
}

func newTestCollector(t *testing.T, f Fetcher) *Collector {
	c := NewCollector(f, cache.New(time.Hour, nil), zaptest.NewLogger(t))
	c.Now = func() time.Time { return today.Time() }
	return c
}

func TestNormalize_SortsAndCollapsesDuplicates(t *testing.T) {
	in := []model.OHLCV{
		bar(today, 3),
		bar(today.AddDays(-2), 1),
		bar(today.AddDays(-1), 2),
		bar(today, 4),
	}
	out, err := normalize(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Date.Before(out[i].Date) {
			t.Errorf("bars not strictly increasing at %d: %v", i, out)
		}
	}
	if out[2].Close != 4 {
		t.Errorf("expected the last duplicate to win, got %v", out[2].Close)
	}
	if in[0].Close != 3 {
		t.Error("input slice must not be modified")
	}
}

func TestNormalize_RejectsCorruptBars(t *testing.T) {
	for _, c := range []float64{math.NaN(), math.Inf(1), -1} {
		if _, err := normalize([]model.OHLCV{bar(today, 1), bar(today.AddDays(1), c)}); !errors.Is(err, errCorrupt) {
			t.Errorf("close %v: expected errCorrupt, got %v", c, err)
		}
	}
	if out, err := normalize([]model.OHLCV{bar(today, 0)}); err != nil || len(out) != 1 {
		t.Errorf("a zero close is valid data, got %v %v", out, err)
	}
}

func TestCollector_FetchSuccess(t *testing.T) {
	f := &MockFetcher{Bars: map[string][]model.OHLCV{
		"MSFT": {bar(today, 2), bar(today.AddDays(-1), 1)},
	}}
	c := newTestCollector(t, f)

	res := c.Fetch(context.Background(), "MSFT", 30)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Series.Symbol != "MSFT" || res.Series.Len() != 2 || res.Series.Bars[0].Close != 1 {
		t.Errorf("unexpected series %+v", res.Series)
	}
	if !res.Series.FetchedAt.Equal(today.Time()) {
		t.Errorf("expected FetchedAt from the injected clock, got %v", res.Series.FetchedAt)
	}
}

func TestCollector_FetchFailureKinds(t *testing.T) {
	f := &MockFetcher{
		Bars: map[string][]model.OHLCV{
			"EMPTY": {},
			"NAN":   {bar(today, math.NaN())},
		},
		Errors: map[string]error{"DOWN": errors.New("connection refused")},
	}
	c := newTestCollector(t, f)

	tests := []struct {
		symbol string
		reason string
	}{
		{"EMPTY", ReasonNoData},
		{"NAN", ReasonCorrupt},
		{"DOWN", ReasonProvider},
		{"UNKNOWN", ReasonNoData},
	}
	for _, tt := range tests {
		res := c.Fetch(context.Background(), tt.symbol, 30)
		if res.OK() || res.Err == nil {
			t.Errorf("%s: expected failure", tt.symbol)
			continue
		}
		if res.Err.Reason != tt.reason || res.Err.Symbol != tt.symbol {
			t.Errorf("%s: expected reason %q, got %+v", tt.symbol, tt.reason, res.Err)
		}
		if !res.Series.IsEmpty() {
			t.Errorf("%s: failed fetch must carry no bars", tt.symbol)
		}
	}

	res := c.Fetch(context.Background(), "DOWN", 30)
	if res.Err.Message() != "connection refused" {
		t.Errorf("unexpected message %q", res.Err.Message())
	}
	var fe *FetchError
	if !errors.As(error(res.Err), &fe) {
		t.Error("FetchError should satisfy errors.As")
	}
}

func TestCollector_FetchUsesCache(t *testing.T) {
	f := &MockFetcher{Price: 100, Today: today}
	c := newTestCollector(t, f)

	first := c.Fetch(context.Background(), "AAPL", 60)
	second := c.Fetch(context.Background(), "AAPL", 60)
	if !first.OK() || !second.OK() {
		t.Fatal("expected successful fetches")
	}
	if first.Cached || !second.Cached {
		t.Errorf("expected miss then hit, got %v/%v", first.Cached, second.Cached)
	}
	if f.Calls("AAPL") != 1 {
		t.Errorf("expected one provider call, got %d", f.Calls("AAPL"))
	}
}

func TestCollector_FailuresAreNotCached(t *testing.T) {
	f := &MockFetcher{Errors: map[string]error{"DOWN": errors.New("timeout")}}
	c := newTestCollector(t, f)
	c.Fetch(context.Background(), "DOWN", 30)
	c.Fetch(context.Background(), "DOWN", 30)
	if f.Calls("DOWN") != 2 {
		t.Errorf("expected the failing symbol to be retried, calls=%d", f.Calls("DOWN"))
	}
}

func TestCollector_FetchAllKeepsOrder(t *testing.T) {
	f := &MockFetcher{
		Price:  50,
		Today:  today,
		Errors: map[string]error{"BAD": errors.New("nope")},
	}
	c := newTestCollector(t, f)
	c.Concurrency = 2

	symbols := []string{"A", "BAD", "C", "D", "E"}
	results := c.FetchAll(context.Background(), symbols, 10)
	if len(results) != len(symbols) {
		t.Fatalf("expected %d results, got %d", len(symbols), len(results))
	}
	for i, r := range results {
		if r.Symbol != symbols[i] {
			t.Errorf("result %d: expected %s, got %s", i, symbols[i], r.Symbol)
		}
		if (r.Symbol == "BAD") == r.OK() {
			t.Errorf("result %d (%s): unexpected ok=%v", i, r.Symbol, r.OK())
		}
	}
}

func TestCollector_CompanyFallback(t *testing.T) {
	f := &MockFetcher{Companies: map[string]*model.Company{
		"MSFT": {Name: "Microsoft Corporation", Sector: "Technology"},
	}}
	c := newTestCollector(t, f)

	got := c.Company(context.Background(), "MSFT")
	if got.Name != "Microsoft Corporation" || got.Symbol != "MSFT" {
		t.Errorf("unexpected company %+v", got)
	}
	missing := c.Company(context.Background(), "ZZZ")
	if missing.Symbol != "ZZZ" || missing.Name != "" {
		t.Errorf("expected symbol-only fallback, got %+v", missing)
	}
}

func TestGenerateMockBars_SkipsWeekends(t *testing.T) {
	bars := generateMockBars(100, today, 14)
	for _, b := range bars {
		if wd := b.Date.Time().Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("unexpected weekend bar on %s", b.Date)
		}
	}
	if last := bars[len(bars)-1]; last.Date != today {
		t.Errorf("expected last bar on %s, got %s", today, last.Date)
	}
}

func TestNewFetcher(t *testing.T) {
	if f, err := NewFetcher("", "", "", "", ""); err != nil || f.Name() != "yahoo" {
		t.Errorf("default provider: %v %v", f, err)
	}
	if _, err := NewFetcher("rest", "", "", "", ""); err == nil {
		t.Error("rest without base url should fail")
	}
	if _, err := NewFetcher("alpaca", "", "key", "", ""); err == nil {
		t.Error("alpaca without secret should fail")
	}
	if _, err := NewFetcher("bloomberg", "", "", "", ""); err == nil {
		t.Error("unknown provider should fail")
	}
}
