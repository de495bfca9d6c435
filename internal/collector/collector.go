package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"StockTracker/internal/cache"
	"StockTracker/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu        sync.Mutex
	Price     float64
	Bars      map[string][]model.OHLCV
	Errors    map[string]error
	Companies map[string]*model.Company
	Today     model.Date
	calls     map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	if m.Price == 0 {
		return nil, nil
	}
	today := m.Today
	if today.IsZero() {
		today = model.DateOf(time.Now())
	}
	return generateMockBars(m.Price, today, days), nil
}

func (m *MockFetcher) FetchCompany(_ context.Context, symbol string) (*model.Company, error) {
	if c, ok := m.Companies[symbol]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("mock: no company for %s", symbol)
}

// Calls returns how many times symbol was fetched.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

func generateMockBars(basePrice float64, today model.Date, days int) []model.OHLCV {
	bars := make([]model.OHLCV, 0, days)
	for i := days; i >= 0; i-- {
		d := today.AddDays(-i)
		if wd := d.Time().Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(days/2-i)*0.001)
		bars = append(bars, model.OHLCV{
			Date:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	return bars
}

// Collector wraps a Fetcher with normalization, caching and a typed result.
type Collector struct {
	Fetcher     Fetcher
	Cache       *cache.Cache
	Logger      *zap.Logger
	Concurrency int
	Now         func() time.Time
}

// NewCollector creates a new Collector. c may be nil to disable caching.
func NewCollector(fetcher Fetcher, c *cache.Cache, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Fetcher:     fetcher,
		Cache:       c,
		Logger:      logger,
		Concurrency: 4,
		Now:         time.Now,
	}
}

// Fetch loads the daily series of symbol over the last lookbackDays days.
// It never returns an error value: failures come back as Result.Err.
func (c *Collector) Fetch(ctx context.Context, symbol string, lookbackDays int) Result {
	log := c.Logger.With(zap.String("symbol", symbol), zap.String("provider", c.Fetcher.Name()))
	load := func(ctx context.Context) (model.PriceSeries, error) {
		return c.load(ctx, symbol, lookbackDays)
	}

	var (
		series model.PriceSeries
		hit    bool
		err    error
	)
	if c.Cache != nil {
		var e cache.Entry
		e, hit, err = c.Cache.GetOrFetch(ctx, cache.Key{Symbol: symbol, LookbackDays: lookbackDays}, load)
		series = e.Series
	} else {
		series, err = load(ctx)
	}

	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			fe = &FetchError{Symbol: symbol, Reason: ReasonProvider, Err: err}
		}
		log.Warn("fetch failed", zap.String("reason", fe.Reason), zap.Error(fe.Err))
		return Result{Symbol: symbol, Err: fe}
	}
	log.Debug("fetched series", zap.Int("bars", series.Len()), zap.Bool("cached", hit))
	return Result{Symbol: symbol, Series: series, Cached: hit}
}

func (c *Collector) load(ctx context.Context, symbol string, lookbackDays int) (model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, lookbackDays)
	if err != nil {
		return model.PriceSeries{}, &FetchError{Symbol: symbol, Reason: ReasonProvider, Err: err}
	}
	bars, err = normalize(bars)
	if err != nil {
		return model.PriceSeries{}, &FetchError{Symbol: symbol, Reason: ReasonCorrupt, Err: err}
	}
	if len(bars) == 0 {
		return model.PriceSeries{}, &FetchError{Symbol: symbol, Reason: ReasonNoData}
	}
	return model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: c.Now()}, nil
}

// FetchAll fetches every symbol with at most Concurrency requests in
// flight and returns the results in input order.
func (c *Collector) FetchAll(ctx context.Context, symbols []string, lookbackDays int) []Result {
	results := make([]Result, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i, sym := range symbols {
		g.Go(func() error {
			results[i] = c.Fetch(gctx, sym, lookbackDays)
			return nil
		})
	}
	g.Wait()
	return results
}

// Company returns provider metadata for symbol, falling back to a Company
// carrying only the symbol when the provider has none.
func (c *Collector) Company(ctx context.Context, symbol string) model.Company {
	info, err := c.Fetcher.FetchCompany(ctx, symbol)
	if err != nil || info == nil {
		c.Logger.Warn("company lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return model.Company{Symbol: symbol}
	}
	out := *info
	out.Symbol = strings.ToUpper(symbol)
	return out
}
