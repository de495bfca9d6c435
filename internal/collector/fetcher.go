package collector

import (
	"context"

	"StockTracker/internal/model"
)

// Fetcher defines the interface for fetching market data from a provider.
type Fetcher interface {
	// FetchDailyBars returns daily bars covering at least the last days
	// calendar days. Order and duplicates are normalized by the Collector.
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	// FetchCompany returns the static metadata of symbol.
	FetchCompany(ctx context.Context, symbol string) (*model.Company, error)
	Name() string
}
