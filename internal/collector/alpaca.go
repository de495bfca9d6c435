package collector

import (
	"context"
	"fmt"
	"time"

	"StockTracker/internal/model"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

type alpacaBarsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

type alpacaAssetsClient interface {
	GetAsset(symbol string) (*alpaca.Asset, error)
}

// AlpacaFetcher implements Fetcher using the Alpaca market data API.
type AlpacaFetcher struct {
	Bars     alpacaBarsClient
	Assets   alpacaAssetsClient
	Location *time.Location
	Now      func() time.Time
}

// NewAlpacaFetcher creates a fetcher for the given API credentials.
// tradingURL may be empty to use Alpaca's default trading endpoint.
func NewAlpacaFetcher(apiKey, apiSecret, tradingURL string) *AlpacaFetcher {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &AlpacaFetcher{
		Bars: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		Assets: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   tradingURL,
		}),
		Location: loc,
		Now:      time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

func (f *AlpacaFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := f.Now()
	bars, err := f.Bars.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      end.AddDate(0, 0, -days),
		End:        end,
		Adjustment: marketdata.Split,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars: %w", err)
	}
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	out := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		out[i] = model.OHLCV{
			Date:   model.DateOf(b.Timestamp.In(loc)),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		}
	}
	return out, nil
}

func (f *AlpacaFetcher) FetchCompany(ctx context.Context, symbol string) (*model.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	asset, err := f.Assets.GetAsset(symbol)
	if err != nil {
		return nil, fmt.Errorf("alpaca asset: %w", err)
	}
	return &model.Company{Symbol: symbol, Name: asset.Name}, nil
}
