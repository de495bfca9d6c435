package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockTracker/internal/model"
)

// RESTFetcher implements Fetcher against a JSON REST bars service.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of one bar. Date, when present, wins
// over Timestamp.
type restBar struct {
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type restProfile struct {
	Name      string   `json:"name"`
	Sector    string   `json:"sector"`
	Industry  string   `json:"industry"`
	MarketCap *float64 `json:"market_cap"`
	Website   string   `json:"website"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&days=%d", f.BaseURL, url.QueryEscape(symbol), days)
	var raw []restBar
	if err := f.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		d := model.DateOf(time.Unix(rb.Timestamp, 0).UTC())
		if rb.Date != "" {
			parsed, err := model.ParseDate(rb.Date)
			if err != nil {
				return nil, fmt.Errorf("decode bars: %w", err)
			}
			d = parsed
		}
		bars[i] = model.OHLCV{
			Date:   d,
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	return bars, nil
}

func (f *RESTFetcher) FetchCompany(ctx context.Context, symbol string) (*model.Company, error) {
	endpoint := fmt.Sprintf("%s/api/v1/profile?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var p restProfile
	if err := f.getJSON(ctx, endpoint, &p); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &model.Company{
		Symbol:    symbol,
		Name:      p.Name,
		Sector:    p.Sector,
		Industry:  p.Industry,
		MarketCap: p.MarketCap,
		Website:   p.Website,
	}, nil
}

func (f *RESTFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
