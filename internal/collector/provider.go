package collector

import "fmt"

// Provider names accepted by NewFetcher.
const (
	ProviderYahoo  = "yahoo"
	ProviderREST   = "rest"
	ProviderAlpaca = "alpaca"
	ProviderMock   = "mock"
)

// NewFetcher builds the Fetcher for a configured provider name.
func NewFetcher(provider, baseURL, apiKey, apiSecret, proxyURL string) (Fetcher, error) {
	switch provider {
	case "", ProviderYahoo:
		f := NewYahooFetcher(proxyURL)
		if baseURL != "" {
			f.BaseURL = baseURL
		}
		return f, nil
	case ProviderREST:
		if baseURL == "" {
			return nil, fmt.Errorf("provider %q requires a base url", provider)
		}
		return NewRESTFetcher(baseURL, apiKey, proxyURL), nil
	case ProviderAlpaca:
		if apiKey == "" || apiSecret == "" {
			return nil, fmt.Errorf("provider %q requires an api key and secret", provider)
		}
		return NewAlpacaFetcher(apiKey, apiSecret, baseURL), nil
	case ProviderMock:
		return &MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
}
