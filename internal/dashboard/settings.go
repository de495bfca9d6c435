package dashboard

import (
	"fmt"

	"StockTracker/internal/cache"
	"StockTracker/internal/collector"
	"StockTracker/internal/config"
	"StockTracker/internal/model"

	"go.uber.org/zap"
)

// UnknownCompany is the display name of a symbol missing from the name table.
const UnknownCompany = "Unknown"

// Settings is the read-only configuration an Assembler works from.
type Settings struct {
	Command        string
	DefaultSymbols []string
	Names          map[string]string
	Windows        []model.Window
	AlertWindow    model.Window
	AlertThreshold float64
	// Sparkline is the window of history attached to each row; a zero
	// Window attaches none.
	Sparkline    model.Window
	DetailWindow model.Window
	LookbackDays int
}

// SettingsFromConfig resolves the tracker section of cfg.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	s := Settings{
		Command:        cfg.Tracker.Command,
		DefaultSymbols: cfg.Symbols(),
		Names:          cfg.NameTable(),
		Windows:        append([]model.Window(nil), cfg.Tracker.Windows...),
		LookbackDays:   cfg.LookbackDays(),
	}
	if cfg.Tracker.AlertThreshold != nil {
		s.AlertThreshold = *cfg.Tracker.AlertThreshold
	}

	var ok bool
	if s.AlertWindow, ok = cfg.Window(cfg.Tracker.AlertWindow); !ok {
		return Settings{}, fmt.Errorf("unknown alert window %q", cfg.Tracker.AlertWindow)
	}
	if s.DetailWindow, ok = cfg.Window(cfg.Tracker.DetailWindow); !ok {
		return Settings{}, fmt.Errorf("unknown detail window %q", cfg.Tracker.DetailWindow)
	}
	if name := cfg.Tracker.SparklineWindow; name != "" {
		if s.Sparkline, ok = cfg.Window(name); !ok {
			return Settings{}, fmt.Errorf("unknown sparkline window %q", name)
		}
	}
	return s, nil
}

// CompanyName returns the display name of symbol.
func (s Settings) CompanyName(symbol string) string {
	if name, ok := s.Names[symbol]; ok && name != "" {
		return name
	}
	return UnknownCompany
}

func (s Settings) sparklineEnabled() bool {
	return s.Sparkline.Months > 0 || s.Sparkline.Days > 0
}

// NewFromConfig wires the configured provider, cache and collector into
// an Assembler.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Assembler, error) {
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	ds := cfg.DataSource
	fetcher, err := collector.NewFetcher(ds.Provider, ds.BaseURL, ds.APIKey, ds.APISecret, cfg.Proxy)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	col := collector.NewCollector(fetcher, cache.New(*cfg.Cache.TTL, nil), logger)
	col.Concurrency = cfg.Tracker.Concurrency
	return NewAssembler(col, settings, logger), nil
}
