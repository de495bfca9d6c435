package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	"StockTracker/internal/config"

	"go.uber.org/zap/zaptest"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Tracker.SparklineWindow = "6M"

	s, err := SettingsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.AlertWindow.Name != "1M" || s.AlertThreshold != -5 || s.Sparkline.Months != 6 {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.CompanyName("CRM") != "Salesforce" || s.CompanyName("ZZZ") != UnknownCompany {
		t.Error("unexpected name table lookups")
	}

	cfg.Tracker.AlertWindow = "2Y"
	if _, err := SettingsFromConfig(cfg); err == nil {
		t.Error("expected an error for an unknown alert window")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.DataSource.Provider = "mock"
	a, err := NewFromConfig(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	r := a.Build(context.Background(), []string{"MSFT"})
	if len(r.Rows) != 1 || !r.Rows[0].Price.Valid {
		t.Errorf("expected a row from the mock provider, got %+v", r)
	}

	cfg.DataSource.Provider = "carrier-pigeon"
	if _, err := NewFromConfig(cfg, nil); err == nil {
		t.Error("expected an unknown provider error")
	}
}
