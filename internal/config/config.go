package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"StockTracker/internal/model"

	"gopkg.in/yaml.v3"
)

// DefaultCommand is the trigger phrase that unlocks the tracker.
const DefaultCommand = "ai agent stock"

// SymbolName pairs a ticker with its display name.
type SymbolName struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Config holds all application configuration.
type Config struct {
	Tracker struct {
		Command         string            `yaml:"command"`
		DefaultSymbols  []SymbolName      `yaml:"default_symbols"`
		Names           map[string]string `yaml:"names"`
		Windows         []model.Window    `yaml:"windows"`
		AlertWindow     string            `yaml:"alert_window"`
		AlertThreshold  *float64          `yaml:"alert_threshold"`
		SparklineWindow string            `yaml:"sparkline_window"`
		DetailWindow    string            `yaml:"detail_window"`
		LookbackDays    int               `yaml:"lookback_days"`
		Concurrency     int               `yaml:"concurrency"`
	} `yaml:"tracker"`
	Cache struct {
		TTL *time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	DataSource struct {
		Provider  string `yaml:"provider"`
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
	} `yaml:"data_source"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("DATA_API_SECRET"); v != "" {
		c.DataSource.APISecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("ALERT_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse ALERT_THRESHOLD: %w", err)
		}
		c.Tracker.AlertThreshold = &f
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		c.Cache.TTL = &d
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		c.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	t := &c.Tracker
	if t.Command == "" {
		t.Command = DefaultCommand
	}
	if len(t.DefaultSymbols) == 0 {
		t.DefaultSymbols = []SymbolName{
			{Symbol: "GOOGL", Name: "Alphabet"},
			{Symbol: "MSFT", Name: "Microsoft"},
			{Symbol: "AMZN", Name: "Amazon"},
			{Symbol: "CRM", Name: "Salesforce"},
		}
	}
	for i := range t.DefaultSymbols {
		t.DefaultSymbols[i].Symbol = strings.ToUpper(strings.TrimSpace(t.DefaultSymbols[i].Symbol))
	}
	if len(t.Windows) == 0 {
		t.Windows = []model.Window{
			{Name: "1M", Months: 1},
			{Name: "3M", Months: 3},
			{Name: "6M", Months: 6},
		}
	}
	if t.AlertWindow == "" {
		t.AlertWindow = "1M"
	}
	if t.AlertThreshold == nil {
		v := -5.0
		t.AlertThreshold = &v
	}
	if t.DetailWindow == "" {
		t.DetailWindow = "1M"
	}
	if t.Concurrency <= 0 {
		t.Concurrency = 4
	}
	if c.Cache.TTL == nil {
		ttl := time.Hour
		c.Cache.TTL = &ttl
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Window returns the configured window with the given name.
func (c *Config) Window(name string) (model.Window, bool) {
	for _, w := range c.Tracker.Windows {
		if w.Name == name {
			return w, true
		}
	}
	return model.Window{}, false
}

// NameTable returns the static symbol → display name table.
func (c *Config) NameTable() map[string]string {
	names := make(map[string]string, len(c.Tracker.DefaultSymbols)+len(c.Tracker.Names))
	for sym, name := range c.Tracker.Names {
		names[strings.ToUpper(sym)] = name
	}
	for _, s := range c.Tracker.DefaultSymbols {
		names[s.Symbol] = s.Name
	}
	return names
}

// Symbols returns the default symbol set in configured order.
func (c *Config) Symbols() []string {
	out := make([]string, len(c.Tracker.DefaultSymbols))
	for i, s := range c.Tracker.DefaultSymbols {
		out[i] = s.Symbol
	}
	return out
}

// LookbackDays returns how many calendar days of history to fetch: the
// configured value, or enough to cover the longest window plus a week.
func (c *Config) LookbackDays() int {
	if c.Tracker.LookbackDays > 0 {
		return c.Tracker.LookbackDays
	}
	longest := 0
	for _, w := range c.Tracker.Windows {
		if d := w.ApproxDays(); d > longest {
			longest = d
		}
	}
	return longest + 7
}

// Validate checks the tracker settings every entry point needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tracker.Command) == "" {
		return errors.New("tracker.command is required")
	}
	if len(c.Tracker.Windows) == 0 {
		return errors.New("tracker.windows must not be empty")
	}
	seen := make(map[string]bool)
	for _, w := range c.Tracker.Windows {
		if w.Name == "" {
			return errors.New("tracker.windows: every window needs a name")
		}
		if seen[w.Name] {
			return fmt.Errorf("tracker.windows: duplicate window %q", w.Name)
		}
		seen[w.Name] = true
		if w.Months <= 0 && w.Days <= 0 {
			return fmt.Errorf("tracker.windows: window %q needs months or days", w.Name)
		}
	}
	if _, ok := c.Window(c.Tracker.AlertWindow); !ok {
		return fmt.Errorf("tracker.alert_window %q is not a configured window", c.Tracker.AlertWindow)
	}
	if c.Tracker.SparklineWindow != "" {
		if _, ok := c.Window(c.Tracker.SparklineWindow); !ok {
			return fmt.Errorf("tracker.sparkline_window %q is not a configured window", c.Tracker.SparklineWindow)
		}
	}
	if _, ok := c.Window(c.Tracker.DetailWindow); !ok {
		return fmt.Errorf("tracker.detail_window %q is not a configured window", c.Tracker.DetailWindow)
	}
	if len(c.Tracker.DefaultSymbols) == 0 {
		return errors.New("tracker.default_symbols must not be empty")
	}
	return nil
}

// ValidateBot checks the extra settings the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return errors.New("telegram.chat_id is required")
	}
	return nil
}
