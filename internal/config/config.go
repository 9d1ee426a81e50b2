package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"macrodash/internal/model"
)

// Duration supports "15m"/"1h30m" syntax in YAML, which yaml.v3 does not
// decode into time.Duration on its own.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Catalog     model.Catalog `yaml:"catalog"`
	DetailLabel string        `yaml:"detail_label"`
	Lookback    struct {
		DefaultYears int `yaml:"default_years"`
		MaxYears     int `yaml:"max_years"`
	} `yaml:"lookback"`
	Cache struct {
		TTL Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
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

	// Environment variable overrides
	if v := os.Getenv("MACRODASH_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATASOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATASOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_YEARS"); v != "" {
		if years, err := strconv.Atoi(v); err == nil {
			cfg.Lookback.DefaultYears = years
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = Duration(ttl)
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = model.DefaultCatalog()
	}
	if cfg.DetailLabel == "" {
		cfg.DetailLabel = "10-Year Treasury Yield (Rates)"
	}
	if cfg.Lookback.DefaultYears == 0 {
		cfg.Lookback.DefaultYears = 2
	}
	if cfg.Lookback.MaxYears == 0 {
		cfg.Lookback.MaxYears = 10
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(15 * time.Minute)
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */30 * * * *"
	}

	return cfg, nil
}

// Validate checks catalog and bounds consistency.
func (c *Config) Validate() error {
	if len(c.Catalog) == 0 {
		return fmt.Errorf("catalog must not be empty")
	}
	seen := make(map[string]bool, len(c.Catalog))
	for _, ins := range c.Catalog {
		if ins.Label == "" || ins.Symbol == "" {
			return fmt.Errorf("catalog entries need both label and symbol")
		}
		if seen[ins.Label] {
			return fmt.Errorf("duplicate catalog label %q", ins.Label)
		}
		seen[ins.Label] = true
	}
	if _, ok := c.Catalog.Lookup(c.DetailLabel); !ok {
		return fmt.Errorf("detail_label %q not in catalog", c.DetailLabel)
	}
	if c.Lookback.DefaultYears < 1 || c.Lookback.DefaultYears > c.Lookback.MaxYears {
		return fmt.Errorf("lookback.default_years must be within [1, %d]", c.Lookback.MaxYears)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}

// ClampYears bounds a requested lookback window to [1, MaxYears].
func (c *Config) ClampYears(years int) int {
	if years < 1 {
		return c.Lookback.DefaultYears
	}
	if years > c.Lookback.MaxYears {
		return c.Lookback.MaxYears
	}
	return years
}

// StartDate maps a lookback window in whole years to the fetch start date.
func StartDate(now time.Time, years int) time.Time {
	return now.AddDate(0, 0, -years*365)
}
