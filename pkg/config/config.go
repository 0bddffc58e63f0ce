package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Market struct {
		BaseURL      string            `yaml:"base_url" default:"https://query2.finance.yahoo.com"`
		Timeout      time.Duration     `yaml:"timeout" default:"15s"`
		LookbackDays int               `yaml:"lookback_days" default:"730"`
		RatePerSec   float64           `yaml:"rate_per_sec" default:"5"`
		Burst        float64           `yaml:"burst" default:"5"`
		Primary      []string          `yaml:"primary"`
		Secondary    []string          `yaml:"secondary"`
		Macro        []string          `yaml:"macro"`
		Renames      map[string]string `yaml:"renames"`
		// InvertEURUSD controls the derived cross direction: the chart API
		// quotes EURUSD=X as USD per EUR, so the inverse yields EUR per USD.
		// Kept configurable in case the upstream convention changes.
		InvertEURUSD *bool `yaml:"invert_eur_usd"`
		Synthetic    struct {
			Seed    uint64  `yaml:"seed" default:"42"`
			Start   float64 `yaml:"start" default:"10.5"`
			End     float64 `yaml:"end" default:"11.25"`
			NoiseSD float64 `yaml:"noise_sd" default:"0.05"`
		} `yaml:"synthetic"`
	} `yaml:"market"`
	Cache struct {
		SnapshotTTL time.Duration `yaml:"snapshot_ttl" default:"1h"`
		ResponseTTL time.Duration `yaml:"response_ttl" default:"30s"`
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	c.applyUniverseDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv("PRIMARY_SYMBOLS"); v != "" {
		c.Market.Primary = strings.Split(v, ",")
	}
	if v := os.Getenv("SECONDARY_SYMBOLS"); v != "" {
		c.Market.Secondary = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		if ok {
			c.Cache.Redis.Host = host
			fmt.Sscanf(port, "%d", &c.Cache.Redis.Port)
		} else {
			c.Cache.Redis.Host = v
		}
	}

	return c, nil
}

// applyUniverseDefaults fills the symbol universe when the YAML leaves it
// empty. Slice and map defaults don't fit struct tags, so they live here.
func (c *Config) applyUniverseDefaults() {
	if len(c.Market.Primary) == 0 {
		c.Market.Primary = []string{"AAPL", "MSFT", "NVDA", "GOOGL", "META", "TSLA", "AMZN"}
	}
	if len(c.Market.Secondary) == 0 {
		c.Market.Secondary = []string{"JPM", "KO", "DIS", "XOM", "PFE"}
	}
	if len(c.Market.Macro) == 0 {
		c.Market.Macro = []string{"^TNX", "MXN=X", "EURUSD=X"}
	}
	if len(c.Market.Renames) == 0 {
		c.Market.Renames = map[string]string{
			"^TNX":     "US_Treasury_10Y",
			"MXN=X":    "USD_MXN",
			"EURUSD=X": "EUR_USD_Exchange",
		}
	}
	if c.Market.InvertEURUSD == nil {
		v := true
		c.Market.InvertEURUSD = &v
	}
}

// AllSymbols returns the full ticker universe in fetch order.
func (c *Config) AllSymbols() []string {
	out := make([]string, 0, len(c.Market.Primary)+len(c.Market.Secondary)+len(c.Market.Macro))
	out = append(out, c.Market.Primary...)
	out = append(out, c.Market.Secondary...)
	out = append(out, c.Market.Macro...)
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Market.LookbackDays < 2 {
		return fmt.Errorf("market.lookback_days must be >= 2, got %d", c.Market.LookbackDays)
	}
	if len(c.Market.Primary) == 0 || len(c.Market.Secondary) == 0 {
		return fmt.Errorf("market symbol groups cannot be empty")
	}
	if c.Market.Synthetic.NoiseSD < 0 {
		return fmt.Errorf("market.synthetic.noise_sd cannot be negative")
	}
	if c.Cache.SnapshotTTL <= 0 {
		return fmt.Errorf("cache.snapshot_ttl must be positive")
	}
	return nil
}
