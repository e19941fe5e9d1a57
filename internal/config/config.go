// Package config holds runtime configuration, loaded from defaults, an
// optional .env file, and environment variables in that order.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string        `json:"api_base_url"`
	RequestTimeout time.Duration `json:"request_timeout"`

	DefaultTicker string `json:"default_ticker"`

	DashboardLimit int `json:"dashboard_limit"`
	NewsLimit      int `json:"news_limit"`
	NewsDays       int `json:"news_days"`

	Debug bool `json:"debug"`
}

// DefaultConfig builds the configuration: baked-in defaults, then .env,
// then process environment.
func DefaultConfig() *Config {
	cfg := &Config{
		APIBaseURL:     "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		DefaultTicker:  "",
		DashboardLimit: 10,
		NewsLimit:      5,
		NewsDays:       7,
		Debug:          false,
	}

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("TICKERMIND_API_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("TICKERMIND_TIMEOUT_SECONDS"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
			c.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if val := os.Getenv("TICKERMIND_DEFAULT_TICKER"); val != "" {
		c.DefaultTicker = val
	}
	if val := os.Getenv("TICKERMIND_DASHBOARD_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.DashboardLimit = n
		}
	}
	if val := os.Getenv("TICKERMIND_NEWS_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.NewsLimit = n
		}
	}
	if val := os.Getenv("TICKERMIND_NEWS_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.NewsDays = n
		}
	}
	if val := os.Getenv("TICKERMIND_DEBUG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Debug = b
		}
	}
}
