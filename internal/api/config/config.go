package config

import (
	"mediascope/pkg/config"
)

// Analytics holds aggregation engine and facade settings.
type Analytics struct {
	// MaxScan bounds every full-corpus aggregation scan.
	MaxScan int `mapstructure:"max_scan"`
	// CacheTTL is the advisory read-through cache lifetime, e.g. "5m".
	CacheTTL string `mapstructure:"cache_ttl"`
	// MaxCompareEntities bounds entity/keyword lists per request.
	MaxCompareEntities int `mapstructure:"max_compare_entities"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Gemini    config.Gemini   `mapstructure:"gemini"`
	Analytics Analytics       `mapstructure:"analytics"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Analytics.MaxScan <= 0 {
		cfg.Analytics.MaxScan = 1000
	}
	if cfg.Analytics.CacheTTL == "" {
		cfg.Analytics.CacheTTL = "5m"
	}
	if cfg.Analytics.MaxCompareEntities <= 0 {
		cfg.Analytics.MaxCompareEntities = 5
	}
	return &cfg, nil
}
