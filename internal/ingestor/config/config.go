package config

import (
	"time"

	"mediascope/pkg/config"
)

// Ingestor holds ingestion pipeline configuration.
type Ingestor struct {
	// InputFolder is the directory swept for newly scanned page images.
	InputFolder string `mapstructure:"input_folder"`
	// SweepSchedule is the cron expression for the input folder sweep.
	SweepSchedule string `mapstructure:"sweep_schedule"`

	RedisStreamPageScanTimeout time.Duration `mapstructure:"redis_stream_page_scan_timeout"`

	// NotifyBatchSize is the number of processed pages per Telegram summary.
	NotifyBatchSize int `mapstructure:"notify_batch_size"`
}

// Config holds the full configuration for the ingestion service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	Gemini   config.Gemini   `mapstructure:"gemini"`
	Telegram config.Telegram `mapstructure:"telegram"`
	Ingestor Ingestor        `mapstructure:"ingestor"`
}

// Load loads the ingestion service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Ingestor.SweepSchedule == "" {
		cfg.Ingestor.SweepSchedule = "*/5 * * * *"
	}
	if cfg.Ingestor.RedisStreamPageScanTimeout == 0 {
		cfg.Ingestor.RedisStreamPageScanTimeout = 10 * time.Minute
	}
	if cfg.Ingestor.NotifyBatchSize <= 0 {
		cfg.Ingestor.NotifyBatchSize = 10
	}
	return &cfg, nil
}
