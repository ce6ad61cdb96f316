package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// SchedulerConfig holds the engine's tunables. All of them have
// documented defaults so a bare environment runs.
type SchedulerConfig struct {
	// PollInterval is how often the engine scans for due jobs.
	PollInterval time.Duration `env:"POLL_INTERVAL,default=30s"`
	// TickBatchSize caps how many due jobs one tick may pick up.
	TickBatchSize int `env:"TICK_BATCH_SIZE,default=15"`
	// MaxConcurrent bounds simultaneously executing jobs across all users.
	MaxConcurrent int `env:"MAX_CONCURRENT,default=10"`
	// MaxRetries is the number of consecutive failures before a job is
	// parked as permanently failed.
	MaxRetries int `env:"MAX_RETRIES,default=3"`
	// StaleAfter is how long a job may sit in Running before it is
	// presumed crashed and reset.
	StaleAfter time.Duration `env:"STALE_AFTER,default=5m"`
}

func LoadSchedulerConfig(ctx context.Context) (*SchedulerConfig, error) {
	var cfg SchedulerConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := validateSchedulerConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func validateSchedulerConfig(cfg *SchedulerConfig) error {
	var errors []string

	if cfg.PollInterval <= 0 {
		errors = append(errors, "POLL_INTERVAL must be positive")
	}
	if cfg.TickBatchSize < 1 {
		errors = append(errors, "TICK_BATCH_SIZE must be at least 1")
	}
	if cfg.MaxConcurrent < 1 {
		errors = append(errors, "MAX_CONCURRENT must be at least 1")
	}
	if cfg.MaxRetries < 0 {
		errors = append(errors, "MAX_RETRIES must be non-negative")
	}
	if cfg.StaleAfter < time.Minute {
		errors = append(errors, "STALE_AFTER must be at least 1 minute")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
