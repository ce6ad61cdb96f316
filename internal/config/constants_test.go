package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffFor(t *testing.T) {
	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{1, 60 * time.Second},
		{2, 300 * time.Second},
		{3, 900 * time.Second},
		{4, 900 * time.Second}, // ladder exhausted, last rung repeats
		{10, 900 * time.Second},
		{0, 60 * time.Second}, // defensive clamp
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BackoffFor(tt.retryCount), "retryCount=%d", tt.retryCount)
	}
}

func TestValidateSchedulerConfig(t *testing.T) {
	valid := SchedulerConfig{
		PollInterval:  30 * time.Second,
		TickBatchSize: 15,
		MaxConcurrent: 10,
		MaxRetries:    3,
		StaleAfter:    5 * time.Minute,
	}
	assert.NoError(t, validateSchedulerConfig(&valid))

	bad := valid
	bad.PollInterval = 0
	assert.ErrorContains(t, validateSchedulerConfig(&bad), "POLL_INTERVAL")

	bad = valid
	bad.TickBatchSize = 0
	assert.ErrorContains(t, validateSchedulerConfig(&bad), "TICK_BATCH_SIZE")

	bad = valid
	bad.MaxConcurrent = 0
	assert.ErrorContains(t, validateSchedulerConfig(&bad), "MAX_CONCURRENT")

	bad = valid
	bad.StaleAfter = time.Second
	assert.ErrorContains(t, validateSchedulerConfig(&bad), "STALE_AFTER")
}
