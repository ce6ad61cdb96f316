package scheduler

import (
	"context"
	"time"

	"github.com/leadloop/leadloop/internal/batch"
	"github.com/leadloop/leadloop/internal/models"
)

// JobRepoInterface is the engine's view of the durable job store.
type JobRepoInterface interface {
	DueJobs(ctx context.Context, now time.Time, maxRetries, limit int) ([]models.OutreachJob, error)
	MarkRunning(ctx context.Context, id uint) error
	MarkScheduled(ctx context.Context, id uint, nextRunAt, lastRunAt time.Time, outcome string) error
	MarkFailed(ctx context.Context, id uint, retryCount int, nextRetryAt *time.Time, outcome, errMsg string) error
	ResetRunning(ctx context.Context, note string) (int64, error)
	ResetStaleRunning(ctx context.Context, cutoff time.Time, note string) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

// PreferenceRepoInterface gives the engine read-only preference access.
type PreferenceRepoInterface interface {
	GetByUser(ctx context.Context, userID uint) (*models.OutreachPreferences, error)
}

// ExecutionLogRepoInterface appends audit rows; the engine never reads
// them back.
type ExecutionLogRepoInterface interface {
	Append(ctx context.Context, entry *models.JobExecutionLog) error
}

// BatchGeneratorInterface produces the day's batch; nil means
// insufficient contacts (or a generation failure already logged there).
type BatchGeneratorInterface interface {
	GenerateDailyBatch(ctx context.Context, userID uint) *batch.Result
}
