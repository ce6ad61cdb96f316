package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/outreach"
	"github.com/leadloop/leadloop/internal/scheduler"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ scheduler.JobRepoInterface = (*JobRepository)(nil)
var _ outreach.JobRepoInterface = (*JobRepository)(nil)

// Create inserts a new job record. The unique index on user_id rejects
// a second job for the same user.
func (r *JobRepository) Create(ctx context.Context, job *models.OutreachJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetByUser returns the user's job, or nil when the user has none.
func (r *JobRepository) GetByUser(ctx context.Context, userID uint) (*models.OutreachJob, error) {
	var job models.OutreachJob
	if err := r.db.WithContext(ctx).First(&job, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// DueJobs selects jobs eligible to run right now: scheduled jobs whose
// next_run_at has passed, plus failed jobs with retries left whose
// backoff has elapsed. Retryable failures are served before fresh
// scheduled jobs, then oldest-due-first.
func (r *JobRepository) DueJobs(ctx context.Context, now time.Time, maxRetries, limit int) ([]models.OutreachJob, error) {
	var jobs []models.OutreachJob
	err := r.db.WithContext(ctx).
		Where(
			"(status = ? AND next_run_at <= ?) OR (status = ? AND retry_count < ? AND (next_retry_at IS NULL OR next_retry_at <= ?))",
			config.JobStatusScheduled, now,
			config.JobStatusFailed, maxRetries, now,
		).
		Order("CASE WHEN status = 'failed' THEN 0 ELSE 1 END, next_run_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("select due jobs: %w", err)
	}
	return jobs, nil
}

// MarkRunning flips the job into Running; updated_at is bumped by gorm
// and becomes the staleness signal.
func (r *JobRepository) MarkRunning(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&models.OutreachJob{}).
		Where("id = ?", id).
		Update("status", config.JobStatusRunning).Error; err != nil {
		return fmt.Errorf("mark running: %w", err)
	}
	return nil
}

// MarkScheduled records a completed run: next occurrence computed, retry
// bookkeeping cleared.
func (r *JobRepository) MarkScheduled(ctx context.Context, id uint, nextRunAt, lastRunAt time.Time, outcome string) error {
	if err := r.db.WithContext(ctx).Model(&models.OutreachJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        config.JobStatusScheduled,
			"next_run_at":   nextRunAt,
			"last_run_at":   lastRunAt,
			"last_outcome":  outcome,
			"last_error":    "",
			"retry_count":   0,
			"next_retry_at": nil,
		}).Error; err != nil {
		return fmt.Errorf("mark scheduled: %w", err)
	}
	return nil
}

// MarkFailed records a failed run. nextRetryAt nil means retries are
// exhausted and the job is parked until preferences change.
func (r *JobRepository) MarkFailed(ctx context.Context, id uint, retryCount int, nextRetryAt *time.Time, outcome, errMsg string) error {
	if err := r.db.WithContext(ctx).Model(&models.OutreachJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        config.JobStatusFailed,
			"last_outcome":  outcome,
			"last_error":    errMsg,
			"retry_count":   retryCount,
			"next_retry_at": nextRetryAt,
		}).Error; err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// Reschedule moves a job to a new next_run_at and clears any failed
// state. Used by the preference hook; this is the only way a
// permanently failed job comes back to life.
func (r *JobRepository) Reschedule(ctx context.Context, id uint, nextRunAt time.Time) error {
	if err := r.db.WithContext(ctx).Model(&models.OutreachJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        config.JobStatusScheduled,
			"next_run_at":   nextRunAt,
			"retry_count":   0,
			"next_retry_at": nil,
			"last_error":    "",
		}).Error; err != nil {
		return fmt.Errorf("reschedule job: %w", err)
	}
	return nil
}

// ResetRunning unconditionally returns every Running job to Scheduled.
// Called once at startup: a fresh process means no execution can still
// be in flight.
func (r *JobRepository) ResetRunning(ctx context.Context, note string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.OutreachJob{}).
		Where("status = ?", config.JobStatusRunning).
		Updates(map[string]any{
			"status":       config.JobStatusScheduled,
			"last_outcome": config.OutcomeResetAfterRestart,
			"last_error":   note,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("reset running jobs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ResetStaleRunning returns Running jobs untouched since cutoff to
// Scheduled. Covers a crash that happened after startup, between polls.
func (r *JobRepository) ResetStaleRunning(ctx context.Context, cutoff time.Time, note string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.OutreachJob{}).
		Where("status = ? AND updated_at < ?", config.JobStatusRunning, cutoff).
		Updates(map[string]any{
			"status":       config.JobStatusScheduled,
			"last_outcome": config.OutcomeResetAfterRestart,
			"last_error":   note,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("reset stale jobs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByUser removes the user's job. Batches the job produced are
// left alone so historical dedup keeps working.
func (r *JobRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.OutreachJob{}).Error; err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
