package mocks

import (
	"context"
	"time"

	"github.com/leadloop/leadloop/internal/models"
	"github.com/stretchr/testify/mock"
)

// JobRepoMock satisfies both the engine's and the preference hook's
// view of the job store.
type JobRepoMock struct {
	mock.Mock
}

func (m *JobRepoMock) Create(ctx context.Context, job *models.OutreachJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepoMock) GetByUser(ctx context.Context, userID uint) (*models.OutreachJob, error) {
	args := m.Called(ctx, userID)

	job, _ := args.Get(0).(*models.OutreachJob)
	return job, args.Error(1)
}

func (m *JobRepoMock) DueJobs(ctx context.Context, now time.Time, maxRetries, limit int) ([]models.OutreachJob, error) {
	args := m.Called(ctx, now, maxRetries, limit)

	jobs, _ := args.Get(0).([]models.OutreachJob)
	return jobs, args.Error(1)
}

func (m *JobRepoMock) MarkRunning(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *JobRepoMock) MarkScheduled(ctx context.Context, id uint, nextRunAt, lastRunAt time.Time, outcome string) error {
	args := m.Called(ctx, id, nextRunAt, lastRunAt, outcome)
	return args.Error(0)
}

func (m *JobRepoMock) MarkFailed(ctx context.Context, id uint, retryCount int, nextRetryAt *time.Time, outcome, errMsg string) error {
	args := m.Called(ctx, id, retryCount, nextRetryAt, outcome, errMsg)
	return args.Error(0)
}

func (m *JobRepoMock) Reschedule(ctx context.Context, id uint, nextRunAt time.Time) error {
	args := m.Called(ctx, id, nextRunAt)
	return args.Error(0)
}

func (m *JobRepoMock) ResetRunning(ctx context.Context, note string) (int64, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JobRepoMock) ResetStaleRunning(ctx context.Context, cutoff time.Time, note string) (int64, error) {
	args := m.Called(ctx, cutoff, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JobRepoMock) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
