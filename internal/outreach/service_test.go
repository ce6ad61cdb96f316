package outreach_test

import (
	"context"
	"testing"
	"time"

	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/dto"
	"github.com/leadloop/leadloop/internal/mocks"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/outreach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC) // a Monday

func frozenClock() time.Time { return frozenNow }

func validInput() *dto.OutreachPreferencesDTO {
	return &dto.OutreachPreferencesDTO{
		Enabled:      true,
		ScheduleDays: []string{"mon", "wed", "fri"},
		ScheduleTime: "09:00",
		Timezone:     "America/New_York",
	}
}

func newService() (*outreach.Service, *mocks.JobRepoMock, *mocks.PreferenceRepoMock, *mocks.ExecutionLogRepoMock) {
	jobs := new(mocks.JobRepoMock)
	prefs := new(mocks.PreferenceRepoMock)
	logs := new(mocks.ExecutionLogRepoMock)
	return outreach.NewService(jobs, prefs, logs, frozenClock), jobs, prefs, logs
}

func TestUpdateUserPreferences_FirstEnableCreatesJob(t *testing.T) {
	svc, jobs, prefs, _ := newService()

	prefs.On("Save", mock.Anything, mock.Anything).Return(nil)
	jobs.On("GetByUser", mock.Anything, uint(7)).Return(nil, nil)
	jobs.On("Create", mock.Anything, mock.MatchedBy(func(job *models.OutreachJob) bool {
		return job.UserID == 7 &&
			job.Status == config.JobStatusScheduled &&
			job.NextRunAt.After(frozenNow)
	})).Return(nil)

	savedPrefs, job, err := svc.UpdateUserPreferences(context.Background(), 7, validInput())
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.True(t, savedPrefs.Enabled)

	// Monday 10:00 local with 09:00 schedule: Wednesday 13:00 UTC.
	assert.Equal(t, time.Date(2025, 6, 11, 13, 0, 0, 0, time.UTC), job.NextRunAt)
	jobs.AssertExpectations(t)
}

func TestUpdateUserPreferences_EditReschedulesExistingJob(t *testing.T) {
	svc, jobs, prefs, _ := newService()

	existing := &models.OutreachJob{
		ID:         3,
		UserID:     7,
		Status:     config.JobStatusFailed,
		RetryCount: 3, // permanently failed, resurrected by this edit
	}

	prefs.On("Save", mock.Anything, mock.Anything).Return(nil)
	jobs.On("GetByUser", mock.Anything, uint(7)).Return(existing, nil)
	jobs.On("Reschedule", mock.Anything, uint(3),
		mock.MatchedBy(func(next time.Time) bool { return next.After(frozenNow) })).Return(nil)

	_, job, err := svc.UpdateUserPreferences(context.Background(), 7, validInput())
	require.NoError(t, err)
	assert.Equal(t, config.JobStatusScheduled, job.Status)
	assert.Equal(t, 0, job.RetryCount)
	assert.Nil(t, job.NextRetryAt)
	jobs.AssertExpectations(t)
}

func TestUpdateUserPreferences_DisableDeletesJob(t *testing.T) {
	svc, jobs, prefs, _ := newService()

	in := validInput()
	in.Enabled = false

	prefs.On("Save", mock.Anything, mock.MatchedBy(func(p *models.OutreachPreferences) bool {
		return !p.Enabled
	})).Return(nil)
	jobs.On("DeleteByUser", mock.Anything, uint(7)).Return(nil)

	_, job, err := svc.UpdateUserPreferences(context.Background(), 7, in)
	require.NoError(t, err)
	assert.Nil(t, job)
	jobs.AssertCalled(t, "DeleteByUser", mock.Anything, uint(7))
	jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUserPreferences_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.OutreachPreferencesDTO)
	}{
		{"unknown timezone", func(in *dto.OutreachPreferencesDTO) { in.Timezone = "Mars/Olympus" }},
		{"bad schedule time", func(in *dto.OutreachPreferencesDTO) { in.ScheduleTime = "9am" }},
		{"empty days", func(in *dto.OutreachPreferencesDTO) { in.ScheduleDays = nil }},
		{"unknown day token", func(in *dto.OutreachPreferencesDTO) { in.ScheduleDays = []string{"monday"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, jobs, prefs, _ := newService()

			in := validInput()
			tt.mutate(in)

			_, _, err := svc.UpdateUserPreferences(context.Background(), 7, in)
			assert.Error(t, err)
			prefs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDisableUserOutreach(t *testing.T) {
	svc, jobs, prefs, _ := newService()

	current := &models.OutreachPreferences{UserID: 7, Enabled: true}
	prefs.On("GetByUser", mock.Anything, uint(7)).Return(current, nil)
	prefs.On("Save", mock.Anything, mock.MatchedBy(func(p *models.OutreachPreferences) bool {
		return !p.Enabled
	})).Return(nil)
	jobs.On("DeleteByUser", mock.Anything, uint(7)).Return(nil)

	require.NoError(t, svc.DisableUserOutreach(context.Background(), 7))
	jobs.AssertExpectations(t)
	prefs.AssertExpectations(t)
}

func TestDisableUserOutreach_NoPreferencesStillDeletesJob(t *testing.T) {
	svc, jobs, prefs, _ := newService()

	prefs.On("GetByUser", mock.Anything, uint(7)).Return(nil, nil)
	jobs.On("DeleteByUser", mock.Anything, uint(7)).Return(nil)

	require.NoError(t, svc.DisableUserOutreach(context.Background(), 7))
	prefs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetJob(t *testing.T) {
	svc, jobs, _, _ := newService()

	retryAt := frozenNow.Add(time.Minute)
	jobs.On("GetByUser", mock.Anything, uint(7)).Return(&models.OutreachJob{
		ID:          3,
		UserID:      7,
		Status:      config.JobStatusFailed,
		RetryCount:  1,
		NextRetryAt: &retryAt,
	}, nil)

	resp, err := svc.GetJob(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, config.JobStatusFailed, resp.Status)
	assert.Equal(t, 1, resp.RetryCount)
}

func TestGetJob_NotFound(t *testing.T) {
	svc, jobs, _, _ := newService()

	jobs.On("GetByUser", mock.Anything, uint(7)).Return(nil, nil)

	_, err := svc.GetJob(context.Background(), 7)
	assert.Error(t, err)
}

func TestGetExecutionLog_ClampsLimit(t *testing.T) {
	svc, _, _, logs := newService()

	logs.On("ListByUser", mock.Anything, uint(7), 20).Return([]models.JobExecutionLog{
		{ID: 1, UserID: 7, Status: config.ExecStatusSuccess},
	}, nil)

	entries, err := svc.GetExecutionLog(context.Background(), 7, -5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, config.ExecStatusSuccess, entries[0].Status)
}
