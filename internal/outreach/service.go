// Package outreach is the externally-triggered mutation path: settings
// edits flow through here to keep the job's next_run_at (or its very
// existence) in sync with what the user configured.
package outreach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/leadloop/leadloop/common"
	"github.com/leadloop/leadloop/internal/config"
	"github.com/leadloop/leadloop/internal/dto"
	"github.com/leadloop/leadloop/internal/models"
	"github.com/leadloop/leadloop/internal/schedule"
	"gorm.io/datatypes"
)

type Service struct {
	jobs  JobRepoInterface
	prefs PreferenceRepoInterface
	logs  ExecutionLogRepoInterface
	clock func() time.Time
}

func NewService(jobs JobRepoInterface, prefs PreferenceRepoInterface, logs ExecutionLogRepoInterface, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{jobs: jobs, prefs: prefs, logs: logs, clock: clock}
}

var _ ServiceInterface = (*Service)(nil)

// UpdateUserPreferences persists the new settings and immediately
// recomputes the job: created on first enable, rescheduled on any edit
// (which also resurrects a permanently failed job), deleted on disable.
func (s *Service) UpdateUserPreferences(ctx context.Context, userID uint, in *dto.OutreachPreferencesDTO) (*models.OutreachPreferences, *models.OutreachJob, error) {
	if in.Enabled {
		if err := validateSchedule(in); err != nil {
			return nil, nil, err
		}
	}

	daysJSON, err := json.Marshal(in.ScheduleDays)
	if err != nil {
		return nil, nil, common.Errf(http.StatusBadRequest, "invalid schedule days")
	}

	prefs := &models.OutreachPreferences{
		UserID:            userID,
		Enabled:           in.Enabled,
		ScheduleDays:      datatypes.JSON(daysJSON),
		ScheduleTime:      in.ScheduleTime,
		Timezone:          in.Timezone,
		VacationMode:      in.VacationMode,
		VacationFrom:      in.VacationFrom,
		VacationUntil:     in.VacationUntil,
		ProductProfileID:  in.ProductProfileID,
		SenderProfileID:   in.SenderProfileID,
		CustomerProfileID: in.CustomerProfileID,
	}

	if err := s.prefs.Save(ctx, prefs); err != nil {
		return nil, nil, common.Errf(http.StatusInternalServerError, "failed to save preferences")
	}

	if !in.Enabled {
		if err := s.jobs.DeleteByUser(ctx, userID); err != nil {
			return nil, nil, common.Errf(http.StatusInternalServerError, "failed to remove outreach job")
		}
		return prefs, nil, nil
	}

	next, err := schedule.NextRun(prefs, s.clock())
	if err != nil {
		return nil, nil, common.Errf(http.StatusBadRequest, "invalid schedule: %v", err)
	}

	job, err := s.jobs.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, common.Errf(http.StatusInternalServerError, "failed to load outreach job")
	}

	if job == nil {
		job = &models.OutreachJob{
			UserID:    userID,
			Status:    config.JobStatusScheduled,
			NextRunAt: next,
		}
		if err := s.jobs.Create(ctx, job); err != nil {
			return nil, nil, common.Errf(http.StatusInternalServerError, "failed to create outreach job")
		}
		return prefs, job, nil
	}

	if err := s.jobs.Reschedule(ctx, job.ID, next); err != nil {
		return nil, nil, common.Errf(http.StatusInternalServerError, "failed to reschedule outreach job")
	}
	job.Status = config.JobStatusScheduled
	job.NextRunAt = next
	job.RetryCount = 0
	job.NextRetryAt = nil
	return prefs, job, nil
}

// DisableUserOutreach turns outreach off and deletes the job. Batches
// the job produced stay behind for historical dedup.
func (s *Service) DisableUserOutreach(ctx context.Context, userID uint) error {
	prefs, err := s.prefs.GetByUser(ctx, userID)
	if err != nil {
		return common.Errf(http.StatusInternalServerError, "failed to load preferences")
	}
	if prefs != nil && prefs.Enabled {
		prefs.Enabled = false
		if err := s.prefs.Save(ctx, prefs); err != nil {
			return common.Errf(http.StatusInternalServerError, "failed to save preferences")
		}
	}

	if err := s.jobs.DeleteByUser(ctx, userID); err != nil {
		return common.Errf(http.StatusInternalServerError, "failed to remove outreach job")
	}
	return nil
}

// GetJob returns the user's job for the dashboard.
func (s *Service) GetJob(ctx context.Context, userID uint) (*dto.JobResponseDTO, error) {
	job, err := s.jobs.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
		}
		return nil, common.Errf(http.StatusInternalServerError, "failed to load outreach job")
	}
	if job == nil {
		return nil, common.Errf(http.StatusNotFound, "no outreach job for user")
	}

	return &dto.JobResponseDTO{
		ID:          job.ID,
		UserID:      job.UserID,
		Status:      job.Status,
		NextRunAt:   job.NextRunAt,
		LastRunAt:   job.LastRunAt,
		LastOutcome: job.LastOutcome,
		LastError:   job.LastError,
		RetryCount:  job.RetryCount,
		NextRetryAt: job.NextRetryAt,
		UpdatedAt:   job.UpdatedAt,
	}, nil
}

// GetExecutionLog returns the user's most recent execution attempts.
func (s *Service) GetExecutionLog(ctx context.Context, userID uint, limit int) ([]dto.ExecutionLogDTO, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := s.logs.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to load execution log")
	}

	out := make([]dto.ExecutionLogDTO, len(entries))
	for i, e := range entries {
		out[i] = dto.ExecutionLogDTO{
			ID:                e.ID,
			ExecutedAt:        e.ExecutedAt,
			Status:            e.Status,
			BatchID:           e.BatchID,
			ProcessingTimeMs:  e.ProcessingTimeMs,
			ContactsProcessed: e.ContactsProcessed,
			ErrorMessage:      e.ErrorMessage,
		}
	}
	return out, nil
}

func validateSchedule(in *dto.OutreachPreferencesDTO) error {
	if _, err := schedule.ParseDays(in.ScheduleDays); err != nil {
		return common.Errf(http.StatusBadRequest, "invalid schedule days: %v", err)
	}
	if _, _, err := schedule.ParseTimeOfDay(in.ScheduleTime); err != nil {
		return common.Errf(http.StatusBadRequest, "invalid schedule time: %v", err)
	}
	if _, err := time.LoadLocation(in.Timezone); err != nil {
		return common.Errf(http.StatusBadRequest, "unknown timezone %q", in.Timezone)
	}
	return nil
}
