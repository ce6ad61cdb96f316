package dto

import (
	"time"
)

// OutreachPreferencesDTO is the settings payload the UI submits.
type OutreachPreferencesDTO struct {
	Enabled      bool     `json:"enabled"`
	ScheduleDays []string `json:"schedule_days" validate:"dive,oneof=mon tue wed thu fri sat sun"`
	ScheduleTime string   `json:"schedule_time" validate:"required"`
	Timezone     string   `json:"timezone" validate:"required"`

	VacationMode  bool       `json:"vacation_mode"`
	VacationFrom  *time.Time `json:"vacation_from,omitempty"`
	VacationUntil *time.Time `json:"vacation_until,omitempty"`

	ProductProfileID  *uint `json:"product_profile_id,omitempty"`
	SenderProfileID   *uint `json:"sender_profile_id,omitempty"`
	CustomerProfileID *uint `json:"customer_profile_id,omitempty"`
}

// JobResponseDTO mirrors the user's outreach job for the dashboard.
type JobResponseDTO struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Status      string     `json:"status"`
	NextRunAt   time.Time  `json:"next_run_at"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastOutcome string     `json:"last_outcome,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	RetryCount  int        `json:"retry_count"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ExecutionLogDTO is one audit row.
type ExecutionLogDTO struct {
	ID                uint      `json:"id"`
	ExecutedAt        time.Time `json:"executed_at"`
	Status            string    `json:"status"`
	BatchID           *uint     `json:"batch_id,omitempty"`
	ProcessingTimeMs  int64     `json:"processing_time_ms"`
	ContactsProcessed int       `json:"contacts_processed"`
	ErrorMessage      string    `json:"error_message,omitempty"`
}
