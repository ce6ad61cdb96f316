package outreach

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadloop/leadloop/internal/dto"
	"github.com/leadloop/leadloop/internal/models"
)

// JobRepoInterface is the preference hook's view of the job store.
type JobRepoInterface interface {
	Create(ctx context.Context, job *models.OutreachJob) error
	GetByUser(ctx context.Context, userID uint) (*models.OutreachJob, error)
	Reschedule(ctx context.Context, id uint, nextRunAt time.Time) error
	DeleteByUser(ctx context.Context, userID uint) error
}

// PreferenceRepoInterface owns the preferences row.
type PreferenceRepoInterface interface {
	GetByUser(ctx context.Context, userID uint) (*models.OutreachPreferences, error)
	Save(ctx context.Context, prefs *models.OutreachPreferences) error
}

// ExecutionLogRepoInterface exposes the audit trail read-only.
type ExecutionLogRepoInterface interface {
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.JobExecutionLog, error)
}

// ServiceInterface is the contract the settings layer calls.
type ServiceInterface interface {
	UpdateUserPreferences(ctx context.Context, userID uint, in *dto.OutreachPreferencesDTO) (*models.OutreachPreferences, *models.OutreachJob, error)
	DisableUserOutreach(ctx context.Context, userID uint) error
	GetJob(ctx context.Context, userID uint) (*dto.JobResponseDTO, error)
	GetExecutionLog(ctx context.Context, userID uint, limit int) ([]dto.ExecutionLogDTO, error)
}

// HandlerInterface defines the HTTP surface.
type HandlerInterface interface {
	UpdatePreferences(c *gin.Context)
	Disable(c *gin.Context)
	GetJob(c *gin.Context)
	GetLog(c *gin.Context)
}
